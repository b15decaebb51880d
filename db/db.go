package db

import (
	"strconv"

	"github.com/mirlab/quartet/constants"
	"github.com/mirlab/quartet/model"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

// GetScoreMetadatas batch-fetches per-file metadata records keyed by source
// filename. Missing files are simply absent from the result.
func GetScoreMetadatas(filenames []string) map[string]model.ScoreMetadata {
	if len(filenames) > 10 {
		panic("Not supposed to pass in more than 10 filenames!")
	}

	res := make(map[string]model.ScoreMetadata)

	if len(filenames) == 0 {
		return res
	}

	var keys []map[string]*dynamodb.AttributeValue
	for _, filename := range filenames {
		key := make(map[string]*dynamodb.AttributeValue)
		key["PK"] = &dynamodb.AttributeValue{
			S: aws.String(filename),
		}
		keys = append(keys, key)
	}

	endpoint := constants.GetMetadataEndpoint()
	session, err := session.NewSession(&aws.Config{
		Region:   aws.String("localhost"),
		Endpoint: &endpoint,
	})
	if err != nil {
		panic("Could not create a new DynamoDB session because " + err.Error())
	}

	client := dynamodb.New(session)
	input := &dynamodb.BatchGetItemInput{
		RequestItems: map[string]*dynamodb.KeysAndAttributes{
			constants.MetadataTable: {Keys: keys},
		},
	}
	dbres, err := client.BatchGetItem(input)
	if err != nil {
		panic("Error from DynamoDB: " + err.Error())
	}

	for _, v := range dbres.Responses[constants.MetadataTable] {
		var s model.ScoreMetadata
		if v["Year"] != nil && v["Year"].N != nil {
			year, _ := strconv.ParseUint(*v["Year"].N, 10, 32)
			s.Year = uint(year)
		}
		if v["Title"] != nil && v["Title"].S != nil {
			s.Title = *v["Title"].S
		}
		if v["Composer"] != nil && v["Composer"].S != nil {
			s.Composer = *v["Composer"].S
		}
		res[*v["PK"].S] = s
	}

	return res
}
