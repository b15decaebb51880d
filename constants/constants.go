package constants

import "os"

func GetOutDir() string {
	path := os.Getenv("OUT_PATH")
	if path != "" {
		return path
	}
	return "./out"
}

func GetMediaDir() string {
	path := os.Getenv("MEDIA_PATH")
	if path != "" {
		return path
	}

	panic("MEDIA_PATH environment variable is not set!")
}

// MetadataEnabled reports whether the optional DynamoDB metadata lookup is
// configured.
func MetadataEnabled() bool {
	return os.Getenv("METADATA_ENDPOINT") != ""
}

func GetMetadataEndpoint() string {
	endpoint := os.Getenv("METADATA_ENDPOINT")
	if endpoint != "" {
		return endpoint
	}
	return "http://localhost:8000"
}

const MetadataTable = "quartet-metadata"

// Segmentation defaults shared by the CLI and the HTTP handlers.
const (
	DefaultWindowLength = 1.0
	DefaultMaxGap       = 1.0
)
