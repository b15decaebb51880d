package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/mirlab/quartet/chordid"
	"github.com/mirlab/quartet/constants"
	"github.com/mirlab/quartet/db"
	"github.com/mirlab/quartet/evaluate"
	"github.com/mirlab/quartet/midi"
	"github.com/mirlab/quartet/model"
	"github.com/mirlab/quartet/progression"
	"github.com/mirlab/quartet/role"
	"github.com/mirlab/quartet/segment"
	"github.com/mirlab/quartet/weight"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves progression and evaluation over HTTP",
	Long:  `Serves progression and evaluation over HTTP`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

func decodeAnalyzeRequest(w http.ResponseWriter, r *http.Request) (model.AnalyzeRequest, bool) {
	var input model.AnalyzeRequest
	reqBody, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, 400, "could not read request body")
		return input, false
	}
	if err := json.Unmarshal(reqBody, &input); err != nil {
		writeError(w, 400, "could not unmarshal request body: "+err.Error())
		return input, false
	}
	if input.Path == "" {
		writeError(w, 400, "path is required")
		return input, false
	}
	return input, true
}

func progressionFor(path string) ([]model.ChordRecord, error) {
	score, err := midi.ReadScore(path)
	if err != nil {
		return nil, err
	}
	cl := role.NewKeywordClassifier()
	cfg := weight.DefaultConfig()
	extractor := progression.New(
		segment.HarmonicGrouping{MaxGap: constants.DefaultMaxGap},
		cl, cfg, chordid.DefaultConfig(),
	)
	return extractor.Extract(score), nil
}

// HandleProgression extracts a chord progression for a score path on disk.
func HandleProgression(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeAnalyzeRequest(w, r)
	if !ok {
		return
	}
	records, err := progressionFor(input.Path)
	if err != nil {
		writeError(w, 422, err.Error())
		return
	}
	res := model.ProgressionResponse{File: input.Path, Chords: records}
	if constants.MetadataEnabled() {
		filename := filepath.Base(input.Path)
		if meta, ok := db.GetScoreMetadatas([]string{filename})[filename]; ok {
			res.Metadata = &meta
		}
	}
	json.NewEncoder(w).Encode(res)
}

// HandleUpload accepts a raw MIDI body, stages it under a throwaway name
// and returns its progression.
func HandleUpload(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, 400, "could not read request body")
		return
	}
	staged := filepath.Join(constants.GetOutDir(), uuid.New().String()+".mid")
	if err := os.WriteFile(staged, body, 0666); err != nil {
		writeError(w, 500, "could not stage upload: "+err.Error())
		return
	}
	defer os.Remove(staged)

	records, err := progressionFor(staged)
	if err != nil {
		writeError(w, 422, err.Error())
		return
	}
	json.NewEncoder(w).Encode(model.ProgressionResponse{File: "upload", Chords: records})
}

// HandleEvaluate scores an already-arranged quartet MIDI file.
func HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeAnalyzeRequest(w, r)
	if !ok {
		return
	}
	arrangement, err := midi.ReadArrangement(input.Path)
	if err != nil {
		writeError(w, 422, err.Error())
		return
	}
	report := evaluate.Evaluate(arrangement)
	json.NewEncoder(w).Encode(model.EvaluationResponse{
		File:     input.Path,
		Scores:   report.Scores(),
		Weighted: report.Weighted,
	})
}

func serve() {
	os.MkdirAll(constants.GetOutDir(), 0777)

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/progression", HandleProgression).Methods("POST")
	router.HandleFunc("/progression/upload", HandleUpload).Methods("POST")
	router.HandleFunc("/evaluate", HandleEvaluate).Methods("POST")

	fmt.Println("Listening on :8080")
	log.Fatal(http.ListenAndServe(":8080", cors.Default().Handler(router)))
}
