package util

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/constraints"

	"github.com/mirlab/quartet/constants"
)

func RecreateOutputDir() {
	dir := constants.GetOutDir()
	os.RemoveAll(dir)
	os.MkdirAll(dir, 0777)
}

func GatherAllMidiPaths(path string, maxNum int) []string {
	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			panic("Error walking: " + err.Error())
		}
		if !d.IsDir() {
			if strings.HasSuffix(s, ".mid") || strings.HasSuffix(s, ".midi") {
				if maxNum == 0 || len(res) < maxNum {
					res = append(res, s)
				}
			}
		}
		return nil
	}
	filepath.WalkDir(path, walk)
	return res
}

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// WriteJSON dumps a snapshot (progression list, evaluation report) as
// indented JSON.
func WriteJSON(filename string, data any) error {
	buf, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode %v: %w", filename, err)
	}
	if err := os.WriteFile(filename, buf, 0666); err != nil {
		return fmt.Errorf("write failed for file %v: %w", filename, err)
	}
	return nil
}

func Min[A constraints.Integer](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}
