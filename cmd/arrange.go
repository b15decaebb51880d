package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mirlab/quartet/arrange"
	"github.com/mirlab/quartet/constants"
	"github.com/mirlab/quartet/evaluate"
	"github.com/mirlab/quartet/midi"
	"github.com/mirlab/quartet/role"
	"github.com/mirlab/quartet/util"
)

var (
	printScores bool
	maxFiles    int
)

func init() {
	addSegmentFlags(arrangeCmd)
	arrangeCmd.Flags().BoolVar(&printScores, "scores", false, "print the evaluation report for each arrangement")
	arrangeCmd.Flags().IntVar(&maxFiles, "max", 0, "max number of files to arrange in batch mode, 0 for all")
	rootCmd.AddCommand(arrangeCmd)
}

var arrangeCmd = &cobra.Command{
	Use:   "arrange [file-or-dir]",
	Short: "Arranges scores for string quartet",
	Long:  `Arranges scores for string quartet`,
	Run: func(cmd *cobra.Command, args []string) {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		runArrange(path)
	},
}

func runArrange(path string) {
	if path == "" {
		path = constants.GetMediaDir()
	}

	paths := []string{path}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		paths = util.GatherAllMidiPaths(path, maxFiles)
		util.RecreateOutputDir()
	}

	os.MkdirAll(constants.GetOutDir(), 0777)
	for i, p := range paths {
		fmt.Printf("Arranging %v of %v midi files\n", i+1, len(paths))
		if err := arrangeOne(p); err != nil {
			fmt.Printf("Skipping %v because: %v\n", p, err)
		}
	}
}

func arrangeOne(path string) error {
	score, err := midi.ReadScore(path)
	if err != nil {
		return err
	}

	cl := role.NewKeywordClassifier()
	cfg := weightConfig()
	strategy, err := buildStrategy(cl, cfg)
	if err != nil {
		return err
	}

	arranger := arrange.New(strategy, cl, cfg)
	result, err := arranger.Arrange(score)
	if err != nil {
		return err
	}

	out := outPathFor(path, "_quartet.mid")
	if err := midi.WriteArrangement(result, out); err != nil {
		return err
	}
	fmt.Printf("Wrote %v\n", out)

	if printScores {
		report := evaluate.Evaluate(result)
		fmt.Printf("  melody=%.1f bass=%.1f harmony=%.1f range=%.1f rhythm=%.1f voiceLeading=%.1f total=%.1f\n",
			report.Melody, report.Bass, report.Harmony, report.Range, report.Rhythm, report.VoiceLeading, report.Weighted)
	}
	return nil
}

func outPathFor(src, suffix string) string {
	base := filepath.Base(src)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(constants.GetOutDir(), base+suffix)
}
