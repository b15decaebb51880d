package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mirlab/quartet/evaluate"
	"github.com/mirlab/quartet/midi"
)

var classical bool

func init() {
	evaluateCmd.Flags().BoolVar(&classical, "classical", false, "also report the classical-principles layer")
	rootCmd.AddCommand(evaluateCmd)
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [arrangement.mid]",
	Short: "Scores an arrangement against the quality heuristics",
	Long:  `Scores an arrangement against the quality heuristics`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		runEvaluate(args[0])
	},
}

func runEvaluate(path string) {
	arrangement, err := midi.ReadArrangement(path)
	if err != nil {
		fmt.Printf("Could not read %v because: %v\n", path, err)
		return
	}

	report := evaluate.Evaluate(arrangement)
	fmt.Printf("melody clarity:       %.1f/100\n", report.Melody)
	fmt.Printf("bass strength:        %.1f/100\n", report.Bass)
	fmt.Printf("harmonic richness:    %.1f/100\n", report.Harmony)
	fmt.Printf("range appropriateness:%.1f/100\n", report.Range)
	fmt.Printf("rhythm accuracy:      %.1f/100\n", report.Rhythm)
	fmt.Printf("voice leading:        %.1f/100\n", report.VoiceLeading)
	fmt.Printf("weighted total:       %.1f/100\n", report.Weighted)

	if classical {
		c := evaluate.EvaluateClassical(arrangement)
		fmt.Printf("parallel violations:  %v\n", c.ParallelViolations)
		fmt.Printf("harmonic progression: %.1f/100\n", c.HarmonicProgression)
		fmt.Printf("classical range:      %.1f/100\n", c.ClassicalRange)
		fmt.Printf("blending:             %.1f/100\n", c.Blending)
	}
}
