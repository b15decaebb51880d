package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mirlab/quartet/constants"
	"github.com/mirlab/quartet/role"
	"github.com/mirlab/quartet/segment"
	"github.com/mirlab/quartet/weight"
)

var rootCmd = &cobra.Command{
	Use:   "quartet",
	Short: "String quartet reduction tools",
	Long:  `Analyzes multi-part scores and reduces them to four-voice string quartet arrangements, chord progressions and quality reports.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// shared algorithm flags
var (
	strategyName  string
	windowLength  float64
	maxGap        float64
	referencePart int
	softDurations bool
)

func addSegmentFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&strategyName, "strategy", "fixed", "segmentation strategy: fixed|onset|measure|group|adaptive")
	cmd.Flags().Float64Var(&windowLength, "window", constants.DefaultWindowLength, "window length in quarters (fixed strategy)")
	cmd.Flags().Float64Var(&maxGap, "max-gap", constants.DefaultMaxGap, "max onset gap merged into one group (group strategy)")
	cmd.Flags().IntVar(&referencePart, "reference-part", 0, "rhythm reference part (measure strategy)")
	cmd.Flags().BoolVar(&softDurations, "soft-durations", false, "use the duration^0.7 emphasis curve instead of tiers")
}

func weightConfig() weight.Config {
	cfg := weight.DefaultConfig()
	cfg.UseDurationExponent = softDurations
	return cfg
}

func buildStrategy(cl role.Classifier, cfg weight.Config) (segment.Strategy, error) {
	switch strategyName {
	case "fixed":
		return segment.FixedLength{Length: windowLength}, nil
	case "onset":
		return segment.OnsetDriven{}, nil
	case "measure":
		return segment.MeasureAnchored{ReferencePart: referencePart}, nil
	case "group":
		return segment.HarmonicGrouping{MaxGap: maxGap}, nil
	case "adaptive":
		return segment.AdaptiveMeasure{Classifier: cl, Weights: cfg}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", strategyName)
	}
}
