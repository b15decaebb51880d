package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mirlab/quartet/chordid"
	"github.com/mirlab/quartet/constants"
	"github.com/mirlab/quartet/midi"
	"github.com/mirlab/quartet/progression"
	"github.com/mirlab/quartet/role"
	"github.com/mirlab/quartet/util"
)

var (
	absolutePitch bool
	carryForward  bool
)

func init() {
	addSegmentFlags(chordsCmd)
	chordsCmd.Flags().BoolVar(&absolutePitch, "absolute", false, "restrict chord membership to two octaves above the bass")
	chordsCmd.Flags().BoolVar(&carryForward, "carry", false, "repeat the previous chord where no chord is confident")
	rootCmd.AddCommand(chordsCmd)
}

var chordsCmd = &cobra.Command{
	Use:   "chords [file]",
	Short: "Extracts a chord progression",
	Long:  `Extracts a chord progression`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		runChords(args[0])
	},
}

func runChords(path string) {
	score, err := midi.ReadScore(path)
	if err != nil {
		fmt.Printf("Could not read %v because: %v\n", path, err)
		return
	}

	cl := role.NewKeywordClassifier()
	cfg := weightConfig()
	strategy, err := buildStrategy(cl, cfg)
	if err != nil {
		fmt.Println(err)
		return
	}

	ccfg := chordid.DefaultConfig()
	ccfg.AbsolutePitch = absolutePitch

	extractor := progression.New(strategy, cl, cfg, ccfg)
	extractor.CarryForward = carryForward
	records := extractor.Extract(score)

	for _, r := range records {
		fmt.Printf("m%v b%v: %v (bass %v, conf %.2f)\n", r.Measure, r.Beat, r.Chord, r.Bass, r.Confidence)
	}

	os.MkdirAll(constants.GetOutDir(), 0777)
	out := outPathFor(path, "_chords.json")
	if err := util.WriteJSON(out, records); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("Wrote %v\n", out)
}
