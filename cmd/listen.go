package cmd

import (
	"fmt"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver

	"github.com/mirlab/quartet/chordid"
	"github.com/mirlab/quartet/model"
	"github.com/mirlab/quartet/role"
)

func init() {
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Identifies chords from a live MIDI input",
	Long:  `Identifies chords from a live MIDI input`,
	Run: func(cmd *cobra.Command, args []string) {
		listen()
	},
}

// heldNotes converts currently-pressed keys into an analysis window the
// chord engine can score: unit weights, the lowest key treated as bass.
func heldNotes(onNotes map[uint8]bool) model.AnalysisWindow {
	win := model.AnalysisWindow{Start: 0, End: 1}
	lowest := model.NoPitch
	for key := range onNotes {
		if lowest == model.NoPitch || int(key) < lowest {
			lowest = int(key)
		}
	}
	for key := range onNotes {
		r := role.Inner
		if int(key) == lowest {
			r = role.Bass
		}
		win.Candidates = append(win.Candidates, model.WeightedCandidate{
			Pitch:  int(key),
			Weight: 1.0,
			Role:   r,
		})
	}
	return win
}

func listen() {
	defer gomidi.CloseDriver()
	in, err := gomidi.InPort(0)
	if err != nil {
		fmt.Println("can't find a MIDI input port")
		return
	}

	engine := chordid.NewEngine(chordid.DefaultConfig())
	onNotes := make(map[uint8]bool)
	var mu sync.Mutex

	// debounce so arpeggiated chords settle before we name them
	debounced := debounce.New(80 * time.Millisecond)
	identify := func() {
		mu.Lock()
		win := heldNotes(onNotes)
		mu.Unlock()
		if len(win.Candidates) < 2 {
			return
		}
		if hyp := engine.Identify(win); hyp != nil {
			fmt.Printf("%v (conf %.2f)\n", hyp.Symbol, hyp.Confidence)
		}
	}

	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		var ch, key, vel uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			mu.Lock()
			onNotes[key] = true
			mu.Unlock()
			debounced(identify)
		case msg.GetNoteEnd(&ch, &key):
			mu.Lock()
			delete(onNotes, key)
			mu.Unlock()
			debounced(identify)
		default:
			// ignore
		}
	})

	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		return
	}

	fmt.Println("Listening... press Ctrl-C to stop")
	time.Sleep(time.Second * 5000) // lol
	stop()
}
