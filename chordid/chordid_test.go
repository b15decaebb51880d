package chordid

import (
	"testing"

	"github.com/mirlab/quartet/model"
	"github.com/mirlab/quartet/role"
	"github.com/stretchr/testify/assert"
)

func window(candidates ...model.WeightedCandidate) model.AnalysisWindow {
	return model.AnalysisWindow{Start: 0, End: 1, Candidates: candidates}
}

func cand(pitch model.Pitch, w float64, r role.Role) model.WeightedCandidate {
	return model.WeightedCandidate{Pitch: pitch, Weight: w, Duration: 1, Role: r}
}

func TestIdentifiesMajorTriad(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	hyp := engine.Identify(window(
		cand(60, 2, role.Bass),
		cand(64, 1, role.Inner),
		cand(67, 1, role.Inner),
	))

	assert := assert.New(t)
	assert.NotNil(hyp)
	assert.Equal(hyp.Symbol, "C")
	assert.Equal(hyp.Template, "major")
	assert.Equal(hyp.RootPitchClass, 0)
	assert.Equal(hyp.BassPitch, 60)
	assert.True(hyp.Confidence >= 0.65)
}

func TestIdentifiesMinorTriad(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	hyp := engine.Identify(window(
		cand(57, 2, role.Bass),
		cand(60, 1, role.Inner),
		cand(64, 1, role.Inner),
	))

	assert := assert.New(t)
	assert.NotNil(hyp)
	assert.Equal(hyp.Symbol, "Am")
}

func TestIdentifiesSusFour(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	hyp := engine.Identify(window(
		cand(60, 2, role.Bass),
		cand(65, 1, role.Inner),
		cand(67, 1, role.Inner),
	))

	assert := assert.New(t)
	assert.NotNil(hyp)
	assert.Equal(hyp.Symbol, "Csus4")
}

func TestMajorBonusBreaksPassingSeventhTie(t *testing.T) {
	// a lone passing 7th must not flip a major triad to dom7
	engine := NewEngine(DefaultConfig())
	hyp := engine.Identify(window(
		cand(48, 4, role.Bass),
		cand(64, 2, role.Inner),
		cand(67, 2, role.Inner),
		cand(70, 0.5, role.Melody),
	))

	assert := assert.New(t)
	assert.NotNil(hyp)
	assert.Equal(hyp.Symbol, "C")
}

func TestIdentifiesDomSeventhDespiteColorTone(t *testing.T) {
	// major carries two extras and takes the penalty; dom7 only one
	engine := NewEngine(DefaultConfig())
	hyp := engine.Identify(window(
		cand(48, 4, role.Bass),
		cand(52, 2, role.Inner),
		cand(55, 2, role.Inner),
		cand(58, 2, role.Inner),
		cand(62, 1, role.Inner),
	))

	assert := assert.New(t)
	assert.NotNil(hyp)
	assert.Equal(hyp.Symbol, "C7")
}

func TestClusterScoresBelowThreshold(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	hyp := engine.Identify(window(
		cand(60, 1, role.Inner),
		cand(61, 1, role.Inner),
		cand(62, 1, role.Inner),
		cand(63, 1, role.Inner),
	))

	assert := assert.New(t)
	assert.Nil(hyp)
}

func TestEmptyWindowYieldsNoHypothesis(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	assert := assert.New(t)
	assert.Nil(engine.Identify(window()))
}

func TestBassFrequencyVetoOverridesRareBass(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	// one low E against twenty G's: the elected bass is not plausible as root
	candidates := []model.WeightedCandidate{cand(40, 1, role.Bass)}
	for i := 0; i < 20; i++ {
		candidates = append(candidates, cand(67, 1, role.Inner))
	}

	root, bass, ok := engine.ElectRoot(window(candidates...))

	assert := assert.New(t)
	assert.True(ok)
	assert.Equal(root, 7)
	assert.Equal(bass, 40)
}

func TestRootFallsBackToFullWindowWithoutBassRole(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	root, bass, ok := engine.ElectRoot(window(
		cand(60, 2, role.Inner),
		cand(64, 1, role.Inner),
		cand(67, 1, role.Inner),
	))

	assert := assert.New(t)
	assert.True(ok)
	assert.Equal(root, 0)
	assert.Equal(bass, 60)
}

func TestAbsolutePitchDiscountsHighDecoration(t *testing.T) {
	candidates := []model.WeightedCandidate{
		cand(36, 5, role.Bass),
		cand(40, 5, role.Inner),
		cand(43, 5, role.Inner),
		cand(94, 0.5, role.Melody),
		cand(86, 0.5, role.Melody),
	}

	relative := NewEngine(DefaultConfig())
	cfg := DefaultConfig()
	cfg.AbsolutePitch = true
	absolute := NewEngine(cfg)

	assert := assert.New(t)

	relHyp := relative.Identify(window(candidates...))
	assert.NotNil(relHyp)
	assert.Equal(relHyp.Symbol, "C7")

	absHyp := absolute.Identify(window(candidates...))
	assert.NotNil(absHyp)
	assert.Equal(absHyp.Symbol, "C")
}
