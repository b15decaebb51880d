package role

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifiesByKeyword(t *testing.T) {
	cl := NewKeywordClassifier()

	assert := assert.New(t)
	assert.Equal(cl.Classify("Cello"), Bass)
	assert.Equal(cl.Classify("Contrabass"), Bass)
	assert.Equal(cl.Classify("Bassoon"), Bass)
	assert.Equal(cl.Classify("Violin I"), Melody)
	assert.Equal(cl.Classify("Flute"), Melody)
	assert.Equal(cl.Classify("Timpani"), Percussion)
}

func TestUnknownInstrumentIsInner(t *testing.T) {
	cl := NewKeywordClassifier()

	assert := assert.New(t)
	assert.Equal(cl.Classify("Harp"), Inner)
	assert.Equal(cl.Classify(""), Inner)
}

func TestPercussionWinsOverBass(t *testing.T) {
	cl := NewKeywordClassifier()

	// "bass drum" contains a bass keyword but must never feed harmony
	assert := assert.New(t)
	assert.Equal(cl.Classify("Bass Drum"), Percussion)
}

func TestClassificationIsCaseInsensitive(t *testing.T) {
	cl := NewKeywordClassifier()

	assert := assert.New(t)
	assert.Equal(cl.Classify("VIOLONCELLO"), Bass)
	assert.Equal(cl.Classify("oboe"), Melody)
}

func TestRoleString(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(Bass.String(), "bass")
	assert.Equal(Melody.String(), "melody")
	assert.Equal(Inner.String(), "inner")
	assert.Equal(Percussion.String(), "percussion")
}
