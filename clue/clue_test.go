package clue

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAbsentConventions(t *testing.T) {
	for _, p := range All() {
		canonical := p.String()
		withB := []rune(canonical)
		for i, r := range withB {
			if r == 'X' {
				withB[i] = 'B'
			}
		}
		fromX, err := Normalize(canonical)
		require.NoError(t, err)
		fromB, err := Normalize(string(withB))
		require.NoError(t, err)
		assert.Equal(t, p, fromX)
		assert.Equal(t, fromX, fromB)
		// idempotent
		again, err := Normalize(fromB.String())
		require.NoError(t, err)
		assert.Equal(t, fromB, again)
	}
}

func TestNormalizeSymbols(t *testing.T) {
	p, err := NormalizeSymbols("B", "B", "B", "B", "G")
	require.NoError(t, err)
	assert.Equal(t, "XXXXG", p.String())

	p, err = NormalizeSymbols("g", "y", "x", "b", "G")
	require.NoError(t, err)
	assert.Equal(t, "GYXXG", p.String())
}

func TestNormalizeInvalid(t *testing.T) {
	for _, input := range []string{"", "GGGG", "GGGGGG", "GGRGG", "GG GG", "12345"} {
		_, err := Normalize(input)
		var invalid *InvalidClueError
		require.True(t, errors.As(err, &invalid), input)
		assert.Equal(t, input, invalid.Input)
	}
	_, err := Normalize("GGRGG")
	var invalid *InvalidClueError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, 2, invalid.Position)
}

func TestNormalizeLowercase(t *testing.T) {
	lower, err := Normalize("gyxbb")
	require.NoError(t, err)
	assert.Equal(t, MustParse("GYXXX"), lower)
	_, err = Parse("gyxxx")
	assert.Error(t, err)
}

func TestValidWord(t *testing.T) {
	assert.True(t, ValidWord("TRICE"))
	assert.True(t, ValidWord("crane"))
	for _, w := range []string{"", "TRICES", "TRIC", "TR1CE", "TR CE"} {
		assert.False(t, ValidWord(w), w)
	}
}

func TestParseStrict(t *testing.T) {
	_, err := Parse("BBBBB")
	assert.Error(t, err)
	_, err = Parse("xxxxx")
	assert.Error(t, err)
	p, err := Parse("XXGXX")
	require.NoError(t, err)
	assert.Equal(t, [Size]Color{Absent, Absent, Green, Absent, Absent}, p.Colors())
}

func TestPatternIndex(t *testing.T) {
	assert.Equal(t, Pattern(0), MustParse("XXXXX"))
	assert.Equal(t, Pattern(Count-1), MustParse("GGGGG"))
	assert.Equal(t, Solved, MustParse("GGGGG"))
	assert.Equal(t, Pattern(1), MustParse("XXXXY"))
	assert.Len(t, All(), Count)
}

func TestText(t *testing.T) {
	p := MustParse("GYXYG")
	text, err := p.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "GYXYG", string(text))

	var back Pattern
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, p, back)
	assert.Error(t, back.UnmarshalText([]byte("GYBYG")))
}

func TestCompute(t *testing.T) {
	assert.Equal(t, "XXYXY", Compute("speed", "abide").String())
	assert.Equal(t, "YXYXG", Compute("EERIE", "THERE").String())
	assert.Equal(t, "GGGGG", Compute("trice", "TRICE").String())
	assert.Equal(t, "XXXXX", Compute("atone", "pirls").String())
}
