package words

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dataDir = filepath.Join("..", "testdata", "data")

func TestRead(t *testing.T) {
	list, err := Read(strings.NewReader("crane\n  Slate \n\nab\ntoolong\ncrane\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"CRANE", "SLATE", "CRANE"}, list)
}

func TestLoad(t *testing.T) {
	valid, err := Load(filepath.Join(dataDir, "valid_guesses.txt"))
	require.NoError(t, err)
	assert.True(t, valid.Contains("CLOUD"))
	assert.True(t, valid.Contains("PIRLS"))
	assert.False(t, valid.Contains("GUMBO"))
	assert.False(t, valid.Contains("cloud"))

	targets, err := LoadList(filepath.Join(dataDir, "targets.txt"))
	require.NoError(t, err)
	assert.Len(t, targets, 300)
	assert.Equal(t, "ABIDE", targets[0])
}

func TestLoadDeduplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, os.WriteFile(path, []byte("crane\nCRANE\nslate\n"), 0o644))
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Cardinality())
	got := Strings(s)
	slices.Sort(got)
	assert.Equal(t, []string{"CRANE", "SLATE"}, got)
}

func TestLoadMissing(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "none.txt"))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Cardinality())

	list, err := LoadList(filepath.Join(t.TempDir(), "none.txt"))
	require.NoError(t, err)
	assert.Empty(t, list)
}
