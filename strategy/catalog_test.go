package strategy

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var strategiesDir = filepath.Join(dataDir, "strategies")

func guesses(ms []Metadata) []string {
	ret := make([]string, len(ms))
	for i, m := range ms {
		ret[i] = m.Guess1
	}
	return ret
}

func TestListByDepth(t *testing.T) {
	defer goleak.VerifyNone(t)
	c := NewCatalog(strategiesDir, 4, nil)
	ms, err := c.ListByDepth(context.Background(), 8)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(ms), 10)
	for i, m := range ms {
		assert.Equal(t, 8, m.ClueCount)
		if i > 0 {
			assert.GreaterOrEqual(t, ms[i-1].WinRate2D, m.WinRate2D)
		}
	}
	// CRATE/CRONE and ARISE/RAISE tie, file name order is kept
	want := []string{"TRICE", "CRATE", "CRONE", "SIREN", "DEALT", "SITAR", "SLATE", "TRACE", "STARE", "ARISE", "RAISE"}
	if diff := cmp.Diff(want, guesses(ms)); diff != "" {
		t.Errorf("ListByDepth(8) order (-want +got):\n%s", diff)
	}

	ms, err = c.ListByDepth(context.Background(), 16)
	require.NoError(t, err)
	assert.Equal(t, []string{"CRONE", "TRICE"}, guesses(ms))

	ms, err = c.ListByDepth(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, ms)
}

func TestListAll(t *testing.T) {
	c := NewCatalog(strategiesDir, 2, nil)
	ms, err := c.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, ms, 13)
	for _, m := range ms[:11] {
		assert.Equal(t, 8, m.ClueCount)
	}
	assert.Equal(t, []string{"CRONE", "TRICE"}, guesses(ms[11:]))
	for _, m := range ms {
		assert.NotZero(t, m.WinRate2D)
	}
}

func TestListSkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"2d_8r_trice.json", "2d_8r_crone.json"} {
		data, err := os.ReadFile(filepath.Join(strategiesDir, name))
		require.NoError(t, err)
		writeFile(t, filepath.Join(dir, name), string(data))
	}
	writeFile(t, filepath.Join(dir, "2d_8r_bad.json"), "{not json")
	writeFile(t, filepath.Join(dir, "2d_8r_nometa.json"), `{"first_guess": "SLATE", "lookup_source": "phase3_lookup"}`)
	writeFile(t, filepath.Join(dir, "2d_8r_array.json"), `{"metadata": [1, 2]}`)
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a strategy")

	core, logs := observer.New(zapcore.WarnLevel)
	c := NewCatalog(dir, 3, zap.New(core))
	ms, err := c.ListByDepth(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, []string{"TRICE", "CRONE"}, guesses(ms))
	assert.Equal(t, 3, logs.FilterMessage("skipping strategy file").Len())
}

func TestListMissingDirectory(t *testing.T) {
	c := NewCatalog(filepath.Join(t.TempDir(), "strategies"), 1, nil)
	ms, err := c.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ms)
}

func TestListCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewCatalog(strategiesDir, 1, nil)
	_, err := c.ListAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
