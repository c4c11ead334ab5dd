package health

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	mapset "github.com/deckarep/golang-set"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/powellquiring/word32/clue"
	"github.com/powellquiring/word32/firstguess"
	"github.com/powellquiring/word32/lookup"
	"github.com/powellquiring/word32/words"
)

var dataDir = filepath.Join("..", "testdata", "data")

func fixtureInputs(t *testing.T) Inputs {
	t.Helper()
	ranking, err := firstguess.NewCatalog(filepath.Join(dataDir, "phase2_naive_32.json"), nil).Available()
	require.NoError(t, err)
	f, err := os.Open(filepath.Join(dataDir, "phase3_lookup.json"))
	require.NoError(t, err)
	defer f.Close()
	master, err := lookup.Parse(f)
	require.NoError(t, err)
	valid, err := words.Load(filepath.Join(dataDir, "valid_guesses.txt"))
	require.NoError(t, err)
	targets, err := words.Load(filepath.Join(dataDir, "targets.txt"))
	require.NoError(t, err)
	return Inputs{Ranking: ranking, Master: master, ValidGuesses: valid, Targets: targets}
}

func TestCheckFixture(t *testing.T) {
	r, err := Check(context.Background(), fixtureInputs(t))
	require.NoError(t, err)

	assert.Equal(t, 32, r.Summary.TotalFirstGuesses)
	assert.Equal(t, 26, r.Summary.FirstGuessesInMaster)
	assert.Equal(t, 1799, r.Summary.TotalCluePatterns)
	assert.Equal(t, 300, r.Summary.TargetsCount)
	assert.Equal(t, []string{"IRATE", "OATER", "ORATE", "SAINT", "TIRES", "TRIES"}, r.Coverage.Missing)
	assert.Equal(t, []string{"ROATE"}, r.Coverage.Orphaned)
	assert.Equal(t, 27, r.Coverage.MasterGuesses)
	assert.Equal(t, 193, r.DistinctPatterns)
	assert.Empty(t, r.LowCoverage)
	assert.InDelta(t, 1799.0/26, r.AveragePatterns, 1e-9)

	require.Len(t, r.PerFirstGuess, 26)
	assert.Equal(t, "TRICE", r.PerFirstGuess[0].FirstGuess)
	for i := 1; i < len(r.PerFirstGuess); i++ {
		assert.Less(t, r.PerFirstGuess[i-1].Rank, r.PerFirstGuess[i].Rank)
	}
	for _, g := range r.PerFirstGuess {
		switch g.FirstGuess {
		case "ATONE":
			assert.Equal(t, 69, g.PatternCount)
			assert.InDelta(t, 69.0/243*100, g.CoveragePercent, 1e-9)
		case "SLATE":
			assert.Equal(t, []string{"GGBXX"}, g.InvalidPatterns)
			assert.Equal(t, 64, g.PatternCount)
		default:
			assert.Empty(t, g.InvalidPatterns, g.FirstGuess)
		}
	}

	assert.Len(t, r.InvalidWords, 32)
	for _, iw := range r.InvalidWords {
		assert.Equal(t, "GUMBO", iw.Word)
		assert.NotEqual(t, "ROATE", iw.FirstGuess)
	}
	assert.Contains(t, r.InvalidWords, InvalidWord{FirstGuess: "ALERT", Pattern: clue.MustParse("GXXXX"), Word: "GUMBO"})

	assert.Equal(t, Issues, r.Status())
	assert.Equal(t, 1, r.Status().ExitCode())
	assert.Equal(t, []string{
		"Missing 6 first guesses in the master lookup table",
		"Found 32 invalid second guess words",
		"Found 1 invalid clue pattern keys",
	}, r.Recommendations)
}

func TestCheckHealthy(t *testing.T) {
	master := lookup.FromRaw(map[string]map[string]lookup.CandidateList{
		"crane": {
			"XXXXX": {{Word: "pilot", Rank: 1}},
			"GXXXX": {{Word: "cloud", Rank: 1}},
		},
	})
	in := Inputs{
		Ranking:      []firstguess.Entry{{FirstGuess: "CRANE", Rank: 1}},
		Master:       master,
		ValidGuesses: mapset.NewSet("PILOT", "CLOUD"),
	}
	r, err := Check(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, OK, r.Status())
	assert.Equal(t, 2, r.DistinctPatterns)
	// healthy data may still have few patterns
	require.Len(t, r.LowCoverage, 1)
	assert.Equal(t, 2, r.LowCoverage[0].PatternCount)
	assert.Equal(t, []string{"Found 1 first guesses with low clue pattern coverage (<10 patterns)"}, r.Recommendations)
}

func TestCheckDuplicateKeys(t *testing.T) {
	master := lookup.FromRaw(map[string]map[string]lookup.CandidateList{
		"CRANE": {"XXXXX": {{Word: "PILOT", Rank: 1}}},
		"crane": {"GXXXX": {{Word: "CLOUD", Rank: 1}}},
	})
	in := Inputs{
		Ranking:      []firstguess.Entry{{FirstGuess: "CRANE", Rank: 1}},
		Master:       master,
		ValidGuesses: mapset.NewSet("PILOT", "CLOUD"),
	}
	r, err := Check(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, r.PerFirstGuess, 1)
	assert.Equal(t, []string{"crane"}, r.PerFirstGuess[0].DuplicateKeys)
	assert.Equal(t, 1, r.DistinctPatterns)
	assert.Equal(t, Issues, r.Status())
	assert.Contains(t, r.Recommendations, "Found 1 first guess keys duplicated ignoring case")

	var out bytes.Buffer
	r.Print(&out, true)
	assert.Contains(t, out.String(), "Duplicate first guess keys: 1")
	assert.Contains(t, out.String(), "  - CRANE: crane")
}

func TestCheckCritical(t *testing.T) {
	r, err := Check(context.Background(), Inputs{})
	require.NoError(t, err)
	assert.Equal(t, Critical, r.Status())
	assert.Equal(t, 2, r.Status().ExitCode())
	assert.Equal(t, []string{"CRITICAL: first guess ranking not found or invalid"}, r.Recommendations)

	in := fixtureInputs(t)
	in.Master = lookup.Empty()
	r, err = Check(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, Critical, r.Status())
	assert.Equal(t, []string{"CRITICAL: master lookup table not found or invalid"}, r.Recommendations)
}

func TestCheckCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Check(ctx, fixtureInputs(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPrint(t *testing.T) {
	r, err := Check(context.Background(), fixtureInputs(t))
	require.NoError(t, err)

	var quiet, verbose bytes.Buffer
	r.Print(&quiet, false)
	r.Print(&verbose, true)
	assert.Contains(t, quiet.String(), "Total first guesses: 32")
	assert.Contains(t, quiet.String(), "Missing in master lookup table: 6")
	assert.NotContains(t, quiet.String(), "PER-FIRST-GUESS BREAKDOWN")
	assert.Contains(t, verbose.String(), "  - orphaned ROATE")
	assert.Contains(t, verbose.String(), "  - SLATE: GGBXX")
	assert.Contains(t, verbose.String(), "ATONE (rank 6): 69 patterns (28.4% coverage)")
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "ok", OK.String())
	assert.Equal(t, "critical", Critical.String())
	assert.Equal(t, "Status(7)", Status(7).String())
}
