// Package health reports on the completeness and consistency of the data
// files a strategy resolution reads: the first guess ranking, the master
// lookup table and the word lists.
package health

import (
	"context"
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set"
	"github.com/schollz/progressbar/v3"

	"github.com/powellquiring/word32/bitset"
	"github.com/powellquiring/word32/clue"
	"github.com/powellquiring/word32/firstguess"
	"github.com/powellquiring/word32/lookup"
	"github.com/powellquiring/word32/words"
)

// LowCoverageLimit is the pattern count under which a first guess is flagged.
const LowCoverageLimit = 10

type Status int

const (
	OK Status = iota
	Issues
	Critical
)

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case Issues:
		return "issues"
	case Critical:
		return "critical"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// ExitCode is the process exit code for a report with this status.
func (s Status) ExitCode() int {
	return int(s)
}

// Inputs are the loaded data files. A nil Master or set is treated as empty.
type Inputs struct {
	Ranking      []firstguess.Entry
	Master       *lookup.Table
	ValidGuesses mapset.Set
	Targets      mapset.Set
	// Progress shows a progress bar on stderr while first guesses are checked.
	Progress bool
}

type Summary struct {
	TotalFirstGuesses    int `json:"total_first_guesses"`
	FirstGuessesInMaster int `json:"first_guesses_in_master"`
	TotalCluePatterns    int `json:"total_clue_patterns"`
	ValidGuessesCount    int `json:"valid_guesses_count"`
	TargetsCount         int `json:"targets_count"`
}

type Coverage struct {
	RankedGuesses int      `json:"ranked_guesses"`
	MasterGuesses int      `json:"master_guesses"`
	Missing       []string `json:"missing_in_master"`
	Orphaned      []string `json:"orphaned_in_master"`
}

type GuessReport struct {
	FirstGuess        string   `json:"first_guess"`
	Rank              int      `json:"rank"`
	PatternCount      int      `json:"clue_pattern_count"`
	CoveragePercent   float64  `json:"coverage_percentage"`
	ExpectedRemaining float64  `json:"expected_remaining"`
	InvalidPatterns   []string `json:"invalid_patterns,omitempty"`
	DuplicateKeys     []string `json:"duplicate_keys,omitempty"`
}

// InvalidWord is a top second guess missing from the valid guess list.
type InvalidWord struct {
	FirstGuess string       `json:"first_guess"`
	Pattern    clue.Pattern `json:"pattern"`
	Word       string       `json:"word"`
}

type Report struct {
	Summary         Summary       `json:"summary"`
	Coverage        Coverage      `json:"coverage"`
	PerFirstGuess   []GuessReport `json:"per_first_guess"`
	InvalidWords    []InvalidWord `json:"invalid_words"`
	LowCoverage     []GuessReport `json:"low_coverage"`
	AveragePatterns float64       `json:"average_patterns_per_guess"`
	// DistinctPatterns counts the patterns answered by at least one first guess.
	DistinctPatterns int      `json:"distinct_patterns"`
	Recommendations  []string `json:"recommendations"`
	Critical         bool     `json:"critical"`
}

func (r *Report) Status() Status {
	switch {
	case r.Critical:
		return Critical
	case len(r.Coverage.Missing) > 0 || len(r.InvalidWords) > 0 || r.invalidPatternCount() > 0 || r.duplicateKeyCount() > 0:
		return Issues
	}
	return OK
}

func (r *Report) invalidPatternCount() int {
	n := 0
	for _, g := range r.PerFirstGuess {
		n += len(g.InvalidPatterns)
	}
	return n
}

func (r *Report) duplicateKeyCount() int {
	n := 0
	for _, g := range r.PerFirstGuess {
		n += len(g.DuplicateKeys)
	}
	return n
}

func emptyIfNil(s mapset.Set) mapset.Set {
	if s == nil {
		return mapset.NewThreadUnsafeSet()
	}
	return s
}

func sortedStrings(s mapset.Set) []string {
	ret := words.Strings(s)
	slices.Sort(ret)
	return ret
}

// Check builds the report. It only fails when ctx is done.
func Check(ctx context.Context, in Inputs) (*Report, error) {
	master := in.Master
	if master == nil {
		master = lookup.Empty()
	}
	valid := emptyIfNil(in.ValidGuesses)
	targets := emptyIfNil(in.Targets)

	r := &Report{
		Summary: Summary{
			TotalFirstGuesses: len(in.Ranking),
			ValidGuessesCount: valid.Cardinality(),
			TargetsCount:      targets.Cardinality(),
		},
		PerFirstGuess: []GuessReport{},
		InvalidWords:  []InvalidWord{},
		LowCoverage:   []GuessReport{},
	}
	if len(in.Ranking) == 0 {
		r.Critical = true
		r.Recommendations = append(r.Recommendations, "CRITICAL: first guess ranking not found or invalid")
		return r, nil
	}
	if master.Len() == 0 {
		r.Critical = true
		r.Recommendations = append(r.Recommendations, "CRITICAL: master lookup table not found or invalid")
		return r, nil
	}

	ranked := mapset.NewThreadUnsafeSet()
	for _, e := range in.Ranking {
		ranked.Add(e.FirstGuess)
	}
	inMaster := mapset.NewThreadUnsafeSet()
	for _, w := range master.Words() {
		inMaster.Add(w)
	}
	r.Coverage = Coverage{
		RankedGuesses: ranked.Cardinality(),
		MasterGuesses: inMaster.Cardinality(),
		Missing:       sortedStrings(ranked.Difference(inMaster)),
		Orphaned:      sortedStrings(inMaster.Difference(ranked)),
	}
	common := ranked.Intersect(inMaster)
	r.Summary.FirstGuessesInMaster = common.Cardinality()

	var bar *progressbar.ProgressBar
	if in.Progress {
		bar = progressbar.Default(int64(len(in.Ranking)), "checking first guesses")
	} else {
		bar = progressbar.DefaultSilent(int64(len(in.Ranking)))
	}
	defer bar.Finish()

	seen := bitset.New()
	checked := mapset.NewThreadUnsafeSet()
	for _, e := range in.Ranking {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		bar.Add(1)
		if !common.Contains(e.FirstGuess) || !checked.Add(e.FirstGuess) {
			continue
		}
		g, _ := master.Guess(e.FirstGuess)
		count := len(g.Patterns)
		gr := GuessReport{
			FirstGuess:        e.FirstGuess,
			Rank:              e.Rank,
			PatternCount:      count,
			CoveragePercent:   float64(count) / clue.Count * 100,
			ExpectedRemaining: e.ExpectedRemaining,
			InvalidPatterns:   slices.Clone(g.Invalid),
			DuplicateKeys:     slices.Clone(g.Duplicates),
		}
		r.PerFirstGuess = append(r.PerFirstGuess, gr)
		r.Summary.TotalCluePatterns += count
		if count < LowCoverageLimit {
			r.LowCoverage = append(r.LowCoverage, gr)
		}
		answered := bitset.New()
		for p := range g.Patterns {
			answered.Set(p)
		}
		seen = seen.Union(answered)
		for _, p := range answered.Patterns() {
			candidates, _ := g.Candidates(p)
			top, ok := candidates.Top()
			if !ok || top.Word == "" {
				continue
			}
			if !valid.Contains(top.Word) {
				r.InvalidWords = append(r.InvalidWords, InvalidWord{FirstGuess: e.FirstGuess, Pattern: p, Word: top.Word})
			}
		}
	}
	slices.SortStableFunc(r.PerFirstGuess, func(a, b GuessReport) int { return a.Rank - b.Rank })
	r.DistinctPatterns = seen.Count()
	if n := len(r.PerFirstGuess); n > 0 {
		r.AveragePatterns = float64(r.Summary.TotalCluePatterns) / float64(n)
	}
	r.Recommendations = recommendations(r)
	return r, nil
}

func recommendations(r *Report) []string {
	var ret []string
	if n := len(r.Coverage.Missing); n > 0 {
		ret = append(ret, fmt.Sprintf("Missing %d first guesses in the master lookup table", n))
	}
	if n := len(r.InvalidWords); n > 0 {
		ret = append(ret, fmt.Sprintf("Found %d invalid second guess words", n))
	}
	if n := r.invalidPatternCount(); n > 0 {
		ret = append(ret, fmt.Sprintf("Found %d invalid clue pattern keys", n))
	}
	if n := r.duplicateKeyCount(); n > 0 {
		ret = append(ret, fmt.Sprintf("Found %d first guess keys duplicated ignoring case", n))
	}
	if n := len(r.LowCoverage); n > 0 {
		ret = append(ret, fmt.Sprintf("Found %d first guesses with low clue pattern coverage (<%d patterns)", n, LowCoverageLimit))
	}
	if len(ret) == 0 {
		ret = append(ret, "All checks passed - data is healthy!")
	}
	return ret
}
