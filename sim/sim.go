// Package sim plays the first two guesses of a strategy against a list of
// targets and reports how often the second guess wins.
package sim

import (
	"context"
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/schollz/progressbar/v3"

	"github.com/powellquiring/word32/clue"
	"github.com/powellquiring/word32/strategy"
)

type Options struct {
	// Progress shows a progress bar on stderr.
	Progress bool
}

type Result struct {
	Version    string
	FirstGuess string
	Targets    []string
	// Solved targets were found by the first or second guess.
	Solved *bitset.BitSet
	// Unresolved targets produced a first clue the strategy has no answer for.
	Unresolved *bitset.BitSet
	// FirstClues counts targets per first clue.
	FirstClues map[clue.Pattern]int
	// MeanRemaining is the mean number of targets consistent with the first clue.
	MeanRemaining float64
}

func (r Result) Games() int {
	return len(r.Targets)
}

func (r Result) Wins() int {
	return int(r.Solved.Count())
}

// WinRate is the share of targets solved within two guesses.
func (r Result) WinRate() float64 {
	if len(r.Targets) == 0 {
		return 0
	}
	return float64(r.Wins()) / float64(len(r.Targets))
}

func members(set *bitset.BitSet, targets []string) []string {
	ret := make([]string, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		ret = append(ret, targets[i])
	}
	return ret
}

func (r Result) SolvedTargets() []string {
	return members(r.Solved, r.Targets)
}

func (r Result) UnresolvedTargets() []string {
	return members(r.Unresolved, r.Targets)
}

// Evaluate plays s against every target. Targets are compared ignoring case.
func Evaluate(ctx context.Context, s *strategy.Strategy, targets []string, opts Options) (Result, error) {
	first := strings.ToUpper(s.FirstGuess())
	if !clue.ValidWord(first) {
		return Result{}, fmt.Errorf("strategy %s: first guess %q is not a %d letter word", s.Version(), first, clue.Size)
	}
	upper := make([]string, len(targets))
	for i, t := range targets {
		if !clue.ValidWord(t) {
			return Result{}, fmt.Errorf("target %q is not a %d letter word", t, clue.Size)
		}
		upper[i] = strings.ToUpper(t)
	}
	ret := Result{
		Version:    s.Version(),
		FirstGuess: first,
		Targets:    upper,
		Solved:     bitset.New(uint(len(upper))),
		Unresolved: bitset.New(uint(len(upper))),
		FirstClues: map[clue.Pattern]int{},
	}
	if len(upper) == 0 {
		return ret, nil
	}

	clues := make([]clue.Pattern, len(upper))
	for i, t := range upper {
		clues[i] = clue.Compute(first, t)
		ret.FirstClues[clues[i]]++
	}

	var bar *progressbar.ProgressBar
	if opts.Progress {
		bar = progressbar.Default(int64(len(upper)), "simulating "+s.Version())
	} else {
		bar = progressbar.DefaultSilent(int64(len(upper)))
	}
	defer bar.Finish()

	remaining := 0
	for i, target := range upper {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		bar.Add(1)
		p := clues[i]
		remaining += ret.FirstClues[p]
		if p == clue.Solved {
			ret.Solved.Set(uint(i))
			continue
		}
		second, ok := s.SecondGuess(p)
		if !ok {
			ret.Unresolved.Set(uint(i))
			continue
		}
		if strings.EqualFold(second, target) {
			ret.Solved.Set(uint(i))
		}
	}
	ret.MeanRemaining = float64(remaining) / float64(len(upper))
	return ret, nil
}
