// Package strategy resolves precomputed second guess strategies and answers
// "what should I guess next" for a first guess clue.
//
// Two stored formats exist. A legacy strategy carries the full ranked
// candidate table for its first guess. A lightweight strategy memorizes only
// a selected set of patterns, taking their words from the master lookup
// table, and names a remainder word for every other pattern.
package strategy

import (
	"github.com/powellquiring/word32/bitset"
	"github.com/powellquiring/word32/clue"
	"github.com/powellquiring/word32/lookup"
)

type Format int

const (
	FormatLegacy Format = iota
	FormatLightweight
)

func (f Format) String() string {
	switch f {
	case FormatLegacy:
		return "legacy"
	case FormatLightweight:
		return "lightweight"
	}
	return "unknown"
}

// Table is the pattern to second guess part of a strategy.
type Table interface {
	Format() Format
	Lookup(p clue.Pattern) (string, bool)
	ClueCount() int
}

// Legacy answers every pattern from the first guess's full candidate table.
type Legacy struct {
	guess *lookup.Guess
}

func NewLegacy(guess *lookup.Guess) *Legacy {
	if guess == nil {
		guess = &lookup.Guess{Patterns: map[clue.Pattern]lookup.CandidateList{}}
	}
	return &Legacy{guess: guess}
}

func (l *Legacy) Format() Format { return FormatLegacy }

func (l *Legacy) Lookup(p clue.Pattern) (string, bool) {
	return l.guess.Top(p)
}

func (l *Legacy) ClueCount() int {
	return len(l.guess.Patterns)
}

// Lightweight answers only the selected patterns. Its word map never holds a
// pattern outside the selected set.
type Lightweight struct {
	selected *bitset.PatternSet
	declared int
	words    map[clue.Pattern]string
}

// NewLightweight keeps, for each selected pattern, the top candidate of the
// master sub-table. Selected patterns the sub-table lacks are left out.
func NewLightweight(selected []clue.Pattern, guess *lookup.Guess) *Lightweight {
	l := &Lightweight{
		selected: bitset.New(selected...),
		declared: len(selected),
		words:    make(map[clue.Pattern]string, len(selected)),
	}
	if guess == nil {
		return l
	}
	for _, p := range selected {
		if word, ok := guess.Top(p); ok {
			l.words[p] = word
		}
	}
	return l
}

func (l *Lightweight) Format() Format { return FormatLightweight }

func (l *Lightweight) Lookup(p clue.Pattern) (string, bool) {
	if !l.selected.Has(p) {
		return "", false
	}
	word, ok := l.words[p]
	return word, ok
}

// ClueCount is the declared number of selected patterns, including any the
// master table could not supply.
func (l *Lightweight) ClueCount() int {
	return l.declared
}

func (l *Lightweight) Selected() []clue.Pattern {
	return l.selected.Patterns()
}

// Step names, in the order they are tried.
const (
	StepTable     = "table"
	StepRemainder = "remainder"
	StepMaster    = "master"
)

// Step is one link of the fallback chain.
type Step struct {
	Name   string
	Lookup func(s *Strategy, p clue.Pattern) (string, bool)
}

var tableStep = Step{StepTable, func(s *Strategy, p clue.Pattern) (string, bool) {
	return s.table.Lookup(p)
}}

var remainderStep = Step{StepRemainder, func(s *Strategy, p clue.Pattern) (string, bool) {
	return s.remainder, s.remainder != ""
}}

// masterStep does not consult the selected set.
var masterStep = Step{StepMaster, func(s *Strategy, p clue.Pattern) (string, bool) {
	return s.master.Top(s.firstGuess, p)
}}

// Strategy is a resolved, read-only strategy.
type Strategy struct {
	version    string
	firstGuess string
	table      Table
	remainder  string
	master     *lookup.Table
	metadata   Metadata
	chain      []Step
}

// New assembles a strategy. A non-nil master adds the master table step
// after the remainder step.
func New(version, firstGuess string, table Table, remainder string, master *lookup.Table, metadata Metadata) *Strategy {
	s := &Strategy{
		version:    version,
		firstGuess: firstGuess,
		table:      table,
		remainder:  remainder,
		master:     master,
		metadata:   metadata,
		chain:      []Step{tableStep, remainderStep},
	}
	if master != nil {
		s.chain = append(s.chain, masterStep)
	}
	return s
}

func (s *Strategy) Version() string    { return s.version }
func (s *Strategy) FirstGuess() string { return s.firstGuess }
func (s *Strategy) Remainder() string  { return s.remainder }
func (s *Strategy) Format() Format     { return s.table.Format() }
func (s *Strategy) Table() Table       { return s.table }
func (s *Strategy) ClueCount() int     { return s.table.ClueCount() }

// Metadata returns a copy.
func (s *Strategy) Metadata() Metadata {
	return s.metadata
}

// Chain returns the step names in the order they are tried.
func (s *Strategy) Chain() []string {
	ret := make([]string, len(s.chain))
	for i, step := range s.chain {
		ret[i] = step.Name
	}
	return ret
}

// SecondGuess returns the recommended second guess for the clue the first
// guess produced.
func (s *Strategy) SecondGuess(p clue.Pattern) (string, bool) {
	word, _, ok := s.Explain(p)
	return word, ok
}

// Explain is SecondGuess that also names the step that answered.
func (s *Strategy) Explain(p clue.Pattern) (string, string, bool) {
	for _, step := range s.chain {
		if word, ok := step.Lookup(s, p); ok {
			return word, step.Name, true
		}
	}
	return "", "", false
}

// SecondGuess normalizes clue symbols, in either absent convention, and
// queries s.
func SecondGuess(s *Strategy, symbols string) (string, bool, error) {
	p, err := clue.Normalize(symbols)
	if err != nil {
		return "", false, err
	}
	word, ok := s.SecondGuess(p)
	return word, ok, nil
}
