// Package lookup holds the master lookup table: for every first guess, the
// ranked second guess candidates for each clue pattern it can produce.
//
// The table is read once from a JSON file shaped as
//
//	{"ATONE": {"XXXXX": [{"second_guess": "PIRLS", "rank": 1}, ...], ...}, ...}
//
// and is never mutated afterwards.
package lookup

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/powellquiring/word32/clue"
)

type Candidate struct {
	Word              string  `json:"second_guess"`
	Rank              int     `json:"rank"`
	ExpectedRemaining float64 `json:"expected_remaining,omitempty"`
}

// CandidateList is ordered, index 0 is the top ranked candidate.
type CandidateList []Candidate

func (cl CandidateList) Top() (Candidate, bool) {
	if len(cl) == 0 {
		return Candidate{}, false
	}
	return cl[0], true
}

// Guess is the sub-table for one first guess.
type Guess struct {
	Word     string
	Patterns map[clue.Pattern]CandidateList
	// Invalid keys from the source that are not canonical patterns.
	Invalid []string
	// Duplicates are source first guess keys equal to Word ignoring case.
	// Only the first key in sorted order is kept, upper case sorts first.
	Duplicates []string
}

func (g *Guess) Candidates(p clue.Pattern) (CandidateList, bool) {
	cl, ok := g.Patterns[p]
	return cl, ok
}

// Top returns the top ranked second guess for p.
func (g *Guess) Top(p clue.Pattern) (string, bool) {
	candidate, ok := g.Patterns[p].Top()
	if !ok {
		return "", false
	}
	return candidate.Word, true
}

// Table maps an upper case first guess to its sub-table.
type Table struct {
	guesses map[string]*Guess
}

func Empty() *Table {
	return &Table{guesses: map[string]*Guess{}}
}

// Parse decodes a lookup table. Malformed JSON is an error, pattern keys that
// are not canonical are kept in Guess.Invalid.
func Parse(r io.Reader) (*Table, error) {
	raw := map[string]map[string]CandidateList{}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding lookup table: %w", err)
	}
	return FromRaw(raw), nil
}

func FromRaw(raw map[string]map[string]CandidateList) *Table {
	ret := Empty()
	for _, word := range slices.Sorted(maps.Keys(raw)) {
		patterns := raw[word]
		if kept, ok := ret.guesses[strings.ToUpper(word)]; ok {
			kept.Duplicates = append(kept.Duplicates, word)
			continue
		}
		guess := &Guess{Word: strings.ToUpper(word), Patterns: make(map[clue.Pattern]CandidateList, len(patterns))}
		for key, candidates := range patterns {
			p, err := clue.Parse(key)
			if err != nil {
				guess.Invalid = append(guess.Invalid, key)
				continue
			}
			for i := range candidates {
				candidates[i].Word = strings.ToUpper(candidates[i].Word)
			}
			guess.Patterns[p] = candidates
		}
		slices.Sort(guess.Invalid)
		ret.guesses[guess.Word] = guess
	}
	return ret
}

func (t *Table) Len() int {
	return len(t.guesses)
}

func (t *Table) Guess(word string) (*Guess, bool) {
	g, ok := t.guesses[strings.ToUpper(word)]
	return g, ok
}

// Words returns the first guesses in sorted order.
func (t *Table) Words() []string {
	return slices.Sorted(maps.Keys(t.guesses))
}

// Top returns the top ranked second guess for a first guess and pattern.
func (t *Table) Top(word string, p clue.Pattern) (string, bool) {
	g, ok := t.Guess(word)
	if !ok {
		return "", false
	}
	return g.Top(p)
}

// FullStrategy returns every pattern's top ranked second guess for one first
// guess. The map is empty when the first guess is not in the table.
func (t *Table) FullStrategy(word string) map[clue.Pattern]string {
	ret := map[clue.Pattern]string{}
	g, ok := t.Guess(word)
	if !ok {
		return ret
	}
	for p, candidates := range g.Patterns {
		if candidate, ok := candidates.Top(); ok {
			ret[p] = candidate.Word
		}
	}
	return ret
}
