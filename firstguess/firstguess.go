// Package firstguess reads the ranked list of candidate first guesses.
package firstguess

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// DefaultCoverage is the estimated share of clue patterns the lookup table
// covers for a ranked first guess.
const DefaultCoverage = 0.8125

type Metrics struct {
	MaxRemaining  int     `json:"max_remaining"`
	ClueDiversity int     `json:"clue_diversity"`
	Variance      float64 `json:"variance"`
	StdDev        float64 `json:"std_dev"`
}

type Entry struct {
	FirstGuess        string  `json:"first_guess"`
	Rank              int     `json:"rank"`
	ExpectedRemaining float64 `json:"expected_remaining"`
	Metrics           Metrics `json:"metrics"`
	Available         bool    `json:"available"`
	Coverage          float64 `json:"coverage"`
}

// ranked is one record of the ranking file.
type ranked struct {
	Guess             string  `json:"guess"`
	Rank              int     `json:"rank"`
	ExpectedRemaining float64 `json:"expected_remaining"`
	MaxRemaining      int     `json:"max_remaining"`
	ClueDiversity     int     `json:"clue_diversity"`
	Variance          float64 `json:"variance"`
	StdDev            float64 `json:"std_dev"`
}

// Catalog loads the ranking file once and serves copies of it.
type Catalog struct {
	path   string
	logger *zap.Logger

	once    sync.Once
	entries []Entry
	err     error
}

func NewCatalog(path string, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{path: path, logger: logger}
}

func (c *Catalog) load() ([]Entry, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		c.logger.Debug("first guess ranking not found", zap.String("path", c.path))
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading first guess ranking: %w", err)
	}
	var records []ranked
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing first guess ranking %s: %w", c.path, err)
	}
	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, Entry{
			FirstGuess:        strings.ToUpper(r.Guess),
			Rank:              r.Rank,
			ExpectedRemaining: r.ExpectedRemaining,
			Metrics: Metrics{
				MaxRemaining:  r.MaxRemaining,
				ClueDiversity: r.ClueDiversity,
				Variance:      r.Variance,
				StdDev:        r.StdDev,
			},
			Available: true,
			Coverage:  DefaultCoverage,
		})
	}
	c.logger.Debug("first guess ranking loaded", zap.String("path", c.path), zap.Int("entries", len(entries)))
	return entries, nil
}

func (c *Catalog) cached() ([]Entry, error) {
	c.once.Do(func() {
		c.entries, c.err = c.load()
	})
	return c.entries, c.err
}

// Available returns every ranked first guess in file order. The slice is the
// caller's to modify.
func (c *Catalog) Available() ([]Entry, error) {
	entries, err := c.cached()
	if err != nil {
		return nil, err
	}
	return slices.Clone(entries), nil
}

// Select finds a first guess by word, ignoring case.
func (c *Catalog) Select(word string) (Entry, bool, error) {
	entries, err := c.cached()
	if err != nil {
		return Entry{}, false, err
	}
	word = strings.ToUpper(word)
	for _, e := range entries {
		if e.FirstGuess == word {
			return e, true, nil
		}
	}
	return Entry{}, false, nil
}
