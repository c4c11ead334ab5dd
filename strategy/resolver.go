package strategy

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/powellquiring/word32/clue"
	"github.com/powellquiring/word32/lookup"
	"go.uber.org/zap"
)

const (
	DefaultVersion    = "v1.0"
	DefaultFirstGuess = "ATONE"

	// lookupSourceMaster marks a lightweight strategy file.
	lookupSourceMaster = "phase3_lookup"
)

// ErrAmbiguousLegacy is returned for a legacy file holding several first
// guesses, none of them the default one.
var ErrAmbiguousLegacy = errors.New("legacy strategy holds more than one first guess")

// storedStrategy is the lightweight file layout.
type storedStrategy struct {
	Metadata         *Metadata `json:"metadata"`
	FirstGuess       string    `json:"first_guess"`
	SelectedPatterns []string  `json:"selected_patterns"`
	RemainderGuess2  string    `json:"remainder_guess2"`
	LookupSource     string    `json:"lookup_source"`
}

type Options struct {
	// DataDir holds legacy strategy files, <version>.json.
	DataDir string
	// StrategiesDir holds lightweight files, 2d_<depth>r_<word>.json.
	StrategiesDir     string
	Master            *lookup.Source
	DefaultFirstGuess string
	Now               func() time.Time
	Logger            *zap.Logger
}

// Resolver turns version strings into strategies.
type Resolver struct {
	dataDir           string
	strategiesDir     string
	master            *lookup.Source
	defaultFirstGuess string
	now               func() time.Time
	logger            *zap.Logger
}

func NewResolver(opts Options) *Resolver {
	r := &Resolver{
		dataDir:           opts.DataDir,
		strategiesDir:     opts.StrategiesDir,
		master:            opts.Master,
		defaultFirstGuess: strings.ToUpper(opts.DefaultFirstGuess),
		now:               opts.Now,
		logger:            opts.Logger,
	}
	if r.strategiesDir == "" {
		r.strategiesDir = filepath.Join(r.dataDir, "strategies")
	}
	if r.master == nil {
		r.master = lookup.NewSource(filepath.Join(r.dataDir, "phase3_lookup.json"), opts.Logger)
	}
	if r.defaultFirstGuess == "" {
		r.defaultFirstGuess = DefaultFirstGuess
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	return r
}

// Version builds the lightweight version string, e.g. 2d-8r-trice.
func Version(firstGuess string, depth int) string {
	return fmt.Sprintf("2d-%dr-%s", depth, strings.ToLower(firstGuess))
}

var versionRE = regexp.MustCompile(`^2d-(\d+)r-([a-z]+)$`)

// ParseVersion is the inverse of Version.
func ParseVersion(version string) (string, int, bool) {
	m := versionRE.FindStringSubmatch(version)
	if m == nil {
		return "", 0, false
	}
	depth, err := strconv.Atoi(m[1])
	if err != nil {
		return "", 0, false
	}
	return strings.ToUpper(m[2]), depth, true
}

// lightweightFile maps 2d-8r-trice to 2d_8r_trice.json.
func lightweightFile(version string) string {
	return strings.ReplaceAll(version, "-", "_") + ".json"
}

// candidates are the storage locations for version, in the order tried.
func (r *Resolver) candidates(version string) []string {
	return []string{
		filepath.Join(r.strategiesDir, lightweightFile(version)),
		filepath.Join(r.dataDir, version+".json"),
	}
}

func (r *Resolver) locate(version string) (string, fs.FileInfo, bool) {
	for _, path := range r.candidates(version) {
		info, err := os.Stat(path)
		if err == nil && info.Mode().IsRegular() {
			return path, info, true
		}
	}
	return "", nil, false
}

// ResolveByComponents resolves the lightweight strategy for a first guess
// and depth.
func (r *Resolver) ResolveByComponents(firstGuess string, depth int) (*Strategy, error) {
	return r.Resolve(Version(firstGuess, depth))
}

// Resolve loads the strategy named by version. When no file exists for the
// version the result is an empty legacy strategy for the default first guess,
// not an error. Unreadable or malformed files are errors.
func (r *Resolver) Resolve(version string) (*Strategy, error) {
	if version == "" {
		version = DefaultVersion
	}
	if strings.ContainsAny(version, `/\`) || strings.Contains(version, "..") {
		return nil, fmt.Errorf("invalid strategy version %q", version)
	}
	path, info, ok := r.locate(version)
	if !ok {
		r.logger.Debug("no strategy file, using default strategy", zap.String("version", version), zap.String("first_guess", r.defaultFirstGuess))
		return r.degenerate(version), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading strategy %s: %w", version, err)
	}
	var probe struct {
		LookupSource string `json:"lookup_source"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parsing strategy %s: %w", path, err)
	}
	if probe.LookupSource == lookupSourceMaster {
		return r.lightweight(version, path, data, info.ModTime())
	}
	return r.legacy(version, path, data, info.ModTime())
}

func (r *Resolver) degenerate(version string) *Strategy {
	return New(version, r.defaultFirstGuess, NewLegacy(nil), "", nil, synthesizeMetadata(version, r.defaultFirstGuess, r.now()))
}

func (r *Resolver) lightweight(version, path string, data []byte, modTime time.Time) (*Strategy, error) {
	var stored storedStrategy
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("parsing strategy %s: %w", path, err)
	}
	// a file without a first guess is named after it, 2d_8r_trice.json
	firstGuess := strings.ToUpper(stored.FirstGuess)
	if firstGuess == "" {
		if named, _, ok := ParseVersion(version); ok {
			firstGuess = named
		} else {
			firstGuess = r.defaultFirstGuess
		}
	}
	if !clue.ValidWord(firstGuess) {
		return nil, fmt.Errorf("parsing strategy %s: first guess %q is not a %d letter word", path, stored.FirstGuess, clue.Size)
	}
	selected := make([]clue.Pattern, 0, len(stored.SelectedPatterns))
	for _, s := range stored.SelectedPatterns {
		p, err := clue.Normalize(s)
		if err != nil {
			return nil, fmt.Errorf("strategy %s selected patterns: %w", path, err)
		}
		selected = append(selected, p)
	}

	master, err := r.master.Table()
	if err != nil {
		return nil, fmt.Errorf("strategy %s: %w", version, err)
	}
	guess, ok := master.Guess(firstGuess)
	if !ok {
		r.logger.Debug("first guess not in master lookup table", zap.String("version", version), zap.String("first_guess", firstGuess))
	}
	table := NewLightweight(selected, guess)

	metadata := synthesizeMetadata(version, firstGuess, modTime)
	if stored.Metadata != nil && !stored.Metadata.IsZero() {
		metadata = *stored.Metadata
	}
	r.logger.Debug("resolved lightweight strategy",
		zap.String("version", version),
		zap.String("first_guess", firstGuess),
		zap.Int("selected", len(selected)),
		zap.Int("available", len(table.words)))
	return New(version, firstGuess, table, strings.ToUpper(stored.RemainderGuess2), master, metadata), nil
}

func (r *Resolver) legacy(version, path string, data []byte, modTime time.Time) (*Strategy, error) {
	table, err := lookup.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing legacy strategy %s: %w", path, err)
	}
	var guess *lookup.Guess
	switch words := table.Words(); len(words) {
	case 0:
	case 1:
		guess, _ = table.Guess(words[0])
	default:
		var ok bool
		if guess, ok = table.Guess(r.defaultFirstGuess); !ok {
			return nil, fmt.Errorf("%s: %w: %s", path, ErrAmbiguousLegacy, strings.Join(words, ", "))
		}
	}
	firstGuess := r.defaultFirstGuess
	if guess != nil {
		firstGuess = guess.Word
	}
	if !clue.ValidWord(firstGuess) {
		return nil, fmt.Errorf("parsing legacy strategy %s: first guess %q is not a %d letter word", path, firstGuess, clue.Size)
	}
	r.logger.Debug("resolved legacy strategy", zap.String("version", version), zap.String("first_guess", firstGuess))
	return New(version, firstGuess, NewLegacy(guess), "", nil, synthesizeMetadata(version, firstGuess, modTime)), nil
}
