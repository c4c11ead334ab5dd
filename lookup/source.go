package lookup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"go.uber.org/zap"
)

// Source loads the master table from a file on first use and hands out the
// same *Table for the rest of its life. It is safe for concurrent use.
type Source struct {
	path   string
	logger *zap.Logger

	once  sync.Once
	table *Table
	err   error
}

func NewSource(path string, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{path: path, logger: logger}
}

// Preloaded wraps an already built table, mostly for tests.
func Preloaded(table *Table) *Source {
	s := &Source{logger: zap.NewNop(), table: table}
	s.once.Do(func() {})
	return s
}

func (s *Source) Path() string {
	return s.path
}

// Table returns the cached table, loading it on the first call. A missing
// file gives an empty table. A load error is kept and returned on every call.
func (s *Source) Table() (*Table, error) {
	s.once.Do(func() {
		s.table, s.err = s.load()
	})
	return s.table, s.err
}

func (s *Source) load() (*Table, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("master lookup table not found, using empty table", zap.String("path", s.path))
		return Empty(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening master lookup table: %w", err)
	}
	defer f.Close()
	table, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	s.logger.Debug("master lookup table loaded", zap.String("path", s.path), zap.Int("first_guesses", table.Len()))
	return table, nil
}
