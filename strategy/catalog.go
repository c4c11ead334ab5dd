package strategy

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/buger/jsonparser"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var errNoMetadata = errors.New("no metadata object")

// Catalog lists the lightweight strategies stored in one directory.
type Catalog struct {
	dir     string
	workers int
	logger  *zap.Logger
}

func NewCatalog(dir string, workers int, logger *zap.Logger) *Catalog {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{dir: dir, workers: workers, logger: logger}
}

// ListByDepth returns the metadata of every strategy memorizing depth
// patterns, best win rate first. Equal win rates keep file name order.
func (c *Catalog) ListByDepth(ctx context.Context, depth int) ([]Metadata, error) {
	ret, err := c.scan(ctx, fmt.Sprintf("2d_%dr_*.json", depth))
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(ret, byWinRate)
	return ret, nil
}

// ListAll returns the metadata of every stored strategy ordered by clue count,
// then best win rate first.
func (c *Catalog) ListAll(ctx context.Context) ([]Metadata, error) {
	ret, err := c.scan(ctx, "2d_*.json")
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(ret, func(a, b Metadata) int {
		if n := cmp.Compare(a.ClueCount, b.ClueCount); n != 0 {
			return n
		}
		return byWinRate(a, b)
	})
	return ret, nil
}

func byWinRate(a, b Metadata) int {
	return cmp.Compare(b.WinRate2D, a.WinRate2D)
}

// scan reads the metadata of the files matching pattern, in file name order.
// Files that can not be read or carry no metadata are skipped.
func (c *Catalog) scan(ctx context.Context, pattern string) ([]Metadata, error) {
	paths, err := filepath.Glob(filepath.Join(c.dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("listing strategies: %w", err)
	}
	found := make([]*Metadata, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := readMetadata(path)
			if err != nil {
				c.logger.Warn("skipping strategy file", zap.String("path", path), zap.Error(err))
				return nil
			}
			found[i] = &m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	ret := make([]Metadata, 0, len(found))
	for _, m := range found {
		if m != nil {
			ret = append(ret, *m)
		}
	}
	return ret, nil
}

// readMetadata decodes only the metadata object of a strategy file.
func readMetadata(path string) (Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, err
	}
	value, dataType, _, err := jsonparser.Get(data, "metadata")
	if errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return Metadata{}, errNoMetadata
	}
	if err != nil {
		return Metadata{}, err
	}
	if dataType != jsonparser.Object {
		return Metadata{}, fmt.Errorf("metadata is %s, want object", dataType)
	}
	var m Metadata
	if err := json.Unmarshal(value, &m); err != nil {
		return Metadata{}, err
	}
	return m, nil
}
