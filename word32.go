// Package word32 answers "what should my second guess be" for a five letter
// word game, from precomputed strategies and a master lookup table.
//
// A Library owns every cache: the master table and first guess ranking are
// read once, resolved strategies are kept per version.
//
//	lib, err := word32.Open(config.Default(), logger)
//	s, err := lib.Resolve("2d-8r-trice")
//	word, ok, err := strategy.SecondGuess(s, "XXGXX")
package word32

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/powellquiring/word32/clue"
	"github.com/powellquiring/word32/config"
	"github.com/powellquiring/word32/firstguess"
	"github.com/powellquiring/word32/health"
	"github.com/powellquiring/word32/lookup"
	"github.com/powellquiring/word32/sim"
	"github.com/powellquiring/word32/strategy"
	"github.com/powellquiring/word32/words"
)

type Library struct {
	cfg    config.Config
	logger *zap.Logger

	master   *lookup.Source
	ranking  *firstguess.Catalog
	resolver *strategy.Resolver
	catalog  *strategy.Catalog

	group      singleflight.Group
	mu         sync.RWMutex
	strategies map[string]*strategy.Strategy
}

// Open validates cfg and wires the data sources. Nothing is read until first
// use.
func Open(cfg config.Config, logger *zap.Logger) (*Library, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	master := lookup.NewSource(cfg.MasterPath(), logger.Named("lookup"))
	return &Library{
		cfg:     cfg,
		logger:  logger,
		master:  master,
		ranking: firstguess.NewCatalog(cfg.RankingPath(), logger.Named("firstguess")),
		resolver: strategy.NewResolver(strategy.Options{
			DataDir:           cfg.DataDir,
			StrategiesDir:     cfg.StrategiesPath(),
			Master:            master,
			DefaultFirstGuess: cfg.DefaultFirstGuess,
			Logger:            logger.Named("strategy"),
		}),
		catalog:    strategy.NewCatalog(cfg.StrategiesPath(), cfg.CatalogWorkers, logger.Named("catalog")),
		strategies: map[string]*strategy.Strategy{},
	}, nil
}

func (l *Library) Config() config.Config {
	return l.cfg
}

func (l *Library) cached(version string) (*strategy.Strategy, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.strategies[version]
	return s, ok
}

// Resolve returns the strategy for version, resolving it on first request.
// Concurrent first requests for one version share a single resolution.
// Failed resolutions are not cached.
func (l *Library) Resolve(version string) (*strategy.Strategy, error) {
	if version == "" {
		version = strategy.DefaultVersion
	}
	if s, ok := l.cached(version); ok {
		return s, nil
	}
	v, err, _ := l.group.Do(version, func() (any, error) {
		if s, ok := l.cached(version); ok {
			return s, nil
		}
		s, err := l.resolver.Resolve(version)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.strategies[version] = s
		l.mu.Unlock()
		l.logger.Debug("strategy cached", zap.String("version", version), zap.Stringer("format", s.Format()))
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*strategy.Strategy), nil
}

func (l *Library) ResolveByComponents(firstGuess string, depth int) (*strategy.Strategy, error) {
	return l.Resolve(strategy.Version(firstGuess, depth))
}

// SecondGuess resolves version and answers clueSymbols, in either absent
// convention.
func (l *Library) SecondGuess(version, clueSymbols string) (string, bool, error) {
	s, err := l.Resolve(version)
	if err != nil {
		return "", false, err
	}
	return strategy.SecondGuess(s, clueSymbols)
}

func (l *Library) ListByDepth(ctx context.Context, depth int) ([]strategy.Metadata, error) {
	return l.catalog.ListByDepth(ctx, depth)
}

func (l *Library) ListAll(ctx context.Context) ([]strategy.Metadata, error) {
	return l.catalog.ListAll(ctx)
}

func (l *Library) AvailableFirstGuesses() ([]firstguess.Entry, error) {
	return l.ranking.Available()
}

func (l *Library) SelectFirstGuess(word string) (firstguess.Entry, bool, error) {
	return l.ranking.Select(word)
}

// FullStrategyFor maps every pattern of firstGuess in the master table to its
// top second guess.
func (l *Library) FullStrategyFor(firstGuess string) (map[clue.Pattern]string, error) {
	table, err := l.master.Table()
	if err != nil {
		return nil, err
	}
	return table.FullStrategy(firstGuess), nil
}

// Recommend answers from the master table alone, with no strategy file.
func (l *Library) Recommend(firstGuess, clueSymbols string) (string, bool, error) {
	p, err := clue.Normalize(clueSymbols)
	if err != nil {
		return "", false, err
	}
	table, err := l.master.Table()
	if err != nil {
		return "", false, err
	}
	word, ok := table.Top(firstGuess, p)
	return word, ok, nil
}

// Health checks the configured data files. Files that are missing or can not
// be parsed count as empty, which the report flags as critical.
func (l *Library) Health(ctx context.Context, progress bool) (*health.Report, error) {
	in := health.Inputs{Progress: progress}
	var err error
	if in.Ranking, err = l.ranking.Available(); err != nil {
		l.logger.Warn("first guess ranking unusable", zap.Error(err))
	}
	if in.Master, err = l.master.Table(); err != nil {
		l.logger.Warn("master lookup table unusable", zap.Error(err))
	}
	if in.ValidGuesses, err = words.Load(l.cfg.ValidGuessesPath()); err != nil {
		return nil, err
	}
	if in.Targets, err = words.Load(l.cfg.TargetsPath()); err != nil {
		return nil, err
	}
	return health.Check(ctx, in)
}

// Simulate evaluates version against targets, or against the configured
// target list when targets is empty.
func (l *Library) Simulate(ctx context.Context, version string, targets []string, progress bool) (sim.Result, error) {
	s, err := l.Resolve(version)
	if err != nil {
		return sim.Result{}, err
	}
	if len(targets) == 0 {
		if targets, err = words.LoadList(l.cfg.TargetsPath()); err != nil {
			return sim.Result{}, err
		}
		if len(targets) == 0 {
			return sim.Result{}, fmt.Errorf("no targets in %s", l.cfg.TargetsPath())
		}
	}
	return sim.Evaluate(ctx, s, targets, sim.Options{Progress: progress})
}
