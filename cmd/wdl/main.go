package main

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"slices"

	"github.com/urfave/cli/v3" // imports as package "cli"
	"go.uber.org/zap"

	"github.com/powellquiring/word32"
	"github.com/powellquiring/word32/clue"
	"github.com/powellquiring/word32/config"
	"github.com/powellquiring/word32/strategy"
)

// second prints the second guess of a strategy for the clue of its first guess
func second(globalConfig GlobalConfiguration, version, clueSymbols string) error {
	s, err := globalConfig.library.Resolve(version)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	p, err := clue.Normalize(clueSymbols)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	word, step, ok := s.Explain(p)
	if !ok {
		fmt.Printf("%s %s: no second guess\n", s.FirstGuess(), p)
		return nil
	}
	fmt.Printf("%s %s: %s (%s)\n", s.FirstGuess(), p, word, step)
	return nil
}

func strategies(ctx context.Context, globalConfig GlobalConfiguration, depth int) error {
	var ms []strategy.Metadata
	var err error
	if depth > 0 {
		ms, err = globalConfig.library.ListByDepth(ctx, depth)
	} else {
		ms, err = globalConfig.library.ListAll(ctx)
	}
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	for _, m := range ms {
		fmt.Printf("%-14s %s clues:%d win:%.2f%% remaining:%.2f remainder:%s\n",
			m.Version, m.Guess1, m.ClueCount, m.WinRate2D*100, m.MeanRemaining2D, m.RemainderGuess2)
	}
	return nil
}

func first(globalConfig GlobalConfiguration, word string) error {
	lib := globalConfig.library
	if word != "" {
		e, ok, err := lib.SelectFirstGuess(word)
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
		if !ok {
			return cli.Exit("first guess not ranked: "+word, 1)
		}
		out, _ := json.MarshalIndent(e, "", "  ")
		fmt.Println(string(out))
		return nil
	}
	entries, err := lib.AvailableFirstGuesses()
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	for _, e := range entries {
		fmt.Println(e.Rank, e.FirstGuess, e.ExpectedRemaining, e.Metrics.MaxRemaining)
	}
	return nil
}

func full(globalConfig GlobalConfiguration, word string) error {
	fs, err := globalConfig.library.FullStrategyFor(word)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	patterns := make([]clue.Pattern, 0, len(fs))
	for p := range fs {
		patterns = append(patterns, p)
	}
	slices.SortFunc(patterns, func(a, b clue.Pattern) int { return cmp.Compare(a.String(), b.String()) })
	for _, p := range patterns {
		fmt.Println(p, fs[p])
	}
	return nil
}

func recommend(globalConfig GlobalConfiguration, word, clueSymbols string) error {
	guess, ok, err := globalConfig.library.Recommend(word, clueSymbols)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if !ok {
		fmt.Println("no recommendation")
		return nil
	}
	fmt.Println(guess)
	return nil
}

func health(ctx context.Context, globalConfig GlobalConfiguration, output string) error {
	report, err := globalConfig.library.Health(ctx, globalConfig.progress)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	report.Print(os.Stdout, globalConfig.verbose)
	if output != "" {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return cli.Exit(err.Error(), 2)
		}
		if err := os.WriteFile(output, out, 0o644); err != nil {
			return cli.Exit(err.Error(), 2)
		}
		fmt.Println("Report saved to:", output)
	}
	if code := report.Status().ExitCode(); code != 0 {
		return cli.Exit("data health: "+report.Status().String(), code)
	}
	return nil
}

func simulate(ctx context.Context, globalConfig GlobalConfiguration, version string, targets []string) error {
	r, err := globalConfig.library.Simulate(ctx, version, targets, globalConfig.progress)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	fmt.Printf("%s first:%s games:%d wins:%d win rate:%.2f%% mean remaining:%.2f unresolved:%d\n",
		r.Version, r.FirstGuess, r.Games(), r.Wins(), r.WinRate()*100, r.MeanRemaining, r.Unresolved.Count())
	if globalConfig.verbose {
		for _, t := range r.SolvedTargets() {
			fmt.Println("solved", t)
		}
		for _, t := range r.UnresolvedTargets() {
			fmt.Println("unresolved", t)
		}
	}
	return nil
}

func cpuProfile() func() {
	f, err := os.Create("cpu.prof")
	if err != nil {
		panic(err)
	}
	pprof.StartCPUProfile(f)
	return pprof.StopCPUProfile
}

type GlobalConfiguration struct {
	library  *word32.Library
	logger   *zap.Logger
	progress bool
	verbose  bool
}

func globalConfiguration(configPath, dataDir string, progress, verbose bool) (GlobalConfiguration, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return GlobalConfiguration{}, cli.Exit(err.Error(), 2)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	var logger *zap.Logger
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return GlobalConfiguration{}, err
	}
	library, err := word32.Open(cfg, logger)
	if err != nil {
		return GlobalConfiguration{}, cli.Exit(err.Error(), 2)
	}
	return GlobalConfiguration{
		library:  library,
		logger:   logger,
		progress: progress,
		verbose:  verbose,
	}, nil
}

func main() {
	configPath := ""
	dataDir := ""
	progress := false
	profile := false
	verbose := false
	// command specific flags
	firstWord := ""
	secondDepth := 0
	listDepth := 0
	output := ""

	// run wraps an action with the global configuration and profiling
	run := func(action func(ctx context.Context, cmd *cli.Command, globalConfig GlobalConfiguration) error) cli.ActionFunc {
		return func(ctx context.Context, cmd *cli.Command) error {
			if profile {
				def := cpuProfile()
				defer def()
			}
			globalConfig, err := globalConfiguration(configPath, dataDir, progress, verbose)
			if err != nil {
				return err
			}
			defer globalConfig.logger.Sync()
			return action(ctx, cmd, globalConfig)
		}
	}

	cmd := &cli.Command{
		Name:  "wdl",
		Usage: "second guess recommendations from precomputed word32 strategies",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "YAML configuration file, WORD32_* environment variables override it",
				Destination: &configPath,
			},
			&cli.StringFlag{
				Name:        "data",
				Aliases:     []string{"d"},
				Usage:       "data directory, overrides data_dir from the configuration",
				Destination: &dataDir,
			},
			&cli.BoolFlag{
				Name:        "progress",
				Value:       false,
				Aliases:     []string{"p"},
				Usage:       "show progress bar",
				Destination: &progress,
			},
			&cli.BoolFlag{
				Name:        "profile",
				Value:       false,
				Usage:       "store profile data to analyze",
				Destination: &profile,
			},
			&cli.BoolFlag{
				Name:        "verbose",
				Value:       false,
				Aliases:     []string{"v"},
				Usage:       "debug logging and detailed output",
				Destination: &verbose,
			},
		},
		Commands: []*cli.Command{
			{
				Name: "second",
				Usage: `second VERSION CLUE or second --first WORD --depth N CLUE
				Second guess for the clue of the first guess, e.g. second 2d-8r-trice XXGXX.
				The clue uses G, Y and X or B for absent.
				`,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "first",
						Aliases:     []string{"f"},
						Usage:       "first guess of a lightweight strategy, used with --depth",
						Destination: &firstWord,
					},
					&cli.IntFlag{
						Name:        "depth",
						Value:       8,
						Usage:       "number of memorized clue patterns, used with --first",
						Destination: &secondDepth,
					},
				},
				Action: run(func(ctx context.Context, cmd *cli.Command, globalConfig GlobalConfiguration) error {
					if firstWord != "" {
						if cmd.NArg() != 1 {
							return cli.Exit("must have one clue", 1)
						}
						return second(globalConfig, strategy.Version(firstWord, secondDepth), cmd.Args().Get(0))
					}
					if cmd.NArg() != 2 {
						return cli.Exit("must have a version and a clue", 1)
					}
					return second(globalConfig, cmd.Args().Get(0), cmd.Args().Get(1))
				}),
			},
			{
				Name: "strategies",
				Usage: `strategies [--depth N]
				List stored strategies, best win rate first. Without --depth all strategies
				are listed by clue count.
				`,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:        "depth",
						Value:       0,
						Usage:       "only strategies memorizing this many clue patterns",
						Destination: &listDepth,
					},
				},
				Action: run(func(ctx context.Context, cmd *cli.Command, globalConfig GlobalConfiguration) error {
					return strategies(ctx, globalConfig, listDepth)
				}),
			},
			{
				Name: "first",
				Usage: `first [WORD]
				List the ranked first guesses or show one of them
				`,
				Action: run(func(ctx context.Context, cmd *cli.Command, globalConfig GlobalConfiguration) error {
					return first(globalConfig, cmd.Args().First())
				}),
			},
			{
				Name: "full",
				Usage: `full WORD
				Top second guess for every clue pattern of a first guess in the master lookup table
				`,
				Action: run(func(ctx context.Context, cmd *cli.Command, globalConfig GlobalConfiguration) error {
					if cmd.NArg() != 1 {
						return cli.Exit("must have one first guess", 1)
					}
					return full(globalConfig, cmd.Args().First())
				}),
			},
			{
				Name: "recommend",
				Usage: `recommend WORD CLUE
				Second guess from the master lookup table without a strategy
				`,
				Action: run(func(ctx context.Context, cmd *cli.Command, globalConfig GlobalConfiguration) error {
					if cmd.NArg() != 2 {
						return cli.Exit("must have a first guess and a clue", 1)
					}
					return recommend(globalConfig, cmd.Args().Get(0), cmd.Args().Get(1))
				}),
			},
			{
				Name: "health",
				Usage: `health [--output FILE]
				Report on the data files. Exit code 0 is healthy, 1 data issues, 2 critical.
				`,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "output",
						Aliases:     []string{"o"},
						Usage:       "also write the report as JSON to this file",
						Destination: &output,
					},
				},
				Action: run(func(ctx context.Context, cmd *cli.Command, globalConfig GlobalConfiguration) error {
					return health(ctx, globalConfig, output)
				}),
			},
			{
				Name: "sim",
				Usage: `sim VERSION [TARGET]...
				Play the first two guesses of a strategy against each target, all the configured
				targets if none are given.
				`,
				Action: run(func(ctx context.Context, cmd *cli.Command, globalConfig GlobalConfiguration) error {
					if cmd.NArg() < 1 {
						return cli.Exit("must have a version", 1)
					}
					return simulate(ctx, globalConfig, cmd.Args().First(), cmd.Args().Tail())
				}),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
