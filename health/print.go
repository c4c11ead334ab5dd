package health

import (
	"fmt"
	"io"
	"strings"
)

const (
	heavyRule = "======================================================================"
	lightRule = "----------------------------------------------------------------------"
	shownMax  = 10
)

// Print writes a human readable report. Verbose adds the individual findings
// and the per first guess breakdown.
func (r *Report) Print(w io.Writer, verbose bool) {
	p := func(format string, a ...any) { fmt.Fprintf(w, format+"\n", a...) }
	section := func(title string) {
		p("%s", title)
		p("%s", lightRule)
	}

	p("%s", heavyRule)
	p("word32 Data Health Report")
	p("%s", heavyRule)
	p("")

	section("SUMMARY")
	p("Total first guesses: %d", r.Summary.TotalFirstGuesses)
	p("First guesses in master lookup table: %d", r.Summary.FirstGuessesInMaster)
	p("Total clue patterns: %d", r.Summary.TotalCluePatterns)
	p("Valid guesses count: %d", r.Summary.ValidGuessesCount)
	p("Targets count: %d", r.Summary.TargetsCount)
	p("")

	if len(r.Coverage.Missing) > 0 || len(r.Coverage.Orphaned) > 0 {
		section("FIRST GUESS COVERAGE ISSUES")
		p("Missing in master lookup table: %d", len(r.Coverage.Missing))
		p("Orphaned in master lookup table: %d", len(r.Coverage.Orphaned))
		if verbose {
			for _, g := range r.Coverage.Missing {
				p("  - missing %s", g)
			}
			for _, g := range r.Coverage.Orphaned {
				p("  - orphaned %s", g)
			}
		}
		p("")
	}

	section("CLUE PATTERN COVERAGE")
	p("Average patterns per first guess: %.1f", r.AveragePatterns)
	p("Distinct patterns answered: %d of 243", r.DistinctPatterns)
	if len(r.LowCoverage) > 0 {
		p("Low coverage guesses (<%d patterns): %d", LowCoverageLimit, len(r.LowCoverage))
		if verbose {
			for _, g := range r.LowCoverage {
				p("  - %s: %d patterns", g.FirstGuess, g.PatternCount)
			}
		}
	}
	p("")

	if len(r.InvalidWords) > 0 || r.invalidPatternCount() > 0 || r.duplicateKeyCount() > 0 {
		section("DATA CONSISTENCY ISSUES")
		p("Invalid words: %d", len(r.InvalidWords))
		if verbose {
			for _, iw := range r.InvalidWords[:min(shownMax, len(r.InvalidWords))] {
				p("  - %s / %s: %s", iw.FirstGuess, iw.Pattern, iw.Word)
			}
		}
		p("Invalid pattern keys: %d", r.invalidPatternCount())
		if verbose {
			for _, g := range r.PerFirstGuess {
				if len(g.InvalidPatterns) > 0 {
					p("  - %s: %s", g.FirstGuess, strings.Join(g.InvalidPatterns, " "))
				}
			}
		}
		if n := r.duplicateKeyCount(); n > 0 {
			p("Duplicate first guess keys: %d", n)
			if verbose {
				for _, g := range r.PerFirstGuess {
					if len(g.DuplicateKeys) > 0 {
						p("  - %s: %s", g.FirstGuess, strings.Join(g.DuplicateKeys, " "))
					}
				}
			}
		}
		p("")
	}

	section("RECOMMENDATIONS")
	for _, rec := range r.Recommendations {
		p("  - %s", rec)
	}
	p("")

	if verbose && len(r.PerFirstGuess) > 0 {
		section("PER-FIRST-GUESS BREAKDOWN")
		for _, g := range r.PerFirstGuess {
			p("%s (rank %d): %d patterns (%.1f%% coverage)", g.FirstGuess, g.Rank, g.PatternCount, g.CoveragePercent)
		}
		p("")
	}
}
