package strategy

import (
	"fmt"
	"time"
)

const (
	DefaultPenaltyFunction = "expected_remaining"
	DefaultDepth           = 2
	dateLayout             = "2006-01-02"
)

// Metadata describes a strategy. Stored strategies carry their own, others
// get a synthesized one.
type Metadata struct {
	Version         string  `json:"version"`
	Guess1          string  `json:"guess1,omitempty"`
	FirstGuess      string  `json:"first_guess,omitempty"`
	Depth           int     `json:"depth"`
	ClueCount       int     `json:"clue_count,omitempty"`
	PenaltyFunction string  `json:"penalty_function"`
	Optimization    string  `json:"optimization,omitempty"`
	Created         string  `json:"created"`
	WinRate2D       float64 `json:"win_rate_2d"`
	MeanRemaining2D float64 `json:"mean_remaining_2d,omitempty"`
	RemainderGuess2 string  `json:"remainder_guess2,omitempty"`
	Description     string  `json:"description"`
}

func (m Metadata) IsZero() bool {
	return m == Metadata{}
}

func synthesizeMetadata(version, firstGuess string, created time.Time) Metadata {
	return Metadata{
		Version:         version,
		FirstGuess:      firstGuess,
		PenaltyFunction: DefaultPenaltyFunction,
		Depth:           DefaultDepth,
		Created:         created.Format(dateLayout),
		Description:     fmt.Sprintf("Strategy for %s", firstGuess),
	}
}
