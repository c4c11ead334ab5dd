// Package clue encodes the per-letter feedback a guess receives.
//
// A Pattern packs the five colors into a base 3 number so it can be used as a
// small array or bitset index. The canonical text form is G, Y and X where X
// is an absent letter. Input may also use B for absent.
package clue

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Size is the number of letters in a word and colors in a clue.
const Size = 5

// Count is the number of distinct patterns, 3^5.
const Count = 243

type Color uint8

const (
	Absent Color = iota
	Yellow
	Green
)

// Pattern is a clue packed as a base 3 number, first letter most significant.
type Pattern uint8

func (c Color) Code() byte {
	switch c {
	case Absent:
		return 'X'
	case Yellow:
		return 'Y'
	case Green:
		return 'G'
	}
	panic("Can not encode Color: " + strconv.Itoa(int(c)))
}

// InvalidClueError reports clue input that is not five symbols from the
// G, Y, X/B alphabet.
type InvalidClueError struct {
	Input    string
	Position int // -1 when the length is wrong
	Reason   string
}

func (e *InvalidClueError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("invalid clue %q: %s", e.Input, e.Reason)
	}
	return fmt.Sprintf("invalid clue %q at position %d: %s", e.Input, e.Position, e.Reason)
}

func colorOf(symbol rune, lenient bool) (Color, bool) {
	if lenient {
		symbol = unicode.ToUpper(symbol)
		if symbol == 'B' {
			return Absent, true
		}
	}
	switch symbol {
	case 'G':
		return Green, true
	case 'Y':
		return Yellow, true
	case 'X':
		return Absent, true
	}
	return 0, false
}

func decode(symbols string, lenient bool) (Pattern, error) {
	runes := []rune(symbols)
	if len(runes) != Size {
		return 0, &InvalidClueError{Input: symbols, Position: -1, Reason: "length is " + strconv.Itoa(len(runes)) + ", want 5"}
	}
	ret := Pattern(0)
	for i, symbol := range runes {
		color, ok := colorOf(symbol, lenient)
		if !ok {
			return 0, &InvalidClueError{Input: symbols, Position: i, Reason: "unknown symbol " + strconv.QuoteRune(symbol)}
		}
		ret = ret*3 + Pattern(color)
	}
	return ret, nil
}

// Normalize converts a clue in either absent convention (B or X, any case)
// to its Pattern.
func Normalize(symbols string) (Pattern, error) {
	return decode(symbols, true)
}

// NormalizeSymbols is Normalize for clues held as separate symbols, e.g.
// NormalizeSymbols("B", "B", "G", "Y", "B").
func NormalizeSymbols(symbols ...string) (Pattern, error) {
	return Normalize(strings.Join(symbols, ""))
}

// Parse accepts only the canonical G, Y, X encoding.
func Parse(canonical string) (Pattern, error) {
	return decode(canonical, false)
}

// MustParse is Parse for literals known to be valid.
func MustParse(canonical string) Pattern {
	p, err := Parse(canonical)
	if err != nil {
		panic(err)
	}
	return p
}

func FromColors(colors [Size]Color) Pattern {
	ret := Pattern(0)
	for _, color := range colors {
		ret = ret*3 + Pattern(color)
	}
	return ret
}

func (p Pattern) Colors() [Size]Color {
	var ret [Size]Color
	for i := Size - 1; i >= 0; i-- {
		ret[i] = Color(p % 3)
		p /= 3
	}
	return ret
}

func (p Pattern) Valid() bool {
	return int(p) < Count
}

func (p Pattern) String() string {
	if !p.Valid() {
		panic("Can not encode Pattern: " + strconv.Itoa(int(p)))
	}
	var ret [Size]byte
	for i, color := range p.Colors() {
		ret[i] = color.Code()
	}
	return string(ret[:])
}

func (p Pattern) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("pattern %d out of range", p)
	}
	return []byte(p.String()), nil
}

func (p *Pattern) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// All returns every pattern in index order, XXXXX first.
func All() []Pattern {
	ret := make([]Pattern, Count)
	for i := range ret {
		ret[i] = Pattern(i)
	}
	return ret
}

// Solved is the all green pattern.
var Solved = FromColors([Size]Color{Green, Green, Green, Green, Green})

// ValidWord reports whether word is Size letters, the only words Compute
// accepts.
func ValidWord(word string) bool {
	n := 0
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
		n++
	}
	return n == Size
}

// Compute returns the clue shown for guess when the hidden word is target.
// Greens are assigned first, then yellows limited by the target's remaining
// letter counts so repeated letters are colored the way the game does.
func Compute(guess, target string) Pattern {
	g := []rune(strings.ToLower(guess))
	t := []rune(strings.ToLower(target))
	if len(g) != Size || len(t) != Size {
		panic("not 5 letter words: " + guess + " " + target)
	}
	colors := [Size]Color{}
	targetNotGreenCount := map[rune]int{}
	for i, targetLetter := range t {
		if g[i] == targetLetter {
			colors[i] = Green
		} else {
			targetNotGreenCount[targetLetter]++
		}
	}
	// turn the absent to yellow if in the word but not green
	for i, guessLetter := range g {
		if colors[i] == Absent && targetNotGreenCount[guessLetter] > 0 {
			colors[i] = Yellow
			targetNotGreenCount[guessLetter]--
		}
	}
	return FromColors(colors)
}
