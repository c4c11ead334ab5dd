// Package bitset is a fixed size set of clue patterns.
package bitset

import (
	"math/bits"

	"github.com/powellquiring/word32/clue"
)

const UINT64S = (clue.Count + wordSize - 1) / wordSize

// There is a bit for each clue pattern
type PatternSet [UINT64S]uint64

// the wordSize of a bit set
const wordSize = 64

// wordMask is wordSize-1, used for bit indexing in a word
const wordMask = wordSize - 1

// log2WordSize is lg(wordSize)
const log2WordSize = 6

// wordsIndex calculates the index of words in a `uint64`
func wordsIndex(i uint) uint {
	return i & wordMask
}

func New(patterns ...clue.Pattern) *PatternSet {
	ret := &PatternSet{}
	for _, p := range patterns {
		ret.Set(p)
	}
	return ret
}

func (b *PatternSet) Set(p clue.Pattern) *PatternSet {
	if !p.Valid() {
		panic("pattern out of range")
	}
	i := uint(p)
	b[i>>log2WordSize] |= 1 << wordsIndex(i)
	return b
}

func (b *PatternSet) Has(p clue.Pattern) bool {
	if !p.Valid() {
		return false
	}
	i := uint(p)
	return b[i>>log2WordSize]&(1<<wordsIndex(i)) != 0
}

// Union of base set and other set
func (b *PatternSet) Union(compare *PatternSet) *PatternSet {
	var result PatternSet
	for i, word := range b {
		result[i] = word | compare[i]
	}
	return &result
}

// Difference of base set and other set
// This is the PatternSet equivalent of &^ (and not)
func (b *PatternSet) Difference(compare *PatternSet) *PatternSet {
	var result PatternSet
	for i, word := range b {
		result[i] = word &^ compare[i]
	}
	return &result
}

// Count (number of set bits).
func (b *PatternSet) Count() int {
	cnt := 0
	for _, x := range b {
		if x == 0 {
			continue
		}
		cnt += bits.OnesCount64(x)
	}
	return cnt
}

// NextSet returns the next pattern set from the specified index,
// including possibly the current index
// for p, ok := v.NextSet(0); ok; p, ok = v.NextSet(p + 1) {...}
func (b *PatternSet) NextSet(p clue.Pattern) (clue.Pattern, bool) {
	i := uint(p)
	x := int(i >> log2WordSize)
	if x >= len(b) {
		return 0, false
	}

	// process first (partial) word
	word := b[x] >> wordsIndex(i)
	if word != 0 {
		return clue.Pattern(i + uint(bits.TrailingZeros64(word))), true
	}

	// process the following full words until next bit is set
	x++
	for idx, word := range b[x:] {
		if word != 0 {
			return clue.Pattern((x+idx)<<log2WordSize + bits.TrailingZeros64(word)), true
		}
	}
	return 0, false
}

func (b *PatternSet) Range(yield func(i int, p clue.Pattern) bool) {
	i := 0
	for p, ok := b.NextSet(0); ok; p, ok = b.next(p) {
		if !yield(i, p) {
			return
		}
		i++
	}
}

func (b *PatternSet) next(p clue.Pattern) (clue.Pattern, bool) {
	if int(p)+1 >= clue.Count {
		return 0, false
	}
	return b.NextSet(p + 1)
}

func (b *PatternSet) Patterns() []clue.Pattern {
	ret := make([]clue.Pattern, 0, b.Count())
	for _, p := range b.Range {
		ret = append(ret, p)
	}
	return ret
}
