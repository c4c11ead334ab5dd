// Package words reads newline delimited word lists.
package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	mapset "github.com/deckarep/golang-set"
)

const wordLength = 5

// Load returns the upper case five letter words of a list as a set. A missing
// file is an empty set.
func Load(path string) (mapset.Set, error) {
	list, err := LoadList(path)
	if err != nil {
		return nil, err
	}
	ret := mapset.NewThreadUnsafeSet()
	for _, w := range list {
		ret.Add(w)
	}
	return ret, nil
}

// LoadList is Load keeping file order and duplicates.
func LoadList(path string) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening word list: %w", err)
	}
	defer f.Close()
	ret, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ret, nil
}

// Read keeps the lines of r that are five letters once trimmed, upper cased.
func Read(r io.Reader) ([]string, error) {
	ret := []string{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) != wordLength {
			continue
		}
		ret = append(ret, strings.ToUpper(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}

// Strings returns the members of a set of words, in no particular order.
func Strings(s mapset.Set) []string {
	ret := make([]string, 0, s.Cardinality())
	for _, v := range s.ToSlice() {
		if w, ok := v.(string); ok {
			ret = append(ret, w)
		}
	}
	return ret
}
