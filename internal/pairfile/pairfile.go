// Package pairfile reads the plain-text (key, value) mapping format shared by
// lexicon and segment tables.
//
// Each non-blank line holds one pair. The key is separated from the value by
// the first tab, or by the first run of spaces when the line has no tab.
// After a tab the value may be empty ("ˈ\t"), which maps the key to nothing;
// a space-separated line needs a non-empty value. Lines starting with '#' are
// comments. No escaping is supported.
package pairfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// maxLineSize bounds a single line. Pronunciation dumps occasionally carry
// very long multi-pronunciation values.
const maxLineSize = 1 << 20

// Pair is a single mapping read from a pair file.
type Pair struct {
	Key   string
	Value string

	// Line is the 1-based line number the pair was read from.
	Line int
}

// Read parses every pair in r in file order. Duplicate keys are returned as
// they appear; consumers that build maps let the last one win.
func Read(r io.Reader) ([]Pair, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var pairs []Pair
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimLeftFunc(strings.TrimRight(scanner.Text(), "\r\n"), unicode.IsSpace)
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := split(line)
		if !ok {
			return nil, fmt.Errorf("pairfile: line %d: expected key and value, got %q", lineNum, line)
		}
		pairs = append(pairs, Pair{Key: key, Value: value, Line: lineNum})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("pairfile: read: %w", err)
	}
	return pairs, nil
}

// ReadFile is a convenience wrapper that opens path and calls [Read].
func ReadFile(path string) ([]Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pairfile: open %q: %w", path, err)
	}
	defer f.Close()

	pairs, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%w (file %q)", err, path)
	}
	return pairs, nil
}

func split(line string) (key, value string, ok bool) {
	if sep := strings.IndexByte(line, '\t'); sep >= 0 {
		key = strings.TrimRight(line[:sep], " ")
		if key == "" {
			return "", "", false
		}
		return key, strings.TrimSpace(line[sep+1:]), true
	}

	line = strings.TrimRightFunc(line, unicode.IsSpace)
	sep := strings.IndexByte(line, ' ')
	if sep <= 0 {
		return "", "", false
	}
	value = strings.TrimSpace(line[sep+1:])
	if value == "" {
		return "", "", false
	}
	return line[:sep], value, true
}
