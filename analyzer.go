package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

const (
	followingDaySeparator = "; "
	defaultMaxLineBytes   = 64 << 20 // 64 MiB
	initialLineBuffer     = 64 << 10
)

var (
	// Letters are ASCII only; accented letters are not alphabetical units.
	alphaPresencePattern = regexp.MustCompile(`[a-zA-Z]`)
	alphaUnitPattern     = regexp.MustCompile(`[a-zA-Z]+`)

	// Token edges are letters, numbers and underscore only. Combining marks do not
	// glue a number to the preceding word, so "e\u03015" yields "5" while "é5" does not.
	// \d matches any decimal digit, not just ASCII.
	numericTokenPattern = regexp2.MustCompile(`(?<![\p{L}\p{N}_])\d+(?:\.\d+)?(?![\p{L}\p{N}_])`, regexp2.None)
)

// lineResult is what a single line contributes to its file.
type lineResult struct {
	alphabetic bool
	alphaUnits int
	numbers    []string
}

// analyzeLine classifies one line. Non-alphabetic lines contribute nothing,
// not even their numbers.
func analyzeLine(line string) (lineResult, error) {
	if !alphaPresencePattern.MatchString(line) {
		return lineResult{}, nil
	}
	result := lineResult{
		alphabetic: true,
		alphaUnits: len(alphaUnitPattern.FindAllStringIndex(line, -1)),
	}
	numbers, err := findNumericTokens(line)
	if err != nil {
		return lineResult{}, err
	}
	result.numbers = numbers
	return result, nil
}

// findNumericTokens returns every numeric token in line, left to right.
func findNumericTokens(line string) ([]string, error) {
	var tokens []string
	m, err := numericTokenPattern.FindStringMatch(line)
	for m != nil && err == nil {
		tokens = append(tokens, m.String())
		m, err = numericTokenPattern.FindNextMatch(m)
	}
	if err != nil {
		return nil, fmt.Errorf("numeric token match failed: %w", err)
	}
	return tokens, nil
}

// analyzeText reads r line by line and accumulates the counts for one file.
// Invalid UTF-8 sequences are dropped before matching. Name is left empty.
func analyzeText(r io.Reader, maxLineBytes int) (FileRecord, error) {
	if maxLineBytes <= 0 {
		maxLineBytes = defaultMaxLineBytes
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(initialLineBuffer, maxLineBytes)), maxLineBytes)
	scanner.Split(scanUniversalLines)

	var record FileRecord
	for scanner.Scan() {
		line := strings.ToValidUTF8(scanner.Text(), "")
		res, err := analyzeLine(line)
		if err != nil {
			return FileRecord{}, err
		}
		if !res.alphabetic {
			continue
		}
		record.AlphaCount += res.alphaUnits
		record.FollowingDay = append(record.FollowingDay, res.numbers...)
	}
	if err := scanner.Err(); err != nil {
		return FileRecord{}, err
	}
	return record, nil
}

// scanFile analyzes a single file. The boolean is false when the file has no
// alphabetical units and must be left out of the report.
func scanFile(path string, maxLineBytes int) (FileRecord, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileRecord{}, false, &FileReadError{Path: path, Err: err}
	}
	defer f.Close()

	record, err := analyzeText(f, maxLineBytes)
	if err != nil {
		return FileRecord{}, false, &FileReadError{Path: path, Err: err}
	}
	if record.AlphaCount == 0 {
		return FileRecord{}, false, nil
	}
	record.Name = filepath.Base(path)
	return record, true, nil
}

// scanUniversalLines is a bufio.SplitFunc that ends lines at "\n", "\r\n" or a lone "\r".
func scanUniversalLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// A trailing "\r" may be the first half of "\r\n".
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func joinTokens(tokens []string) string {
	return strings.Join(tokens, followingDaySeparator)
}
