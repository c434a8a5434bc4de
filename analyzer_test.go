package main

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeLine(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		alphabetic bool
		units      int
		numbers    []string
	}{
		{"words and numbers", "Temp 5 and 6 rising", true, 3, []string{"5", "6"}},
		{"digits only", "42", false, 0, nil},
		{"empty", "", false, 0, nil},
		{"decimal", "3.14 degrees", true, 1, []string{"3.14"}},
		{"trailing dot is not part of the number", "rain 12. today", true, 2, []string{"12"}},
		{"number glued to letters is not a token", "x1y", true, 2, nil},
		{"letter prefix blocks the boundary", "v2 at 10:30", true, 2, []string{"10", "30"}},
		{"second dot starts a new token", "max 5.5.5", true, 1, []string{"5.5", "5"}},
		{"underscore is a word character", "id_7 ok", true, 2, nil},
		{"accented letters are not units", "été 20", true, 1, []string{"20"}},
		{"accented letter blocks the boundary", "é5 ok", true, 1, nil},
		{"non-ascii letters alone are not alphabetic", "Ä 7", false, 0, nil},
		{"non-ascii decimal digits", "١٢ days", true, 1, []string{"١٢"}},
		{"combining mark does not join a number", "cafe\u0301 5 e\u03015", true, 2, []string{"5", "5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := analyzeLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.alphabetic, res.alphabetic)
			assert.Equal(t, tt.units, res.alphaUnits)
			assert.Equal(t, tt.numbers, res.numbers)
		})
	}
}

func TestAnalyzeText_IgnoresNumbersOnNonAlphabeticLines(t *testing.T) {
	rec, err := analyzeText(strings.NewReader("Temp 5 and 6 rising\n42\n"), 0)
	require.NoError(t, err)

	assert.Equal(t, 3, rec.AlphaCount)
	assert.Equal(t, []string{"5", "6"}, rec.FollowingDay)
	assert.Equal(t, "5; 6", rec.FollowingDayText())
}

func TestAnalyzeText_LineEndings(t *testing.T) {
	// "\r" alone ends a line, so "42" is its own non-alphabetic line.
	rec, err := analyzeText(strings.NewReader("Temp 5\r42\rrain 7\r\n8\nwind"), 0)
	require.NoError(t, err)

	assert.Equal(t, 3, rec.AlphaCount)
	assert.Equal(t, []string{"5", "7"}, rec.FollowingDay)
}

func TestAnalyzeText_DropsInvalidUTF8(t *testing.T) {
	rec, err := analyzeText(strings.NewReader("ab\xffcd 9\n\xfe\xfe 10\n"), 0)
	require.NoError(t, err)

	assert.Equal(t, 1, rec.AlphaCount, "invalid bytes are removed, joining the letters")
	assert.Equal(t, []string{"9"}, rec.FollowingDay)
}

func TestAnalyzeText_LineTooLong(t *testing.T) {
	_, err := analyzeText(strings.NewReader(strings.Repeat("a", 100)+"\n"), 16)
	require.Error(t, err)
	assert.True(t, errors.Is(err, bufio.ErrTooLong))
}

func TestScanUniversalLines_SplitCRLFAcrossReads(t *testing.T) {
	scanner := bufio.NewScanner(iotest.OneByteReader(strings.NewReader("a\r\nb\rc\n\nd")))
	scanner.Split(scanUniversalLines)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, []string{"a", "b", "c", "", "d"}, lines)
}

func TestScanFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("qualifying file", func(t *testing.T) {
		path := filepath.Join(dir, "x.txt")
		require.NoError(t, os.WriteFile(path, []byte("Temp 5 and 6 rising\n42\n"), 0644))

		rec, ok, err := scanFile(path, 0)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "x.txt", rec.Name)
		assert.Equal(t, 3, rec.AlphaCount)
		assert.Equal(t, "5; 6", rec.FollowingDayText())
	})

	t.Run("no letters", func(t *testing.T) {
		path := filepath.Join(dir, "numbers.txt")
		require.NoError(t, os.WriteFile(path, []byte("1 2 3\n4.5\n"), 0644))

		_, ok, err := scanFile(path, 0)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.txt")
		require.NoError(t, os.WriteFile(path, nil, 0644))

		_, ok, err := scanFile(path, 0)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(dir, "missing.txt")

		_, ok, err := scanFile(path, 0)
		require.Error(t, err)
		assert.False(t, ok)

		var readErr *FileReadError
		require.True(t, errors.As(err, &readErr))
		assert.Equal(t, path, readErr.Path)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("read failure mid-file", func(t *testing.T) {
		path := filepath.Join(dir, "long.txt")
		require.NoError(t, os.WriteFile(path, []byte("ok 1\n"+strings.Repeat("b", 64)+"\n"), 0644))

		_, ok, err := scanFile(path, 16)
		assert.False(t, ok)
		var readErr *FileReadError
		assert.True(t, errors.As(err, &readErr), "no partial record is produced")
	})
}
