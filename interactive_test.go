package main

import (
	"errors"
	"path/filepath"
	"testing"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubFinder(t *testing.T, f findFunc) {
	t.Helper()
	prev := runFinder
	runFinder = f
	t.Cleanup(func() { runFinder = prev })
}

func TestListRootCandidates(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"A/B/":    "",
		".git/":   "",
		"C/f.txt": "x",
	})

	all, err := listRootCandidates(root, true)
	require.NoError(t, err)
	assert.Equal(t, []string{
		root,
		filepath.Join(root, ".git"),
		filepath.Join(root, "A"),
		filepath.Join(root, "A", "B"),
		filepath.Join(root, "C"),
	}, all)

	visible, err := listRootCandidates(root, false)
	require.NoError(t, err)
	assert.NotContains(t, visible, filepath.Join(root, ".git"))
	assert.Len(t, visible, 4)
}

func TestRunInteractiveFinder(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"Station/r.txt": "rain 4\n"})

	t.Run("selection", func(t *testing.T) {
		var preview string
		stubFinder(t, func(candidates []string, p func(i, w, h int) string) (int, error) {
			preview = p(1, 80, 20)
			return 1, nil
		})

		got, err := runInteractiveFinder(root, true)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "Station"), got)
		assert.Contains(t, preview, "Files: 1")
		assert.Contains(t, preview, reportFileName)
	})

	t.Run("abort", func(t *testing.T) {
		stubFinder(t, func([]string, func(i, w, h int) string) (int, error) {
			return 0, fuzzyfinder.ErrAbort
		})

		_, err := runInteractiveFinder(root, true)
		assert.ErrorIs(t, err, errSelectionAborted)
	})

	t.Run("finder failure", func(t *testing.T) {
		stubFinder(t, func([]string, func(i, w, h int) string) (int, error) {
			return 0, errors.New("no tty")
		})

		_, err := runInteractiveFinder(root, true)
		require.Error(t, err)
		assert.NotErrorIs(t, err, errSelectionAborted)
	})
}
