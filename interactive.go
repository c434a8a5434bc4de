package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
)

// errSelectionAborted is returned when the user leaves the finder without choosing.
var errSelectionAborted = errors.New("interactive selection aborted")

// findFunc matches fuzzyfinder.Find so tests can stand in for the terminal UI.
type findFunc func(candidates []string, preview func(i, w, h int) string) (int, error)

var runFinder findFunc = func(candidates []string, preview func(i, w, h int) string) (int, error) {
	return fuzzyfinder.Find(
		candidates,
		func(i int) string { return candidates[i] },
		fuzzyfinder.WithPreviewWindow(preview),
	)
}

// listRootCandidates returns start and every directory below it, in walk order.
func listRootCandidates(start string, showHidden bool) ([]string, error) {
	candidates := []string{start}
	err := filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if path == start || !d.IsDir() {
			return nil
		}
		if !showHidden && isHidden(d.Name()) {
			return fs.SkipDir
		}
		candidates = append(candidates, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning for directories: %w", err)
	}
	return candidates, nil
}

// previewDirectory describes a candidate root in the finder's preview pane.
func previewDirectory(path string) string {
	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Sprintf("Path: %s\nError reading directory: %v", path, err)
	}
	var dirs, files int
	for _, e := range entries {
		if e.IsDir() {
			dirs++
		} else {
			files++
		}
	}
	return fmt.Sprintf("Path: %s\nSubfolders: %d\nFiles: %d\nReport: %s",
		path, dirs, files, filepath.Join(path, reportFileName))
}

// runInteractiveFinder lets the user pick the directory to report on.
func runInteractiveFinder(start string, showHidden bool) (string, error) {
	candidates, err := listRootCandidates(start, showHidden)
	if err != nil {
		return "", err
	}

	idx, err := runFinder(candidates, func(i, w, h int) string {
		if i == -1 {
			return "Select the root directory to analyze. Press Enter to confirm."
		}
		return previewDirectory(candidates[i])
	})
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", errSelectionAborted
		}
		return "", fmt.Errorf("fuzzy finder error: %w", err)
	}
	return candidates[idx], nil
}
