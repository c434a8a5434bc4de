package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
)

// walkFilter decides which entries of a walk are looked at.
type walkFilter struct {
	root     string
	opts     ScanOptions
	includes []string
	excludes []string
	ignore   gitignore.IgnoreMatcher
}

func newWalkFilter(root string, opts ScanOptions, log *ConsoleLogger) (*walkFilter, error) {
	f := &walkFilter{
		root:     root,
		opts:     opts,
		includes: opts.IncludePatterns,
		excludes: opts.ExcludePatterns,
	}
	// Validate patterns up front so a typo fails the run instead of every file.
	for _, patterns := range [][]string{f.includes, f.excludes} {
		for _, p := range patterns {
			if _, err := filepath.Match(p, ""); err != nil {
				return nil, fmt.Errorf("invalid glob pattern '%s': %w", p, err)
			}
		}
	}

	if !opts.NoIgnore {
		gitIgnorePath := filepath.Join(root, ".gitignore")
		if _, err := os.Stat(gitIgnorePath); err == nil {
			matcher, err := gitignore.NewGitIgnore(gitIgnorePath)
			if err != nil {
				log.LogWarn(fmt.Sprintf("could not parse .gitignore file %s: %v", gitIgnorePath, err))
			} else {
				f.ignore = matcher
			}
		}
	}
	return f, nil
}

// keepDir reports whether a directory below the root is visited.
func (f *walkFilter) keepDir(path, name string) bool {
	if !f.opts.ShowHidden && isHidden(name) {
		return false
	}
	if f.ignore != nil && f.ignore.Match(path, true) {
		return false
	}
	if f.opts.MaxDepth > 0 {
		rel, err := filepath.Rel(f.root, path)
		if err == nil && countPathSeparators(rel) >= f.opts.MaxDepth {
			return false
		}
	}
	return !matchesAnyPattern(name, f.excludes)
}

// keepFile reports whether a file is analyzed.
func (f *walkFilter) keepFile(path string, d fs.DirEntry) (bool, error) {
	name := d.Name()
	if !f.opts.ShowHidden && isHidden(name) {
		return false, nil
	}
	if f.ignore != nil && f.ignore.Match(path, false) {
		return false, nil
	}
	if matchesAnyPattern(name, f.excludes) {
		return false, nil
	}
	if len(f.includes) > 0 && !matchesAnyPattern(name, f.includes) {
		return false, nil
	}
	if f.opts.MaxSizeBytes > 0 {
		info, err := d.Info()
		if err != nil {
			return false, err
		}
		if info.Size() > f.opts.MaxSizeBytes {
			return false, nil
		}
	}
	return true, nil
}

// walkDirectory visits every directory below root, analyzes the files it keeps and
// returns one record per directory name in encounter order. Files directly inside
// root are not part of any subfolder and are never read. A missing root or one
// that is not a directory yields no records.
func walkDirectory(root string, opts ScanOptions, log *ConsoleLogger) ([]SubfolderRecord, Summary, error) {
	root = filepath.Clean(root)
	// An unusable root is an empty walk; writing the report into it fails later.
	info, err := os.Stat(root)
	if err != nil {
		log.LogWarn(fmt.Sprintf("error accessing path %s: %v", root, err))
		return nil, Summary{}, nil
	}
	if !info.IsDir() {
		log.LogWarn(fmt.Sprintf("root %s is not a directory", root))
		return nil, Summary{}, nil
	}

	filter, err := newWalkFilter(root, opts, log)
	if err != nil {
		return nil, Summary{}, err
	}

	index := newSubfolderIndex()
	var summary Summary

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			log.LogWarn(fmt.Sprintf("error accessing path %s: %v", path, err))
			return nil
		}
		if path == root {
			return nil
		}

		if d.IsDir() {
			if !filter.keepDir(path, d.Name()) {
				return fs.SkipDir
			}
			log.LogDebug(fmt.Sprintf("Processing directory: %s", path))
			index.visit(d.Name())
			return nil
		}

		parent := filepath.Dir(path)
		if parent == root {
			return nil
		}
		// Symlinked directories are not followed and are not files either.
		if d.Type()&fs.ModeSymlink != 0 {
			if target, err := os.Stat(path); err == nil && target.IsDir() {
				return nil
			}
		}
		keep, err := filter.keepFile(path, d)
		if err != nil {
			log.LogWarn(fmt.Sprintf("could not get info for %s: %v", path, err))
			return nil
		}
		if !keep {
			log.LogTrace(fmt.Sprintf("Skipping file due to filters: %s", path))
			return nil
		}

		record, ok, err := scanFile(path, opts.MaxLineBytes)
		if err != nil {
			var readErr *FileReadError
			if errors.As(err, &readErr) {
				summary.SkippedFiles++
				log.LogWarn(readErr.Error())
				return nil
			}
			return err
		}
		if !ok {
			return nil
		}
		index.addFile(filepath.Base(parent), record)
		summary.Files++
		summary.TotalAlphaCount += record.AlphaCount
		return nil
	})
	if err != nil {
		return nil, Summary{}, fmt.Errorf("error walking directory %s: %w", root, err)
	}

	records := index.records()
	summary.Subfolders = len(records)
	return records, summary, nil
}

// parsePatterns splits a comma-separated string of patterns into a slice.
func parsePatterns(patterns string) []string {
	if strings.TrimSpace(patterns) == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(patterns, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// matchesAnyPattern checks if name matches any of the glob patterns.
// Patterns are validated by newWalkFilter.
func matchesAnyPattern(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

// isHidden checks if a name is hidden (starts with '.').
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	baseName := filepath.Base(name)
	return len(baseName) > 0 && baseName[0] == '.'
}

// countPathSeparators counts the number of path separators in a relative path.
func countPathSeparators(path string) int {
	path = filepath.ToSlash(path)
	if path == "." || path == "" {
		return 0
	}
	return strings.Count(strings.Trim(path, "/"), "/")
}
