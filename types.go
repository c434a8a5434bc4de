package main

import "fmt"

// FileRecord holds the counts for one file that had at least one alphabetic line.
type FileRecord struct {
	Name         string
	AlphaCount   int
	FollowingDay []string // Numeric tokens from alphabetic lines, in file order
}

// FollowingDayText is the display form of the numeric tokens.
func (f FileRecord) FollowingDayText() string {
	return joinTokens(f.FollowingDay)
}

// SubfolderRecord aggregates every qualifying file seen under one directory name.
// TotalAlphaCount always equals the sum of Files[i].AlphaCount.
type SubfolderRecord struct {
	Name            string
	TotalAlphaCount int
	Files           []FileRecord
}

// Summary holds aggregated information about a finished scan.
type Summary struct {
	Subfolders      int
	Files           int
	SkippedFiles    int
	TotalAlphaCount int
}

// ScanOptions controls which entries the walk looks at.
// The zero value skips hidden entries and honors .gitignore; defaultScanOptions
// is the plain full walk.
type ScanOptions struct {
	ShowHidden      bool
	NoIgnore        bool
	IncludePatterns []string
	ExcludePatterns []string
	MaxSizeBytes    int64
	MaxDepth        int
	MaxLineBytes    int
}

// defaultScanOptions visits every entry, hidden ones included, and ignores .gitignore.
func defaultScanOptions() ScanOptions {
	return ScanOptions{
		ShowHidden:   true,
		NoIgnore:     true,
		MaxLineBytes: defaultMaxLineBytes,
	}
}

// FileReadError reports a file that could not be opened or read. The file is skipped.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("could not read file %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// ReportWriteError reports a failure to create or write the CSV report.
type ReportWriteError struct {
	Path string
	Err  error
}

func (e *ReportWriteError) Error() string {
	return fmt.Sprintf("could not write report %s: %v", e.Path, e.Err)
}

func (e *ReportWriteError) Unwrap() error { return e.Err }
