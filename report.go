package main

import (
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

const reportFileName = "climate_data_analysis.csv"

var reportHeader = []string{
	"Subfolder Name",
	"Subfolder Total Alphabetical Count",
	"File Name",
	"File Alphabetical Count",
	"Following day",
}

// subfolderIndex is an insertion-ordered map from directory name to its record.
// Directories with the same base name share one record.
type subfolderIndex struct {
	order []*SubfolderRecord
	byKey map[string]*SubfolderRecord
}

func newSubfolderIndex() *subfolderIndex {
	return &subfolderIndex{byKey: make(map[string]*SubfolderRecord)}
}

// visit registers a directory name, keeping the position of its first sighting.
func (s *subfolderIndex) visit(name string) *SubfolderRecord {
	if rec, ok := s.byKey[name]; ok {
		return rec
	}
	rec := &SubfolderRecord{Name: name}
	s.byKey[name] = rec
	s.order = append(s.order, rec)
	return rec
}

func (s *subfolderIndex) addFile(name string, file FileRecord) {
	rec := s.visit(name)
	rec.TotalAlphaCount += file.AlphaCount
	rec.Files = append(rec.Files, file)
}

// records returns copies of the records in encounter order.
func (s *subfolderIndex) records() []SubfolderRecord {
	out := make([]SubfolderRecord, 0, len(s.order))
	for _, rec := range s.order {
		out = append(out, SubfolderRecord{
			Name:            rec.Name,
			TotalAlphaCount: rec.TotalAlphaCount,
			Files:           slices.Clone(rec.Files),
		})
	}
	return out
}

// orderSubfolders puts zero-total subfolders first, in encounter order, followed by
// the rest sorted ascending by total. Ties keep encounter order. Files inside each
// subfolder are sorted by name.
func orderSubfolders(records []SubfolderRecord) []SubfolderRecord {
	var zero, nonZero []SubfolderRecord
	for _, rec := range records {
		rec.Files = slices.Clone(rec.Files)
		slices.SortStableFunc(rec.Files, func(a, b FileRecord) int {
			return strings.Compare(a.Name, b.Name)
		})
		if rec.TotalAlphaCount == 0 {
			zero = append(zero, rec)
		} else {
			nonZero = append(nonZero, rec)
		}
	}
	slices.SortStableFunc(nonZero, func(a, b SubfolderRecord) int {
		return a.TotalAlphaCount - b.TotalAlphaCount
	})
	return append(zero, nonZero...)
}

// reportRows flattens ordered subfolders into CSV rows, header excluded.
func reportRows(subfolders []SubfolderRecord) [][]string {
	var rows [][]string
	for _, sub := range subfolders {
		rows = append(rows, []string{sub.Name, strconv.Itoa(sub.TotalAlphaCount), "", "", ""})
		for _, file := range sub.Files {
			rows = append(rows, []string{"", "", file.Name, strconv.Itoa(file.AlphaCount), file.FollowingDayText()})
		}
	}
	return rows
}

// reportResult is what a finished run hands back to the command.
type reportResult struct {
	Path       string
	Subfolders []SubfolderRecord
	Summary    Summary
	CSV        []byte
}

// buildReport scans root and writes root/climate_data_analysis.csv.
// A *ReportWriteError is returned when the CSV cannot be written; the scan
// results are still filled in so the caller can render them elsewhere.
func buildReport(root string, opts ScanOptions, log *ConsoleLogger) (reportResult, error) {
	subfolders, summary, err := walkDirectory(root, opts, log)
	if err != nil {
		return reportResult{}, err
	}

	result := reportResult{
		Path:       filepath.Join(root, reportFileName),
		Subfolders: orderSubfolders(subfolders),
		Summary:    summary,
	}
	if abs, err := filepath.Abs(result.Path); err == nil {
		result.Path = abs
	}

	data, err := renderCSV(result.Subfolders)
	if err != nil {
		return result, &ReportWriteError{Path: result.Path, Err: err}
	}
	if err := os.WriteFile(result.Path, data, 0644); err != nil {
		return result, &ReportWriteError{Path: result.Path, Err: err}
	}
	result.CSV = data
	return result, nil
}
