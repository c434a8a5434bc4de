package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfMargin     = 10 // Margin in mm
	pdfLineHeight = 5  // Line height in mm
	pdfFontSize   = 9
	pdfCellPad    = 1
)

// Column widths in mm; they add up to the printable width of landscape A4.
var pdfColumnWidths = []float64{55, 45, 70, 35, 72}

// generatePDF writes the report table and a run summary to outputPath.
func generatePDF(subfolders []SubfolderRecord, summary Summary, rootPath, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create PDF %s: %w", outputPath, err)
	}
	if _, err := renderPDF(f, subfolders, summary, rootPath); err != nil {
		f.Close()
		return fmt.Errorf("failed to save PDF to %s: %w", outputPath, err)
	}
	return f.Close()
}

// renderPDF draws the report onto w and returns the number of pages.
func renderPDF(w io.Writer, subfolders []SubfolderRecord, summary Summary, rootPath string) (int, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.SetTitle(reportFileName, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", pdfFontSize+3)
	pdf.CellFormat(0, pdfLineHeight*2, tr("Climate data analysis: "+rootPath), "", 1, "L", false, 0, "")

	writePDFRow(pdf, tr, reportHeader, "B", true)
	for _, row := range reportRows(subfolders) {
		style := ""
		if row[0] != "" {
			style = "B"
		}
		writePDFRow(pdf, tr, row, style, false)
	}

	_, pageHeight := pdf.GetPageSize()
	if pdf.GetY()+6*pdfLineHeight > pageHeight-pdfMargin {
		pdf.AddPage()
	} else {
		pdf.Ln(pdfLineHeight)
	}
	pdf.SetFont("Helvetica", "B", pdfFontSize+1)
	pdf.CellFormat(0, pdfLineHeight, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", pdfFontSize)
	lines := []string{
		fmt.Sprintf("Subfolders: %d", summary.Subfolders),
		fmt.Sprintf("Files counted: %d", summary.Files),
		fmt.Sprintf("Total alphabetical units: %d", summary.TotalAlphaCount),
		fmt.Sprintf("Files skipped (unreadable): %d", summary.SkippedFiles),
	}
	for _, line := range lines {
		pdf.CellFormat(0, pdfLineHeight, line, "", 1, "L", false, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return 0, err
	}
	pages := pdf.PageCount()
	return pages, pdf.Output(w)
}

// writePDFRow draws one table row, wrapping long cells and repeating the header
// after a page break.
func writePDFRow(pdf *gofpdf.Fpdf, tr func(string) string, cells []string, style string, header bool) {
	pdf.SetFont("Helvetica", style, pdfFontSize)

	lines := make([][][]byte, len(cells))
	maxLines := 1
	for i, cell := range cells {
		lines[i] = pdf.SplitLines([]byte(tr(cell)), pdfColumnWidths[i]-2*pdfCellPad)
		if len(lines[i]) > maxLines {
			maxLines = len(lines[i])
		}
	}
	rowHeight := float64(maxLines) * pdfLineHeight

	_, pageHeight := pdf.GetPageSize()
	if pdf.GetY()+rowHeight > pageHeight-pdfMargin {
		pdf.AddPage()
		if !header {
			writePDFRow(pdf, tr, reportHeader, "B", true)
			pdf.SetFont("Helvetica", style, pdfFontSize)
		}
	}

	x, y := pdf.GetXY()
	if header {
		pdf.SetFillColor(230, 230, 230)
	}
	for i := range cells {
		pdf.Rect(x, y, pdfColumnWidths[i], rowHeight, fillStyle(header))
		for j, line := range lines[i] {
			pdf.SetXY(x+pdfCellPad, y+float64(j)*pdfLineHeight)
			pdf.CellFormat(pdfColumnWidths[i]-2*pdfCellPad, pdfLineHeight, string(line), "", 0, "L", false, 0, "")
		}
		x += pdfColumnWidths[i]
	}
	pdf.SetXY(pdfMargin, y+rowHeight)
}

func fillStyle(fill bool) string {
	if fill {
		return "FD"
	}
	return "D"
}
