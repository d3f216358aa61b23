// Package report renders lists as PDF documents and stores them in a sink.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	fontFamily   = "Arial"
	titleSize    = 16
	lineSize     = 12
	lineHeight   = 8
	bottomMargin = 15
)

// RenderList renders title followed by one "- line" bullet per entry on A4
// pages. Text is translated from UTF-8 to cp1252; characters outside that
// code page are replaced.
func RenderList(title string, lines []string) ([]byte, error) {
	return renderList(title, lines, time.Now())
}

func renderList(title string, lines []string, created time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetCreationDate(created)
	pdf.SetAutoPageBreak(true, bottomMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont(fontFamily, "B", titleSize)
	pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont(fontFamily, "", lineSize)
	for _, line := range lines {
		pdf.MultiCell(0, lineHeight, tr("- "+line), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
