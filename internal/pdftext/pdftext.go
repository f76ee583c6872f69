// Package pdftext is the text-extraction boundary of the parser: per page it
// provides the full extracted text and re-extraction from an arbitrary
// rectangular sub-region, both with a fixed word-spacing tolerance so that
// multi-word fields stay separated by single spaces.
package pdftext

import (
	"fmt"
	"math"
	"os"

	"github.com/ledongthuc/pdf"
)

// Region is a rectangular crop in page coordinates (points, origin at the
// bottom-left corner). A zero MaxX or MaxY means unbounded on that side.
type Region struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

func (r Region) contains(x, y float64) bool {
	if x < r.MinX || y < r.MinY {
		return false
	}
	if r.MaxX > 0 && x >= r.MaxX {
		return false
	}
	if r.MaxY > 0 && y >= r.MaxY {
		return false
	}
	return true
}

// Source is the pure (page, region?) -> text contract the parser consumes.
// Pages are 1-based.
type Source interface {
	NumPages() int
	PageText(page int) (string, error)
	RegionText(page int, r Region) (string, error)
}

// Document is a Source backed by a PDF file.
type Document struct {
	file   *os.File
	reader *pdf.Reader
}

var _ Source = (*Document)(nil)

// Open opens the PDF at path. The caller must Close the document.
func Open(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("pdftext.Open: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("pdftext.Open: %s is a directory, not a file", path)
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pdftext.Open: reading %s: %w", path, err)
	}
	return &Document{file: f, reader: r}, nil
}

// Close releases the underlying file.
func (d *Document) Close() error {
	return d.file.Close()
}

// NumPages returns the page count.
func (d *Document) NumPages() int {
	return d.reader.NumPage()
}

// PageText extracts the full text of a page, lines top to bottom.
func (d *Document) PageText(page int) (string, error) {
	return d.RegionText(page, Region{})
}

// RegionText extracts the text of a rectangular sub-region of a page.
func (d *Document) RegionText(page int, region Region) (text string, err error) {
	// The pdf library panics on malformed content streams; a bad crop must
	// yield an empty column, never abort the document.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdftext.RegionText: page %d: %v", page, r)
		}
	}()

	if page < 1 || page > d.reader.NumPage() {
		return "", fmt.Errorf("pdftext.RegionText: page %d out of range", page)
	}
	p := d.reader.Page(page)
	if p.V.IsNull() {
		return "", nil
	}

	words := make([]pdf.Text, 0, 256)
	for _, w := range p.Content().Text {
		if region.contains(w.X, w.Y) {
			words = append(words, w)
		}
	}
	return AssembleLines(words), nil
}

// Word-spacing tolerances in points. Fragments closer than wordGapTolerance
// on the same baseline are glued without a space; lines whose baselines
// differ by less than lineTolerance are treated as one physical line.
const (
	wordGapTolerance = 1.0
	lineTolerance    = 2.0
)

// AssembleLines joins positioned text fragments into newline-separated
// lines. Fragments are grouped by baseline (PDF y grows upward, so higher
// y comes first) and ordered left to right within a line.
func AssembleLines(words []pdf.Text) string {
	if len(words) == 0 {
		return ""
	}

	sorted := make([]pdf.Text, len(words))
	copy(sorted, words)
	// Stable insertion keeps the content-stream order for fragments at the
	// same coordinates, which keeps repeated parses deterministic.
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && lessByLine(sorted[j], sorted[j-1]); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	var out []byte
	lineY := sorted[0].Y
	prevEnd := math.Inf(-1)
	for i, w := range sorted {
		switch {
		case i == 0:
		case math.Abs(w.Y-lineY) > lineTolerance:
			out = append(out, '\n')
			lineY = w.Y
			prevEnd = math.Inf(-1)
		case w.X-prevEnd > wordGapTolerance:
			out = append(out, ' ')
		}
		out = append(out, w.S...)
		prevEnd = w.X + w.W
	}
	return string(out)
}

func lessByLine(a, b pdf.Text) bool {
	if math.Abs(a.Y-b.Y) > lineTolerance {
		return a.Y > b.Y
	}
	return a.X < b.X
}
