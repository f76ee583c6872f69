package pdftext

import (
	"testing"

	"github.com/ledongthuc/pdf"
)

func word(x, y, w float64, s string) pdf.Text {
	return pdf.Text{X: x, Y: y, W: w, S: s}
}

func TestAssembleLines(t *testing.T) {
	tests := []struct {
		name  string
		words []pdf.Text
		want  string
	}{
		{
			name: "words on one baseline joined by single spaces",
			words: []pdf.Text{
				word(10, 700, 20, "16/10"),
				word(35, 700, 50, "REDENTOR"),
				word(90, 700, 30, "125,95"),
			},
			want: "16/10 REDENTOR 125,95",
		},
		{
			name: "adjacent fragments glued without a space",
			words: []pdf.Text{
				word(10, 700, 10, "16/"),
				word(20.4, 700, 10, "10"),
			},
			want: "16/10",
		},
		{
			name: "baselines become separate lines, top first",
			words: []pdf.Text{
				word(10, 680, 40, "second"),
				word(10, 700, 40, "first"),
			},
			want: "first\nsecond",
		},
		{
			name: "small baseline jitter stays on one line",
			words: []pdf.Text{
				word(10, 700, 20, "a"),
				word(40, 701.5, 20, "b"),
			},
			want: "a b",
		},
		{
			name:  "empty input",
			words: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AssembleLines(tt.words); got != tt.want {
				t.Errorf("AssembleLines() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRegionContains(t *testing.T) {
	r := Region{MinX: 140, MaxX: 355}
	if !r.contains(200, 700) {
		t.Error("expected 200,700 inside left column")
	}
	if r.contains(100, 700) {
		t.Error("expected 100,700 outside left column")
	}
	if r.contains(355, 700) {
		t.Error("MaxX boundary is exclusive")
	}

	open := Region{MinX: 355}
	if !open.contains(900, 700) {
		t.Error("zero MaxX means unbounded to the right")
	}
}

func TestOpen_MissingFile(t *testing.T) {
	if _, err := Open("testdata/does-not-exist.pdf"); err == nil {
		t.Error("expected error for missing file")
	}
}
