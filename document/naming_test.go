package document

import (
	"path/filepath"
	"testing"
)

func TestWithSuffix(t *testing.T) {
	tests := []struct {
		in     string
		suffix string
		want   string
	}{
		{"report.pdf", "rotated", "report_rotated.pdf"},
		{filepath.Join("docs", "report.pdf"), "encrypted", filepath.Join("docs", "report_encrypted.pdf")},
		{"archive.tar.pdf", "split", "archive.tar_split.pdf"},
		{"noext", "optimized", "noext_optimized.pdf"},
		{filepath.Join("a", "b", "x.PDF"), "decrypted", filepath.Join("a", "b", "x_decrypted.PDF")},
	}
	for _, tt := range tests {
		if got := WithSuffix(tt.in, tt.suffix); got != tt.want {
			t.Errorf("WithSuffix(%q, %q) = %q, want %q", tt.in, tt.suffix, got, tt.want)
		}
	}
}

func TestExpand(t *testing.T) {
	tests := []struct {
		pattern string
		v       Vars
		want    string
	}{
		{"{name}_part{page}.{ext}", Vars{Name: "report", Page: 3, Ext: "pdf"}, "report_part3.pdf"},
		{"{page}-{name}", Vars{Name: "x", Page: 12}, "12-x"},
		{"{name}.{ext}", Vars{Name: "a", Ext: "pdf"}, "a.pdf"},
		{"plain.pdf", Vars{Name: "ignored", Page: 1}, "plain.pdf"},
		{"{unknown}/{name}", Vars{Name: "n"}, "{unknown}/n"},
	}
	for _, tt := range tests {
		if got := Expand(tt.pattern, tt.v); got != tt.want {
			t.Errorf("Expand(%q) = %q, want %q", tt.pattern, got, tt.want)
		}
	}
}
