package document

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"D:20240131120000+01'00'", "2024-01-31T12:00:00+01:00", true},
		{"D:20240131120000-05'30'", "2024-01-31T12:00:00-05:30", true},
		{"D:20240131120000Z", "2024-01-31T12:00:00Z", true},
		{"D:20240131120000Z00'00'", "2024-01-31T12:00:00Z", true},
		// Missing trailing apostrophe after the offset minutes.
		{"D:20240131120000+01'00", "2024-01-31T12:00:00+01:00", true},
		// Legal truncations.
		{"D:2024", "2024-01-01T00:00:00Z", true},
		{"D:202406", "2024-06-01T00:00:00Z", true},
		{"D:20240615", "2024-06-15T00:00:00Z", true},
		{"D:2024061509", "2024-06-15T09:00:00Z", true},
		{"D:202406150930", "2024-06-15T09:30:00Z", true},
		{"D:20240615093045", "2024-06-15T09:30:45Z", true},
		// Prefix is optional.
		{"20240615093045", "2024-06-15T09:30:45Z", true},
		// Zero offset normalizes to UTC.
		{"D:20240615093045+00'00'", "2024-06-15T09:30:45Z", true},
		// Malformed.
		{"", "", false},
		{"D:", "", false},
		{"D:202", "", false},
		{"D:2024XX", "", false},
		{"D:20241315", "", false},
		{"D:20240132", "", false},
		{"D:2024061525", "", false},
		{"D:20240615093045*01'00'", "", false},
		{"D:20240615093045+", "", false},
		{"yesterday", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseDate(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseDate(%q) ok = %t, want %t", tt.in, ok, tt.ok)
			continue
		}
		if ok && FormatDate(got) != tt.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tt.in, FormatDate(got), tt.want)
		}
	}
}

func TestParseDateRoundTrip(t *testing.T) {
	in := "D:20231201084512+02'00'"
	got, ok := ParseDate(in)
	if !ok {
		t.Fatalf("ParseDate(%q) failed", in)
	}
	want := time.Date(2023, 12, 1, 8, 45, 12, 0, time.FixedZone("", 2*3600))
	if !got.Equal(want) {
		t.Fatalf("ParseDate(%q) = %v, want %v", in, got, want)
	}
}

func TestDisplayDate(t *testing.T) {
	if got := DisplayDate("D:20240131120000Z"); got != "2024-01-31T12:00:00Z" {
		t.Fatalf("parsed date not reformatted: %q", got)
	}
	if got := DisplayDate("not a date"); got != "not a date" {
		t.Fatalf("malformed date should pass through verbatim, got %q", got)
	}
	if got := DisplayDate(""); got != "" {
		t.Fatalf("empty date should stay empty, got %q", got)
	}
}

func TestInfoRender(t *testing.T) {
	info := &Info{
		Path:         "report.pdf",
		Version:      "1.7",
		Pages:        12,
		Encrypted:    true,
		Title:        "Quarterly Report",
		Author:       "Finance",
		CreationDate: "D:20240131120000Z",
		ModDate:      "garbled",
	}
	var buf bytes.Buffer
	info.Render(&buf)
	out := buf.String()
	for _, want := range []string{
		"File:      report.pdf",
		"Version:   1.7",
		"Pages:     12",
		"Encrypted: true",
		"Title:     Quarterly Report",
		"Created:   2024-01-31T12:00:00Z",
		"Modified:  garbled",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Subject") {
		t.Errorf("empty fields should be omitted:\n%s", out)
	}
}
