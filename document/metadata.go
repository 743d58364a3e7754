package document

import (
	"fmt"
	"io"
	"strconv"
	"time"
)

// Info is the metadata report for a single document.
type Info struct {
	Path      string
	Version   string
	Pages     int
	Encrypted bool

	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
	Producer string

	// CreationDate and ModDate hold the raw PDF date strings from the info
	// dictionary. Render reformats them when they parse.
	CreationDate string
	ModDate      string
}

// Render writes the human-readable report.
func (i *Info) Render(w io.Writer) {
	fmt.Fprintf(w, "File:      %s\n", i.Path)
	fmt.Fprintf(w, "Version:   %s\n", i.Version)
	fmt.Fprintf(w, "Pages:     %d\n", i.Pages)
	fmt.Fprintf(w, "Encrypted: %t\n", i.Encrypted)
	renderField(w, "Title", i.Title)
	renderField(w, "Author", i.Author)
	renderField(w, "Subject", i.Subject)
	renderField(w, "Keywords", i.Keywords)
	renderField(w, "Creator", i.Creator)
	renderField(w, "Producer", i.Producer)
	renderField(w, "Created", DisplayDate(i.CreationDate))
	renderField(w, "Modified", DisplayDate(i.ModDate))
}

func renderField(w io.Writer, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(w, "%-10s %s\n", label+":", value)
}

// ParseDate parses a PDF date string of the form D:YYYYMMDDHHmmSS+HH'mm'.
// Everything after the year is optional and the string may be truncated at
// any component boundary. The offset marker is one of +, - or Z, and the
// trailing apostrophe after the offset minutes is accepted but not required.
func ParseDate(s string) (time.Time, bool) {
	if len(s) >= 2 && s[:2] == "D:" {
		s = s[2:]
	}
	if len(s) < 4 {
		return time.Time{}, false
	}

	year, s, ok := takeDigits(s, 4)
	if !ok {
		return time.Time{}, false
	}
	month, s, ok := takeComponent(s, 1, 12, 1)
	if !ok {
		return time.Time{}, false
	}
	day, s, ok := takeComponent(s, 1, 31, 1)
	if !ok {
		return time.Time{}, false
	}
	hour, s, ok := takeComponent(s, 0, 23, 0)
	if !ok {
		return time.Time{}, false
	}
	min, s, ok := takeComponent(s, 0, 59, 0)
	if !ok {
		return time.Time{}, false
	}
	sec, s, ok := takeComponent(s, 0, 59, 0)
	if !ok {
		return time.Time{}, false
	}

	loc := time.UTC
	if len(s) > 0 {
		var offOK bool
		loc, offOK = parseOffset(s)
		if !offOK {
			return time.Time{}, false
		}
	}
	return time.Date(year, time.Month(month), day, hour, min, sec, 0, loc), true
}

// takeComponent reads a two-digit component, substituting def when the
// string is exhausted.
func takeComponent(s string, lo, hi, def int) (int, string, bool) {
	if len(s) == 0 {
		return def, s, true
	}
	n, rest, ok := takeDigits(s, 2)
	if !ok || n < lo || n > hi {
		return 0, s, false
	}
	return n, rest, true
}

func takeDigits(s string, n int) (int, string, bool) {
	if len(s) < n {
		return 0, s, false
	}
	v, err := strconv.Atoi(s[:n])
	if err != nil {
		return 0, s, false
	}
	return v, s[n:], true
}

func parseOffset(s string) (*time.Location, bool) {
	switch s[0] {
	case 'Z':
		// Z may be followed by 00'00'; either way the offset is zero.
		return time.UTC, true
	case '+', '-':
		sign := 1
		if s[0] == '-' {
			sign = -1
		}
		s = s[1:]
		if len(s) == 0 {
			return nil, false
		}
		hh, s, ok := takeDigits(s, 2)
		if !ok || hh > 23 {
			return nil, false
		}
		mm := 0
		if len(s) > 0 {
			if s[0] == '\'' {
				s = s[1:]
			}
			if len(s) >= 2 {
				mm, _, ok = takeDigits(s, 2)
				if !ok || mm > 59 {
					return nil, false
				}
			}
		}
		off := sign * (hh*3600 + mm*60)
		if off == 0 {
			return time.UTC, true
		}
		return time.FixedZone("", off), true
	}
	return nil, false
}

// FormatDate renders a parsed PDF date as RFC 3339.
func FormatDate(t time.Time) string {
	return t.Format(time.RFC3339)
}

// DisplayDate reformats a raw PDF date string for the report, falling back
// to the raw string when it does not parse. Malformed creation dates are
// common in the wild and should not fail a whole report.
func DisplayDate(raw string) string {
	if raw == "" {
		return ""
	}
	if t, ok := ParseDate(raw); ok {
		return FormatDate(t)
	}
	return raw
}
