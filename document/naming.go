package document

import (
	"path/filepath"
	"strconv"
	"strings"
)

// WithSuffix derives an output path next to in by appending an underscore
// suffix to the base name: "dir/report.pdf" + "rotated" ->
// "dir/report_rotated.pdf". Inputs without an extension get ".pdf".
func WithSuffix(in, suffix string) string {
	dir := filepath.Dir(in)
	ext := filepath.Ext(in)
	name := strings.TrimSuffix(filepath.Base(in), ext)
	if ext == "" {
		ext = ".pdf"
	}
	return filepath.Join(dir, name+"_"+suffix+ext)
}

// Vars holds the substitutions available to an output filename template.
type Vars struct {
	// Name is the input's base name without extension.
	Name string
	// Page is the 1-based index of the produced file.
	Page int
	// Ext is the extension without the leading dot.
	Ext string
}

// Expand substitutes {name}, {page} and {ext} in a filename template.
// Placeholders it does not know are left verbatim.
func Expand(pattern string, v Vars) string {
	r := strings.NewReplacer(
		"{name}", v.Name,
		"{page}", strconv.Itoa(v.Page),
		"{ext}", v.Ext,
	)
	return r.Replace(pattern)
}
