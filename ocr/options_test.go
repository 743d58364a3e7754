package ocr

import "testing"

func TestTesseractOptions(t *testing.T) {
	in := Input{}
	WithTesseractPSM(6)(&in)
	if got := in.Metadata["tessedit_pageseg_mode"]; got != "6" {
		t.Fatalf("expected PSM to be set, got %q", got)
	}
	WithTesseractWhitelist("ABC")(&in)
	if got := in.Metadata["tessedit_char_whitelist"]; got != "ABC" {
		t.Fatalf("expected whitelist to be set, got %q", got)
	}
}

func TestWithRegion(t *testing.T) {
	in := Input{}
	WithRegion(Region{X: 1, Y: 2, Width: 10, Height: 20})(&in)
	if in.Region == nil || in.Region.Width != 10 {
		t.Fatalf("region not set: %+v", in.Region)
	}
	WithRegion(Region{})(&in)
	if in.Region != nil {
		t.Fatal("empty region should clear the field")
	}
}

func TestWithMetadataCopies(t *testing.T) {
	src := map[string]string{"k": "v"}
	in := Input{}
	WithMetadata(src)(&in)
	src["k"] = "changed"
	if in.Metadata["k"] != "v" {
		t.Fatal("metadata must be copied, not aliased")
	}
	WithMetadata(nil)(&in)
	if in.Metadata != nil {
		t.Fatal("nil metadata should clear the field")
	}
}

func TestWithDPI(t *testing.T) {
	in := Input{}
	WithDPI(300)(&in)
	if in.DPI != 300 {
		t.Fatalf("dpi = %d", in.DPI)
	}
}
