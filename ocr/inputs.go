package ocr

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/image/tiff"
)

// InputFromFile builds an OCR input from an image file written by the page
// image extraction step. TIFF payloads are re-encoded as PNG so the provider
// never depends on its TIFF support being compiled in; PNG and JPEG pass
// through untouched. The input ID is the file's base name to simplify
// correlation with results.
func InputFromFile(path string, opts ...InputOption) (Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Input{}, fmt.Errorf("read image: %w", err)
	}
	format, err := detectFormat(path, data)
	if err != nil {
		return Input{}, err
	}
	if format == ImageFormatTIFF {
		data, err = tiffToPNG(data)
		if err != nil {
			return Input{}, fmt.Errorf("normalize %s: %w", filepath.Base(path), err)
		}
		format = ImageFormatPNG
	}
	in := Input{
		ID:        filepath.Base(path),
		Image:     data,
		Format:    format,
		PageIndex: pageIndexFromName(filepath.Base(path)),
	}
	for _, opt := range opts {
		opt(&in)
	}
	return in, nil
}

func detectFormat(path string, data []byte) (ImageFormat, error) {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return ImageFormatPNG, nil
	case bytes.HasPrefix(data, []byte{0xff, 0xd8}):
		return ImageFormatJPEG, nil
	case bytes.HasPrefix(data, []byte("II*\x00")), bytes.HasPrefix(data, []byte("MM\x00*")):
		return ImageFormatTIFF, nil
	}
	return "", fmt.Errorf("unsupported image format: %s", filepath.Base(path))
}

func tiffToPNG(data []byte) ([]byte, error) {
	img, err := tiff.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Anchored to the <base>_<page>_<resource> suffix so a document whose own
// name contains _<digits>_ cannot shadow the page number.
var imageNamePage = regexp.MustCompile(`_(\d+)_[^_]+$`)

// pageIndexFromName recovers the zero-based page index from extracted image
// names of the form <doc>_<page>_<resource>.<ext>. Returns -1 when the name
// does not carry one.
func pageIndexFromName(name string) int {
	m := imageNamePage.FindStringSubmatch(strings.TrimSuffix(name, filepath.Ext(name)))
	if m == nil {
		return -1
	}
	page, err := strconv.Atoi(m[1])
	if err != nil || page < 1 {
		return -1
	}
	return page - 1
}
