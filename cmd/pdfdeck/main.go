package main

import (
	"github.com/wudi/pdfdeck/cli"

	// Register the Tesseract OCR engine.
	_ "github.com/wudi/pdfdeck/ocr/tesseract"
)

func main() {
	cli.Execute()
}
