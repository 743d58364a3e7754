// Package ocr defines the provider contract for recognizing text in page
// images extracted from a document, along with helpers that turn extracted
// image files into provider inputs. The Tesseract provider lives in the
// ocr/tesseract subpackage and registers itself on import.
package ocr
