package ocr

import "sync"

var (
	defaultMu     sync.RWMutex
	defaultEngine Engine
)

// SetDefaultEngine registers the process-wide OCR provider. Importing a
// provider package (e.g. ocr/tesseract) registers it as a side effect.
func SetDefaultEngine(e Engine) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultEngine = e
}

// DefaultEngine returns the registered provider, or nil when none is set.
func DefaultEngine() Engine {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultEngine
}
