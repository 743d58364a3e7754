package observability

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

// Logger is the logging contract the document operations report through.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

type Field interface {
	Key() string
	Value() interface{}
}

type stringField struct{ key, val string }

func (f stringField) Key() string        { return f.key }
func (f stringField) Value() interface{} { return f.val }

type intField struct {
	key string
	val int
}

func (f intField) Key() string        { return f.key }
func (f intField) Value() interface{} { return f.val }

type durationField struct {
	key string
	val time.Duration
}

func (f durationField) Key() string        { return f.key }
func (f durationField) Value() interface{} { return f.val }

type errorField struct {
	key string
	err error
}

func (f errorField) Key() string        { return f.key }
func (f errorField) Value() interface{} { return f.err }

func String(key, value string) Field             { return stringField{key, value} }
func Int(key string, value int) Field            { return intField{key, value} }
func Duration(key string, d time.Duration) Field { return durationField{key, d} }
func Error(key string, err error) Field          { return errorField{key, err} }

type NopLogger struct{}

func (NopLogger) Debug(string, ...Field) {}
func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Warn(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}
func (NopLogger) With(...Field) Logger   { return NopLogger{} }

// Level gates WriterLogger output.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// WriterLogger writes leveled key=value lines to an io.Writer. A binary needs
// a concrete sink; code embedding the document operations can keep passing
// its own Logger.
type WriterLogger struct {
	mu    *sync.Mutex
	w     io.Writer
	min   Level
	bound []Field
}

// NewWriterLogger returns a logger emitting records at or above min to w.
func NewWriterLogger(w io.Writer, min Level) *WriterLogger {
	return &WriterLogger{mu: &sync.Mutex{}, w: w, min: min}
}

func (l *WriterLogger) Debug(msg string, fields ...Field) { l.log(LevelDebug, msg, fields) }
func (l *WriterLogger) Info(msg string, fields ...Field)  { l.log(LevelInfo, msg, fields) }
func (l *WriterLogger) Warn(msg string, fields ...Field)  { l.log(LevelWarn, msg, fields) }
func (l *WriterLogger) Error(msg string, fields ...Field) { l.log(LevelError, msg, fields) }

func (l *WriterLogger) With(fields ...Field) Logger {
	bound := make([]Field, 0, len(l.bound)+len(fields))
	bound = append(bound, l.bound...)
	bound = append(bound, fields...)
	return &WriterLogger{mu: l.mu, w: l.w, min: l.min, bound: bound}
}

func (l *WriterLogger) log(lv Level, msg string, fields []Field) {
	if lv < l.min {
		return
	}
	all := make([]Field, 0, len(l.bound)+len(fields))
	all = append(all, l.bound...)
	all = append(all, fields...)
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "%s %s", lv, msg)
	for _, f := range all {
		fmt.Fprintf(l.w, " %s=%v", f.Key(), f.Value())
	}
	fmt.Fprintln(l.w)
}

// Metrics receives operation timings.
type Metrics interface {
	Observe(name string, d time.Duration)
}

type NopMetrics struct{}

func (NopMetrics) Observe(string, time.Duration) {}

// Collector accumulates observations in memory for end-of-run reporting.
type Collector struct {
	mu  sync.Mutex
	obs map[string][]time.Duration
}

func NewCollector() *Collector {
	return &Collector{obs: make(map[string][]time.Duration)}
}

func (c *Collector) Observe(name string, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.obs[name] = append(c.obs[name], d)
}

// Report writes one line per metric name with count and total duration.
func (c *Collector) Report(w io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.obs))
	for name := range c.obs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		var total time.Duration
		for _, d := range c.obs[name] {
			total += d
		}
		fmt.Fprintf(w, "%s count=%d total=%s\n", name, len(c.obs[name]), total)
	}
}

// Standard metric names emitted by the document operations.
const (
	MetricMergeTime    = "pdfdeck.merge.duration"
	MetricStatTime     = "pdfdeck.info.duration"
	MetricRotateTime   = "pdfdeck.rotate.duration"
	MetricSplitTime    = "pdfdeck.split.duration"
	MetricEncryptTime  = "pdfdeck.encrypt.duration"
	MetricDecryptTime  = "pdfdeck.decrypt.duration"
	MetricOptimizeTime = "pdfdeck.optimize.duration"
	MetricOCRTime      = "pdfdeck.ocr.duration"
)
