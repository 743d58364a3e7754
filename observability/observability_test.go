package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestWriterLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, LevelInfo)
	l.Debug("hidden")
	l.Info("shown", String("file", "a.pdf"))
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug record should be gated, got %q", out)
	}
	if !strings.Contains(out, "INFO shown file=a.pdf") {
		t.Fatalf("unexpected record: %q", out)
	}
}

func TestWriterLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger(&buf, LevelDebug).With(String("op", "merge"))
	l.Warn("slow", Int("pages", 40))
	if got := buf.String(); !strings.Contains(got, "op=merge") || !strings.Contains(got, "pages=40") {
		t.Fatalf("bound fields missing: %q", got)
	}
}

func TestCollectorReport(t *testing.T) {
	c := NewCollector()
	c.Observe(MetricMergeTime, 2*time.Millisecond)
	c.Observe(MetricMergeTime, 3*time.Millisecond)
	c.Observe(MetricSplitTime, time.Millisecond)
	var buf bytes.Buffer
	c.Report(&buf)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 metric lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "pdfdeck.merge.duration count=2 total=5ms") {
		t.Fatalf("unexpected merge line: %q", lines[0])
	}
}

func TestDurationField(t *testing.T) {
	f := Duration("took", 1500*time.Millisecond)
	if f.Key() != "took" {
		t.Fatalf("key = %q", f.Key())
	}
	if f.Value().(time.Duration) != 1500*time.Millisecond {
		t.Fatalf("value = %v", f.Value())
	}
	var buf bytes.Buffer
	NewWriterLogger(&buf, LevelDebug).Info("done", f)
	if !strings.Contains(buf.String(), "took=1.5s") {
		t.Fatalf("duration not rendered: %q", buf.String())
	}
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l = l.With(String("k", "v"))
	l.Error("nothing happens", Error("err", nil))
}
