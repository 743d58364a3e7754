package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func pipeWith(t *testing.T, input string) *os.File {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.WriteString(input); err != nil {
		t.Fatal(err)
	}
	w.Close()
	t.Cleanup(func() { r.Close() })
	return r
}

func TestReadLine(t *testing.T) {
	in := strings.NewReader("first\r\nsecond\n")
	got, err := readLine(in)
	if err != nil || got != "first" {
		t.Fatalf("readLine = %q, %v", got, err)
	}
	got, err = readLine(in)
	if err != nil || got != "second" {
		t.Fatalf("second readLine = %q, %v", got, err)
	}
	if _, err = readLine(in); err == nil {
		t.Fatal("expected error at EOF")
	}
}

func TestReadNewPassword(t *testing.T) {
	var out bytes.Buffer
	in := pipeWith(t, "secret\nsecret\n")
	pw, err := readNewPassword(in, &out)
	if err != nil {
		t.Fatal(err)
	}
	if pw != "secret" {
		t.Fatalf("pw = %q", pw)
	}
	if !strings.Contains(out.String(), "New password:") || !strings.Contains(out.String(), "Confirm password:") {
		t.Fatalf("prompts missing: %q", out.String())
	}
}

func TestReadNewPasswordMismatchThenMatch(t *testing.T) {
	var out bytes.Buffer
	in := pipeWith(t, "one\ntwo\nsame\nsame\n")
	pw, err := readNewPassword(in, &out)
	if err != nil {
		t.Fatal(err)
	}
	if pw != "same" {
		t.Fatalf("pw = %q", pw)
	}
	if !strings.Contains(out.String(), "do not match") {
		t.Fatalf("mismatch notice missing: %q", out.String())
	}
}

func TestReadNewPasswordRejectsEmpty(t *testing.T) {
	var out bytes.Buffer
	in := pipeWith(t, "\nfilled\nfilled\n")
	pw, err := readNewPassword(in, &out)
	if err != nil {
		t.Fatal(err)
	}
	if pw != "filled" {
		t.Fatalf("pw = %q", pw)
	}
	if !strings.Contains(out.String(), "must not be empty") {
		t.Fatalf("empty notice missing: %q", out.String())
	}
}

func TestReadNewPasswordGivesUp(t *testing.T) {
	var out bytes.Buffer
	in := pipeWith(t, "a\nb\nc\nd\ne\nf\n")
	if _, err := readNewPassword(in, &out); err == nil {
		t.Fatal("expected failure after bounded attempts")
	}
}

func TestPromptSource(t *testing.T) {
	var out bytes.Buffer
	src := promptSource{in: pipeWith(t, "hunter2\n"), out: &out}
	pw, err := src.Password("locked.pdf", 2)
	if err != nil {
		t.Fatal(err)
	}
	if pw != "hunter2" {
		t.Fatalf("pw = %q", pw)
	}
	if !strings.Contains(out.String(), "Wrong password") {
		t.Fatalf("retry notice missing on attempt 2: %q", out.String())
	}
	if !strings.Contains(out.String(), "locked.pdf") {
		t.Fatalf("prompt should name the file: %q", out.String())
	}
}
