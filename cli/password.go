package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const maxNewPasswordAttempts = 3

// promptSource asks for passwords interactively, without echo when stdin is
// a terminal. It implements document.PasswordSource.
type promptSource struct {
	in  *os.File
	out io.Writer
}

func (s promptSource) Password(path string, attempt int) (string, error) {
	if attempt > 1 {
		fmt.Fprintln(s.out, "Wrong password, try again.")
	}
	return readSecret(s.in, s.out, fmt.Sprintf("Password for %s: ", path))
}

// readNewPassword prompts for a password twice and requires both entries to
// match, retrying a bounded number of times.
func readNewPassword(in *os.File, out io.Writer) (string, error) {
	for attempt := 1; attempt <= maxNewPasswordAttempts; attempt++ {
		pw, err := readSecret(in, out, "New password: ")
		if err != nil {
			return "", err
		}
		if pw == "" {
			fmt.Fprintln(out, "Password must not be empty.")
			continue
		}
		confirm, err := readSecret(in, out, "Confirm password: ")
		if err != nil {
			return "", err
		}
		if pw == confirm {
			return pw, nil
		}
		fmt.Fprintln(out, "Passwords do not match, try again.")
	}
	return "", fmt.Errorf("no matching password after %d attempts", maxNewPasswordAttempts)
}

func readSecret(in *os.File, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	if term.IsTerminal(int(in.Fd())) {
		b, err := term.ReadPassword(int(in.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}
	// Piped stdin. Read unbuffered so consecutive prompts do not swallow
	// each other's lines.
	line, err := readLine(in)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return line, nil
}

func readLine(in io.Reader) (string, error) {
	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				break
			}
			sb.WriteByte(buf[0])
		}
		if err != nil {
			if err == io.EOF && sb.Len() > 0 {
				break
			}
			return "", err
		}
	}
	return strings.TrimRight(sb.String(), "\r"), nil
}
