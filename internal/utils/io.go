package utils

import (
	"fmt"
	"io"
	"os"
)

// maxPipedSecret bounds how much piped input is read as a password file.
const maxPipedSecret = 1 << 20

// ReadPiped reads the password piped into f, usually os.Stdin.
// Returns an error if f is a terminal, is empty, or holds more than 1 MiB.
func ReadPiped(f *os.File) (string, error) {
	stat, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", f.Name(), err)
	}

	// A character device is a terminal, not a pipe.
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return "", fmt.Errorf("no data provided on stdin (hint: pipe the password to this command)")
	}

	data, err := io.ReadAll(io.LimitReader(f, maxPipedSecret+1))
	if err != nil {
		return "", fmt.Errorf("failed to read from %s: %w", f.Name(), err)
	}
	switch {
	case len(data) == 0:
		return "", fmt.Errorf("stdin is empty")
	case len(data) > maxPipedSecret:
		return "", fmt.Errorf("piped input is larger than %d bytes", maxPipedSecret)
	}
	return string(data), nil
}
