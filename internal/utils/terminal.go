package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// ReadSecret prompts on stderr and reads a line from the terminal without
// echoing it.
// Returns an error if stdin is not a terminal.
func ReadSecret(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("cannot read password: stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, prompt)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	return string(secret), nil
}

// Prompter asks yes/no questions.
type Prompter struct {
	In  io.Reader
	Out io.Writer

	// Interactive is false when nobody can answer. Questions then get the
	// answer "no" unless AssumeYes is set.
	Interactive bool
	// AssumeYes answers every question with "yes" without asking.
	AssumeYes bool

	reader *bufio.Reader
}

// NewTerminalPrompter returns a Prompter on stdin and stderr that is
// interactive when stdin is a terminal.
func NewTerminalPrompter(assumeYes bool) *Prompter {
	return &Prompter{
		In:          os.Stdin,
		Out:         os.Stderr,
		Interactive: IsTerminal(),
		AssumeYes:   assumeYes,
	}
}

// Confirm prints question and reports whether the answer was y or yes.
func (p *Prompter) Confirm(question string) bool {
	if p.AssumeYes {
		return true
	}
	if !p.Interactive {
		return false
	}
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}

	fmt.Fprintf(p.Out, "%s [y/N]: ", question)
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
