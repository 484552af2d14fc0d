package gpg

import "strings"

// Result is the observable outcome of a single gpg invocation. It is built
// once by the Transport and not modified afterwards.
type Result struct {
	ExitCode        int
	RawStdout       string
	DiagnosticLines []string
	StatusMessages  []StatusMessage
}

// StdoutLines splits stdout into lines. Both "\r\n" and "\n" terminate a
// line; a trailing terminator does not produce an empty last line.
func (r *Result) StdoutLines() []string {
	if r.RawStdout == "" {
		return nil
	}
	text := strings.ReplaceAll(r.RawStdout, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// HasStatus reports whether at least one status message has the given code.
func (r *Result) HasStatus(code StatusCode) bool {
	for _, m := range r.StatusMessages {
		if m.Code == code {
			return true
		}
	}
	return false
}

// Statuses returns all status messages with the given code, in order.
func (r *Result) Statuses(code StatusCode) []StatusMessage {
	var out []StatusMessage
	for _, m := range r.StatusMessages {
		if m.Code == code {
			out = append(out, m)
		}
	}
	return out
}

// Diagnostics returns the diagnostic lines joined by newlines.
func (r *Result) Diagnostics() string {
	return strings.Join(r.DiagnosticLines, "\n")
}
