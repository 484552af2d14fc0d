package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// ProgressPrinter writes re-encryption progress messages, marking each
// with a symbol for its outcome. It is safe for concurrent use.
type ProgressPrinter struct {
	mu  sync.Mutex
	out io.Writer
}

func NewProgressPrinter(out io.Writer) *ProgressPrinter {
	return &ProgressPrinter{out: out}
}

// Print writes one message.
func (p *ProgressPrinter) Print(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, decorate(message))
}

func decorate(message string) string {
	switch {
	case strings.HasPrefix(message, "Re-encrypted "), strings.HasPrefix(message, "Would re-encrypt "):
		return Success.Sprint("✓") + " " + message
	case strings.HasPrefix(message, "Skipped "):
		return Muted.Sprint("-") + " " + message
	case strings.HasPrefix(message, "Failed "):
		return Error.Sprint("✗") + " " + message
	case message == "Re-encryption aborted.":
		return Warning.Sprint(message)
	default:
		return Info.Sprint("→") + " " + message
	}
}
