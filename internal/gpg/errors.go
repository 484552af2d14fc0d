package gpg

import (
	"fmt"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/passkeep/internal/errors"
)

// ProcessStartError is returned when the gpg executable cannot be spawned.
type ProcessStartError struct {
	Executable string
	Err        error
}

func (e *ProcessStartError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Executable, e.Err)
}

func (e *ProcessStartError) Unwrap() error { return e.Err }

func (e *ProcessStartError) Is(target error) bool { return target == kerrors.ErrProcessStart }

// ProcessTimeoutError is returned when gpg does not exit within the
// transport's timeout after its output pipes have closed.
type ProcessTimeoutError struct {
	Arguments string
	Timeout   time.Duration
}

func (e *ProcessTimeoutError) Error() string {
	return fmt.Sprintf("gpg did not exit within %s (arguments: %s)", e.Timeout, e.Arguments)
}

func (e *ProcessTimeoutError) Is(target error) bool { return target == kerrors.ErrProcessTimeout }

// CryptoToolError is a failed decrypt, encrypt or sign call as classified by
// the ResultVerifier. Diagnostics holds gpg's free-text stderr output.
type CryptoToolError struct {
	Operation   string
	Message     string
	Diagnostics string
}

func (e *CryptoToolError) Error() string {
	var b strings.Builder
	b.WriteString("gpg ")
	b.WriteString(e.Operation)
	b.WriteString(" failed: ")
	b.WriteString(e.Message)
	if e.Diagnostics != "" {
		b.WriteString("\n")
		b.WriteString(e.Diagnostics)
	}
	return b.String()
}

func (e *CryptoToolError) Is(target error) bool { return target == kerrors.ErrCryptoTool }
