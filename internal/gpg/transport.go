package gpg

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"

	logger "github.com/PolarWolf314/passkeep/internal/logging"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeout bounds how long the transport waits for gpg to exit once
// both of its output pipes have been drained.
const DefaultTimeout = 5 * time.Second

// fixedFlags are passed to every gpg call.
var fixedFlags = []string{
	"--batch",                      // never ask for input
	"--no-tty",                     // we are not a terminal
	"--status-fd 2",                // status lines go to stderr
	"--with-colons",                // colon-delimited key listings
	"--exit-on-status-write-error", // abort if a status line cannot be written
}

// Invoker runs gpg with an argument string and optional standard input.
type Invoker interface {
	Invoke(ctx context.Context, arguments string, input io.Reader) (*Result, error)
}

// Transport invokes the gpg executable, one process per call.
type Transport struct {
	installation Installation
	homeDir      HomeDirectory
	processes    Processes
	timeout      time.Duration
	log          logger.Logger
}

// NewTransport creates a Transport. A zero timeout selects DefaultTimeout.
func NewTransport(installation Installation, homeDir HomeDirectory, processes Processes, timeout time.Duration, log logger.Logger) *Transport {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if processes == nil {
		processes = ExecProcesses{}
	}
	return &Transport{
		installation: installation,
		homeDir:      homeDir,
		processes:    processes,
		timeout:      timeout,
		log:          log,
	}
}

// CommandLine returns the full argument string passed to gpg for the given
// operation arguments.
func (t *Transport) CommandLine(arguments string) string {
	flags := append([]string{}, fixedFlags...)
	if t.homeDir.IsOverride {
		flags = append(flags, "--homedir "+Quote(t.homeDir.Path))
	}
	return strings.Join(flags, " ") + " " + arguments
}

// Invoke runs gpg and collects its output. Stdin is redirected only when
// input is non-nil. Stdout and stderr are drained concurrently; once both
// are closed the process must exit within the timeout or the call fails with
// a ProcessTimeoutError.
func (t *Transport) Invoke(ctx context.Context, arguments string, input io.Reader) (*Result, error) {
	t.log.Debugf("Calling gpg with %q", arguments)

	argv, err := SplitArguments(t.CommandLine(arguments))
	if err != nil {
		return nil, err
	}

	proc, err := t.processes.Start(ctx, t.installation.Executable, argv, input != nil)
	if err != nil {
		return nil, &ProcessStartError{Executable: t.installation.Executable, Err: err}
	}

	var (
		stdout string
		stderr stderrResult
	)

	var g errgroup.Group
	if input != nil {
		g.Go(func() error {
			t.writeInput(proc.Stdin(), input)
			return nil
		})
	}
	g.Go(func() error {
		data, err := io.ReadAll(proc.Stdout())
		if err != nil {
			return errors.Wrap(err, "reading gpg stdout")
		}
		stdout = string(data)
		return nil
	})
	g.Go(func() error {
		var err error
		stderr, err = t.readStderr(proc.Stderr())
		return err
	})
	if err := g.Wait(); err != nil {
		_ = proc.Kill()
		go func() { _ = proc.Wait() }()
		return nil, err
	}

	if err := t.waitForExit(ctx, proc, arguments); err != nil {
		return nil, err
	}

	return &Result{
		ExitCode:        proc.ExitCode(),
		RawStdout:       stdout,
		DiagnosticLines: stderr.diagnostics,
		StatusMessages:  stderr.statuses,
	}, nil
}

// writeInput copies input to stdin and closes it. Write failures are logged
// rather than returned: gpg closes stdin early when it fails, and the
// verifier reports that failure with better detail.
func (t *Transport) writeInput(stdin io.WriteCloser, input io.Reader) {
	if stdin == nil {
		return
	}
	if _, err := io.Copy(stdin, input); err != nil {
		t.log.Debugf("Writing to gpg stdin failed: %v", err)
	}
	if err := stdin.Close(); err != nil {
		t.log.Debugf("Closing gpg stdin failed: %v", err)
	}
}

type stderrResult struct {
	statuses    []StatusMessage
	diagnostics []string
}

func (t *Transport) readStderr(r io.Reader) (stderrResult, error) {
	var res stderrResult
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimRight(line, "\r\n")
			t.log.Debugf("[gpg] %s", line)
			if msg, ok := ParseStatusLine(line); ok {
				res.statuses = append(res.statuses, msg)
			} else {
				res.diagnostics = append(res.diagnostics, line)
			}
		}
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			return res, errors.Wrap(err, "reading gpg stderr")
		}
	}
}

func (t *Transport) waitForExit(ctx context.Context, proc Process, arguments string) error {
	done := make(chan error, 1)
	go func() { done <- proc.Wait() }()

	timer := time.NewTimer(t.timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		if err != nil {
			return errors.Wrap(err, "waiting for gpg to exit")
		}
		return nil
	case <-timer.C:
		_ = proc.Kill()
		return &ProcessTimeoutError{Arguments: arguments, Timeout: t.timeout}
	case <-ctx.Done():
		_ = proc.Kill()
		return ctx.Err()
	}
}
