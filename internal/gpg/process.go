package gpg

import (
	"context"
	"io"
	"os/exec"

	"github.com/cockroachdb/errors"
)

// Process is a started subprocess with redirected standard streams.
type Process interface {
	// Stdin is nil when input was not redirected.
	Stdin() io.WriteCloser
	Stdout() io.Reader
	Stderr() io.Reader
	// Wait blocks until the process exits. A non-zero exit code is not an
	// error; it is reported by ExitCode.
	Wait() error
	ExitCode() int
	Kill() error
}

// Processes starts subprocesses. The Transport depends on this interface so
// tests can substitute scripted processes.
type Processes interface {
	Start(ctx context.Context, name string, args []string, redirectStdin bool) (Process, error)
}

// ExecProcesses starts real processes through os/exec.
type ExecProcesses struct{}

func (ExecProcesses) Start(ctx context.Context, name string, args []string, redirectStdin bool) (Process, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	p := &execProcess{cmd: cmd}

	var err error
	if redirectStdin {
		if p.stdin, err = cmd.StdinPipe(); err != nil {
			return nil, errors.Wrap(err, "redirecting stdin")
		}
	}
	if p.stdout, err = cmd.StdoutPipe(); err != nil {
		return nil, errors.Wrap(err, "redirecting stdout")
	}
	if p.stderr, err = cmd.StderrPipe(); err != nil {
		return nil, errors.Wrap(err, "redirecting stderr")
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return p, nil
}

type execProcess struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.Reader
	stderr io.Reader
}

func (p *execProcess) Stdin() io.WriteCloser { return p.stdin }
func (p *execProcess) Stdout() io.Reader     { return p.stdout }
func (p *execProcess) Stderr() io.Reader     { return p.stderr }

func (p *execProcess) Wait() error {
	err := p.cmd.Wait()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	return err
}

func (p *execProcess) ExitCode() int {
	if p.cmd.ProcessState == nil {
		return -1
	}
	return p.cmd.ProcessState.ExitCode()
}

func (p *execProcess) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Kill()
}
