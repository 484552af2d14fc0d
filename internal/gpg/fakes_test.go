package gpg

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
)

// fakeProcess replays scripted output. When block is set, Wait does not
// return until Kill is called.
type fakeProcess struct {
	stdin    *recordingWriter
	stdout   io.Reader
	stderr   io.Reader
	exitCode int
	block    bool

	killOnce sync.Once
	killed   chan struct{}
}

func newFakeProcess(stdout, stderr string, exitCode int) *fakeProcess {
	return &fakeProcess{
		stdin:    &recordingWriter{},
		stdout:   strings.NewReader(stdout),
		stderr:   strings.NewReader(stderr),
		exitCode: exitCode,
		killed:   make(chan struct{}),
	}
}

func (p *fakeProcess) Stdout() io.Reader { return p.stdout }
func (p *fakeProcess) Stderr() io.Reader { return p.stderr }
func (p *fakeProcess) ExitCode() int     { return p.exitCode }

// Stdin returns a nil interface when input was not redirected, like the exec
// implementation.
func (p *fakeProcess) Stdin() io.WriteCloser {
	if p.stdin == nil {
		return nil
	}
	return p.stdin
}

func (p *fakeProcess) Wait() error {
	if p.block {
		<-p.killed
	}
	return nil
}

func (p *fakeProcess) Kill() error {
	p.killOnce.Do(func() { close(p.killed) })
	return nil
}

func (p *fakeProcess) wasKilled() bool {
	select {
	case <-p.killed:
		return true
	default:
		return false
	}
}

type recordingWriter struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	closed bool
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

func (w *recordingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

// fakeProcesses hands out a single scripted process and records how it was
// started.
type fakeProcesses struct {
	proc     *fakeProcess
	startErr error

	name          string
	args          []string
	redirectStdin bool
}

func (f *fakeProcesses) Start(_ context.Context, name string, args []string, redirectStdin bool) (Process, error) {
	f.name = name
	f.args = args
	f.redirectStdin = redirectStdin
	if f.startErr != nil {
		return nil, f.startErr
	}
	if !redirectStdin {
		f.proc.stdin = nil
	}
	return f.proc, nil
}

// fakeInvoker records the last call and returns a fixed result.
type fakeInvoker struct {
	result *Result
	err    error

	calls     []string
	lastInput *string
}

func (f *fakeInvoker) Invoke(_ context.Context, arguments string, input io.Reader) (*Result, error) {
	f.calls = append(f.calls, arguments)
	f.lastInput = nil
	if input != nil {
		data, _ := io.ReadAll(input)
		s := string(data)
		f.lastInput = &s
	}
	if f.result == nil {
		return &Result{}, f.err
	}
	return f.result, f.err
}

func (f *fakeInvoker) lastCall() string {
	if len(f.calls) == 0 {
		return ""
	}
	return f.calls[len(f.calls)-1]
}

type alwaysValid struct{}

func (alwaysValid) VerifyDecryption(*Result) error { return nil }
func (alwaysValid) VerifyEncryption(*Result) error { return nil }
func (alwaysValid) VerifySignature(*Result) error  { return nil }
