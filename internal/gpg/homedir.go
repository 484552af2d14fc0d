package gpg

import (
	"bufio"
	"context"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/passkeep/internal/errors"
	logger "github.com/PolarWolf314/passkeep/internal/logging"

	"github.com/cockroachdb/errors"
)

// HomeDirectory is the directory gpg keeps its keyring in. Only an override
// is passed to gpg explicitly.
type HomeDirectory struct {
	Path       string
	IsOverride bool
}

const homeDirKey = "homedir:"

// ResolveHomeDir returns the override if one is configured, otherwise asks
// gpgconf for the directory gpg uses by default.
func ResolveHomeDir(ctx context.Context, override string, installation Installation, processes Processes, log logger.Logger) (HomeDirectory, error) {
	if override != "" {
		log.Debugf("Using override for gpg home directory: %q", override)
		return HomeDirectory{Path: override, IsOverride: true}, nil
	}
	if installation.GpgConf == "" {
		return HomeDirectory{}, errors.Wrap(kerrors.ErrHomeDirNotFound, "gpgconf not found")
	}
	if processes == nil {
		processes = ExecProcesses{}
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	proc, err := processes.Start(ctx, installation.GpgConf, []string{"--list-dirs"}, false)
	if err != nil {
		return HomeDirectory{}, &ProcessStartError{Executable: installation.GpgConf, Err: err}
	}

	var path string
	found := false
	scanner := bufio.NewScanner(proc.Stdout())
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if len(line) >= len(homeDirKey) && strings.EqualFold(line[:len(homeDirKey)], homeDirKey) && !found {
			path = UnescapePercent(line[len(homeDirKey):])
			found = true
		}
	}
	if err := scanner.Err(); err != nil {
		_ = proc.Kill()
		return HomeDirectory{}, errors.Wrap(err, "reading gpgconf output")
	}

	done := make(chan error, 1)
	go func() { done <- proc.Wait() }()
	select {
	case err := <-done:
		if err != nil {
			return HomeDirectory{}, errors.Wrap(err, "waiting for gpgconf")
		}
	case <-time.After(DefaultTimeout):
		_ = proc.Kill()
		return HomeDirectory{}, &ProcessTimeoutError{Arguments: "--list-dirs", Timeout: DefaultTimeout}
	}

	if !found {
		return HomeDirectory{}, errors.Wrap(kerrors.ErrHomeDirNotFound, "no homedir entry in gpgconf --list-dirs output")
	}
	log.Debugf("Detected gpg home directory: %q", path)
	return HomeDirectory{Path: path}, nil
}
