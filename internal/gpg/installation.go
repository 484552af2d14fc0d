package gpg

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	kerrors "github.com/PolarWolf314/passkeep/internal/errors"

	"github.com/cockroachdb/errors"
)

// Installation locates the gpg executables.
type Installation struct {
	Executable string
	// GpgConf is empty when gpgconf could not be found.
	GpgConf string
}

var executableNames = []string{"gpg", "gpg2"}

// FindInstallation returns the configured executable if set, otherwise the
// first of gpg or gpg2 found on PATH. gpgconf is looked up next to the
// executable first, then on PATH.
func FindInstallation(configured string) (Installation, error) {
	executable, err := findExecutable(configured)
	if err != nil {
		return Installation{}, err
	}
	return Installation{
		Executable: executable,
		GpgConf:    findGpgConf(executable),
	}, nil
}

func findExecutable(configured string) (string, error) {
	if configured != "" {
		path, err := exec.LookPath(configured)
		if err != nil {
			return "", errors.Wrapf(kerrors.ErrToolNotFound, "configured executable %s: %v", configured, err)
		}
		return path, nil
	}
	for _, name := range executableNames {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", errors.Wrapf(kerrors.ErrToolNotFound, "none of %v found on PATH", executableNames)
}

func findGpgConf(executable string) string {
	name := "gpgconf"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	sibling := filepath.Join(filepath.Dir(executable), name)
	if info, err := os.Stat(sibling); err == nil && !info.IsDir() {
		return sibling
	}
	if path, err := exec.LookPath("gpgconf"); err == nil {
		return path
	}
	return ""
}
