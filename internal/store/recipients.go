package store

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/passkeep/internal/configs"

	"github.com/cockroachdb/errors"
)

// GpgIDFileName is the policy file listing the recipients for its directory
// and everything below it.
const GpgIDFileName = ".gpg-id"

// RecipientFinder resolves the recipients a password file should be
// encrypted for.
type RecipientFinder struct {
	storeRoot string
	env       configs.EnvironmentVariables
}

// NewRecipientFinder returns a finder for the store at storeRoot. A relative
// root is resolved against the working directory.
func NewRecipientFinder(storeRoot string, env configs.EnvironmentVariables) *RecipientFinder {
	if abs, err := filepath.Abs(storeRoot); err == nil {
		storeRoot = abs
	}
	return &RecipientFinder{storeRoot: filepath.Clean(storeRoot), env: env}
}

// FindRecipients returns PASSWORD_STORE_KEY split on whitespace when it is
// set. Otherwise it walks up from the file's directory to the store root and
// returns the lines of the nearest .gpg-id file. No policy file yields an
// empty list, not an error.
func (r *RecipientFinder) FindRecipients(file PasswordFile) ([]string, error) {
	if strings.TrimSpace(r.env.PasswordStoreKey) != "" {
		return strings.Fields(r.env.PasswordStoreKey), nil
	}

	current := file.Dir()
	for {
		policy := filepath.Join(current, GpgIDFileName)
		info, err := os.Stat(policy)
		if err == nil && !info.IsDir() {
			return readPolicyFile(policy)
		}

		parent := filepath.Dir(current)
		if current == r.storeRoot || current == file.StoreRoot() || parent == current {
			return []string{}, nil
		}
		current = parent
	}
}

func readPolicyFile(path string) ([]string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is a .gpg-id file inside the store
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	recipients := []string{}
	for _, line := range lineBreak.Split(string(data), -1) {
		if line = strings.TrimSpace(line); line != "" {
			recipients = append(recipients, line)
		}
	}
	return recipients, nil
}
