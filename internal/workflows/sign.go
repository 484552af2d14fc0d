package workflows

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/PolarWolf314/passkeep/internal/audit"
	kerrors "github.com/PolarWolf314/passkeep/internal/errors"
	"github.com/PolarWolf314/passkeep/internal/store"

	"github.com/cockroachdb/errors"
)

// SignatureExtension is appended to a .gpg-id file to name its detached
// signature.
const SignatureExtension = ".sig"

// SignPolicyOptions configures the sign-policy workflow.
type SignPolicyOptions struct {
	// Dir is the directory of the .gpg-id file, relative to the store root.
	// Empty means the root.
	Dir string
	// KeyID signs the file. Empty means the first key of
	// PASSWORD_STORE_SIGNING_KEY.
	KeyID string
}

// SignPolicyResult contains the outcome of signing a .gpg-id file.
type SignPolicyResult struct {
	PolicyPath    string
	SignaturePath string
	KeyID         string
}

// SignPolicy writes a detached, armored signature of a .gpg-id file next to
// it, so that tampering with the recipient list can be detected.
//
// Returns ErrOutsideStore if opts.Dir leaves the store.
// Returns ErrKeyNotFound if no .gpg-id file exists in opts.Dir or no signing
// key is given.
func SignPolicy(ctx context.Context, s *Session, opts SignPolicyOptions) (*SignPolicyResult, error) {
	keyID := opts.KeyID
	if keyID == "" {
		if keys := strings.Fields(s.Env.PasswordStoreSigningKey); len(keys) > 0 {
			keyID = keys[0]
		}
	}
	if keyID == "" {
		return nil, errors.Wrap(kerrors.ErrKeyNotFound, "no signing key given and PASSWORD_STORE_SIGNING_KEY is not set")
	}

	dir := path.Clean(filepath.ToSlash(opts.Dir))
	if filepath.IsAbs(opts.Dir) || !fs.ValidPath(dir) {
		return nil, errors.Wrapf(kerrors.ErrOutsideStore, "%s", opts.Dir)
	}
	policyPath := filepath.Join(s.Manager.Root(), filepath.FromSlash(dir), store.GpgIDFileName)

	policy, err := os.ReadFile(policyPath) // #nosec G304 -- .gpg-id inside the store
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(kerrors.ErrKeyNotFound, "no %s in %s", store.GpgIDFileName, opts.Dir)
		}
		return nil, errors.Wrapf(err, "reading %s", policyPath)
	}

	lines, err := s.GPG.Sign(ctx, string(policy), keyID)
	if err != nil {
		return nil, err
	}

	signaturePath := policyPath + SignatureExtension
	signature := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(signaturePath, []byte(signature), 0o600); err != nil {
		return nil, errors.Wrapf(err, "writing %s", signaturePath)
	}

	s.Audit.Log(audit.Entry{
		Operation: "sign-policy",
		Store:     s.Manager.Root(),
		Files:     []string{path.Join(dir, store.GpgIDFileName)},
	})
	return &SignPolicyResult{PolicyPath: policyPath, SignaturePath: signaturePath, KeyID: keyID}, nil
}
