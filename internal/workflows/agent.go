package workflows

import "context"

// StartAgent makes gpg start its agent so the first decryption does not
// have to wait for it.
//
// Returns ErrNoSecretKeys if the keyring has no secret keys.
func StartAgent(ctx context.Context, s *Session) error {
	return s.GPG.StartAgent(ctx)
}

// Version returns the first line of gpg's version output.
func Version(ctx context.Context, s *Session) (string, error) {
	return s.GPG.GetVersion(ctx)
}
