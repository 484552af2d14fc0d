// Package errors provides typed error values for passkeep.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. Packages
// that need to carry extra detail (the gpg transport, the password file
// parser) define their own error types which match one of these sentinels.
//
// # Error Categories
//
//   - Process errors: the crypto tool could not be run (ErrProcessStart, ErrProcessTimeout)
//   - Crypto errors: the crypto tool reported a failure (ErrCryptoTool, ErrNoSecretKeys)
//   - Store errors: password store state issues (ErrPasswordNotFound, ErrPasswordExists)
//   - Configuration errors: invalid settings (ErrInvalidConfig, ErrPasswordParse)
//
// # Usage
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Show(ctx, opts)
//	if errors.Is(err, kerrors.ErrPasswordNotFound) {
//	    // Show user-friendly message
//	}
//
// An empty recipient list is not an error: a store without any policy file
// simply yields no recipients.
package errors
