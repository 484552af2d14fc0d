// Package workflows provides high-level orchestration for passkeep commands.
//
// Workflows coordinate the configs, gpg, store and audit packages to
// implement complete user-facing features. Each workflow handles a single
// command's business logic, independent of CLI concerns like flag parsing,
// spinners, prompts and output formatting.
//
// # Sessions
//
// Open loads the configuration, locates gpg and its home directory and
// wires a store.Manager to the gpg facade. Every workflow takes the
// resulting *Session:
//
//	s, err := workflows.Open(ctx, workflows.SessionOptions{Log: log})
//	result, err := workflows.Show(ctx, s, workflows.ShowOptions{Path: "mail/alice"})
//
// # Available Workflows
//
//   - Show: Decrypts a password and returns all of it, the secret, a key or the username
//   - Insert: Encrypts a new password for its directory's recipients
//   - List: Lists the passwords in the store or a subtree
//   - Recipients: Compares a password's recipients with its policy
//   - Reencrypt: Re-encrypts every password whose recipients drifted from policy
//   - StartAgent and Version: Thin wrappers over the gpg facade
//
// # Error Handling
//
// Workflows return errors matching the sentinels in internal/errors, so
// the CLI layer can choose user-facing messages with errors.Is:
//
//	if errors.Is(err, kerrors.ErrPasswordNotFound) {
//	    // Suggest `passkeep list`
//	}
package workflows
