package workflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/passkeep/internal/audit"
	kerrors "github.com/PolarWolf314/passkeep/internal/errors"
	"github.com/PolarWolf314/passkeep/internal/store"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// ReencryptCrypto is the part of the gpg facade reconciliation needs.
type ReencryptCrypto interface {
	GetRecipients(ctx context.Context, file string) ([]string, error)
	FindShortKeyID(ctx context.Context, target string) (string, bool, error)
	Decrypt(ctx context.Context, file string) (string, error)
	Encrypt(ctx context.Context, data, outputFile string, overwrite bool, recipients ...string) error
}

// ReencryptOptions configures the reencrypt workflow.
type ReencryptOptions struct {
	// Subtree limits the run to a directory relative to the store root.
	Subtree string

	// DryRun reports drift without re-encrypting anything.
	DryRun bool

	// Progress receives one message per file, then a closing message.
	// May be nil.
	Progress func(message string)

	// Continue is asked whether to go on after a file fails. A nil
	// Continue aborts on the first failure.
	Continue func(message string) bool
}

// ReencryptResult summarises a reconciliation run.
type ReencryptResult struct {
	// RunID identifies the run in the audit log.
	RunID string

	Reencrypted []string
	Skipped     []string
	Failed      []string

	// Aborted is set when the run stopped after a failure.
	Aborted bool
	DryRun  bool
}

// Reencrypt compares the recipients each password file below
// opts.Subtree is encrypted for with the recipients its .gpg-id policy
// requires, and re-encrypts the files that differ.
//
// Files are processed one at a time. A failing file is reported through
// opts.Progress and opts.Continue decides whether the run goes on. The
// plaintext of a file is only held for the duration of its re-encryption.
//
// Returns ErrStoreNotFound if the store or subtree does not exist.
func Reencrypt(ctx context.Context, s *Session, opts ReencryptOptions) (*ReencryptResult, error) {
	result, err := reconcile(ctx, s.Manager, s.GPG, s.Recipients, opts)
	if err != nil {
		return nil, err
	}

	if !result.DryRun {
		s.Audit.Log(audit.Entry{
			Operation:   "reencrypt",
			Store:       s.Manager.Root(),
			RunID:       result.RunID,
			Subtree:     opts.Subtree,
			Files:       result.Reencrypted,
			Reencrypted: len(result.Reencrypted),
			Skipped:     len(result.Skipped),
			Failed:      len(result.Failed),
			Aborted:     result.Aborted,
		})
	}
	return result, nil
}

type reconciler struct {
	manager    *store.Manager
	crypto     ReencryptCrypto
	recipients store.RecipientResolver
	progress   func(string)

	// shortIDs caches policy identifier lookups for the run.
	shortIDs map[string]string
}

func reconcile(ctx context.Context, manager *store.Manager, crypto ReencryptCrypto, recipients store.RecipientResolver, opts ReencryptOptions) (*ReencryptResult, error) {
	files, err := manager.PasswordFilesIn(opts.Subtree)
	if err != nil {
		return nil, err
	}

	r := &reconciler{
		manager:    manager,
		crypto:     crypto,
		recipients: recipients,
		progress:   opts.Progress,
		shortIDs:   make(map[string]string),
	}
	if r.progress == nil {
		r.progress = func(string) {}
	}

	result := &ReencryptResult{RunID: uuid.NewString(), DryRun: opts.DryRun}

	for _, file := range files {
		changed, err := r.reconcileFile(ctx, file, opts.DryRun)
		if err == nil {
			if changed {
				result.Reencrypted = append(result.Reencrypted, file.DisplayPath())
			} else {
				result.Skipped = append(result.Skipped, file.DisplayPath())
			}
			continue
		}

		result.Failed = append(result.Failed, file.DisplayPath())
		message := fmt.Sprintf("Failed to re-encrypt %s. An error occurred.\n\n%v", file.RelativePath(), err)
		r.progress(message)
		if ctx.Err() != nil || opts.Continue == nil || !opts.Continue(message+"\n\nDo you want to continue?") {
			r.progress("Re-encryption aborted.")
			result.Aborted = true
			return result, nil
		}
	}

	r.progress("Re-encryption finished.")
	return result, nil
}

// reconcileFile re-encrypts file if its recipients have drifted and reports
// whether it did (or, in a dry run, would have).
func (r *reconciler) reconcileFile(ctx context.Context, file store.PasswordFile, dryRun bool) (bool, error) {
	existing, err := r.crypto.GetRecipients(ctx, file.FullPath())
	if err != nil {
		return false, errors.Wrap(err, "reading current recipients")
	}

	required, err := r.requiredRecipients(ctx, file)
	if err != nil {
		return false, err
	}

	removed := difference(existing, required)
	added := difference(required, existing)
	if len(removed) == 0 && len(added) == 0 {
		r.progress(fmt.Sprintf("Skipped %s (file already encrypted to required recipients)", file.RelativePath()))
		return false, nil
	}
	if len(required) == 0 {
		return false, errors.Wrap(kerrors.ErrNoRecipients, "none of the required recipients resolve to an encryption key")
	}

	if !dryRun {
		content, err := r.crypto.Decrypt(ctx, file.FullPath())
		if err != nil {
			return false, err
		}
		err = r.crypto.Encrypt(ctx, content, file.FullPath(), true, required...)
		if err != nil {
			return false, err
		}
	}

	verb := "Re-encrypted"
	if dryRun {
		verb = "Would re-encrypt"
	}
	r.progress(fmt.Sprintf("%s %s (removed: [%s], added: [%s])", verb, file.RelativePath(), strings.Join(removed, ", "), strings.Join(added, ", ")))
	return true, nil
}

// requiredRecipients maps the policy identifiers for file to short key ids,
// dropping identifiers without an encryption key.
func (r *reconciler) requiredRecipients(ctx context.Context, file store.PasswordFile) ([]string, error) {
	identifiers, err := r.recipients.FindRecipients(file)
	if err != nil {
		return nil, errors.Wrap(err, "resolving required recipients")
	}

	var ids []string
	seen := make(map[string]bool)
	for _, identifier := range identifiers {
		id, ok := r.shortIDs[identifier]
		if !ok {
			var found bool
			id, found, err = r.crypto.FindShortKeyID(ctx, identifier)
			if err != nil {
				return nil, errors.Wrapf(err, "looking up key for %s", identifier)
			}
			if !found {
				id = ""
			}
			r.shortIDs[identifier] = id
		}
		if id == "" || seen[strings.ToUpper(id)] {
			continue
		}
		seen[strings.ToUpper(id)] = true
		ids = append(ids, id)
	}
	return ids, nil
}

// difference returns the ids in a that are not in b, comparing key ids
// case-insensitively.
func difference(a, b []string) []string {
	in := make(map[string]bool, len(b))
	for _, id := range b {
		in[strings.ToUpper(id)] = true
	}
	var out []string
	for _, id := range a {
		if !in[strings.ToUpper(id)] {
			out = append(out, id)
			in[strings.ToUpper(id)] = true
		}
	}
	return out
}
