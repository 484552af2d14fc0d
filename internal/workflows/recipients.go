package workflows

import (
	"context"

	kerrors "github.com/PolarWolf314/passkeep/internal/errors"

	"github.com/cockroachdb/errors"
)

// RecipientsResult compares the recipients a password is encrypted for with
// those its policy requires.
type RecipientsResult struct {
	Path string

	// Embedded are the key ids the ciphertext is encrypted for.
	Embedded []string
	// Policy are the identifiers from .gpg-id or PASSWORD_STORE_KEY.
	Policy []string
	// Required are the Policy identifiers resolved to short key ids.
	Required []string
	// Unresolved are Policy identifiers without an encryption key.
	Unresolved []string

	Added   []string
	Removed []string
}

// InSync reports whether no re-encryption is needed.
func (r *RecipientsResult) InSync() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0
}

// Recipients inspects the recipients of a single password without
// decrypting it.
//
// Returns ErrPasswordNotFound if no password exists at path.
func Recipients(ctx context.Context, s *Session, path string) (*RecipientsResult, error) {
	file, found, err := s.Manager.Query(path)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.Wrapf(kerrors.ErrPasswordNotFound, "%s", path)
	}

	embedded, err := s.GPG.GetRecipients(ctx, file.FullPath())
	if err != nil {
		return nil, err
	}
	policy, err := s.Recipients.FindRecipients(file)
	if err != nil {
		return nil, err
	}

	result := &RecipientsResult{Path: file.DisplayPath(), Embedded: embedded, Policy: policy}
	for _, identifier := range policy {
		id, ok, err := s.GPG.FindShortKeyID(ctx, identifier)
		if err != nil {
			return nil, err
		}
		if !ok {
			result.Unresolved = append(result.Unresolved, identifier)
			continue
		}
		result.Required = append(result.Required, id)
	}
	result.Added = difference(result.Required, embedded)
	result.Removed = difference(embedded, result.Required)
	return result, nil
}
