package workflows

import (
	"context"

	kerrors "github.com/PolarWolf314/passkeep/internal/errors"
	"github.com/PolarWolf314/passkeep/internal/store"

	"github.com/cockroachdb/errors"
)

// ShowField selects what part of a password file Show returns.
type ShowField int

const (
	// ShowAll returns the whole plaintext, metadata included.
	ShowAll ShowField = iota
	ShowPassword
	// ShowKey returns the first value of ShowOptions.Key.
	ShowKey
	ShowUsername
)

// ShowOptions configures the show workflow.
type ShowOptions struct {
	// Path is the password's location relative to the store root. The .gpg
	// extension is optional.
	Path  string
	Field ShowField
	Key   string
}

// ShowResult contains the requested value. It is plaintext and must not be
// logged or kept.
type ShowResult struct {
	File  store.PasswordFile
	Value string
}

// Show decrypts a password and returns the requested part of it.
//
// Returns ErrPasswordNotFound if no password exists at opts.Path.
// Returns ErrKeyNotFound if the key or username is not present.
// Returns ErrCryptoTool if gpg fails to decrypt the file.
func Show(ctx context.Context, s *Session, opts ShowOptions) (*ShowResult, error) {
	file, found, err := s.Manager.Query(opts.Path)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.Wrapf(kerrors.ErrPasswordNotFound, "%s", opts.Path)
	}
	s.Log.Debugf("Decrypting %s", file.FullPath())

	// Only the password field honours first_line_only; the other fields
	// need the metadata split off.
	firstLineOnly := true
	switch opts.Field {
	case ShowAll:
		firstLineOnly = false
	case ShowPassword:
		firstLineOnly = s.Config.PasswordStore.FirstLineOnly
	}

	keyed, err := s.Manager.Decrypt(ctx, file, firstLineOnly)
	if err != nil {
		return nil, err
	}

	result := &ShowResult{File: file}
	switch opts.Field {
	case ShowAll:
		result.Value = keyed.Content
	case ShowPassword:
		result.Value = keyed.Secret
	case ShowKey:
		value, ok := keyed.Lookup(opts.Key)
		if !ok {
			return nil, errors.Wrapf(kerrors.ErrKeyNotFound, "%q in %s", opts.Key, file.DisplayPath())
		}
		result.Value = value
	case ShowUsername:
		value, ok := s.Manager.Parser().GetUsername(keyed)
		if !ok {
			return nil, errors.Wrapf(kerrors.ErrKeyNotFound, "no username in %s", file.DisplayPath())
		}
		result.Value = value
	default:
		return nil, errors.Newf("unknown field %d", opts.Field)
	}
	return result, nil
}
