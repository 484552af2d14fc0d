package workflows

import (
	"context"

	"github.com/PolarWolf314/passkeep/internal/audit"
	kerrors "github.com/PolarWolf314/passkeep/internal/errors"

	"github.com/cockroachdb/errors"
)

// EditOptions configures the edit workflow.
type EditOptions struct {
	Path string

	// Edit receives the current plaintext and returns the new one. The
	// plaintext must not be written anywhere it outlives the call.
	Edit func(current string) (string, error)
}

// EditResult contains the outcome of an edit.
type EditResult struct {
	Path string
	// Changed is false when the new content equals the old one and nothing
	// was written.
	Changed bool
}

// Edit decrypts a whole password file, passes it to opts.Edit and encrypts
// the result in place for the recipients of the file's .gpg-id policy.
//
// Returns ErrPasswordNotFound if no password exists at opts.Path.
func Edit(ctx context.Context, s *Session, opts EditOptions) (*EditResult, error) {
	if opts.Edit == nil {
		return nil, errors.New("no editor given")
	}

	file, found, err := s.Manager.Query(opts.Path)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.Wrapf(kerrors.ErrPasswordNotFound, "%s", opts.Path)
	}

	current, err := s.Manager.Decrypt(ctx, file, false)
	if err != nil {
		return nil, err
	}

	updated, err := opts.Edit(current.Content)
	if err != nil {
		return nil, errors.Wrapf(err, "editing %s", file.DisplayPath())
	}
	if updated == current.Content {
		s.Log.Infof("%s is unchanged", file.DisplayPath())
		return &EditResult{Path: file.DisplayPath()}, nil
	}

	if _, err := s.Manager.Encrypt(ctx, file.WithContent(updated)); err != nil {
		return nil, err
	}

	s.Audit.Log(audit.Entry{
		Operation: "edit",
		Store:     s.Manager.Root(),
		Files:     []string{file.DisplayPath()},
	})
	return &EditResult{Path: file.DisplayPath(), Changed: true}, nil
}
