package workflows

import (
	"context"

	"github.com/PolarWolf314/passkeep/internal/audit"

	"github.com/cockroachdb/errors"
)

// InsertOptions configures the insert workflow.
type InsertOptions struct {
	// Path is where the password is created, relative to the store root.
	Path     string
	Secret   string
	Metadata string

	// Generate replaces Secret with a random password. Empty Metadata then
	// defaults to the configured default content.
	Generate bool
	// Length overrides the configured length of a generated password.
	Length int
}

// InsertResult contains the outcome of an insert.
type InsertResult struct {
	Path       string
	Recipients []string
	// Generated is the generated password, empty unless requested.
	Generated string
}

// Insert encrypts a new password for the recipients its directory's
// .gpg-id policy names.
//
// Returns ErrPasswordExists if a password already exists at opts.Path.
// Returns ErrRelativePathRequired if opts.Path is absolute.
// Returns ErrNoCharacterGroups if a password is generated without any
// enabled character group.
func Insert(ctx context.Context, s *Session, opts InsertOptions) (*InsertResult, error) {
	secret, metadata := opts.Secret, opts.Metadata
	var generated string
	if opts.Generate {
		generator := s.Generator
		if opts.Length > 0 {
			generator = generator.WithLength(opts.Length)
		}
		var err error
		if generated, err = generator.Generate(); err != nil {
			return nil, errors.Wrap(err, "generating password")
		}
		secret = generated
		if metadata == "" {
			metadata = s.Config.PasswordStore.Generation.DefaultContent
		}
	}

	file, err := s.Manager.Add(ctx, opts.Path, secret, metadata)
	if err != nil {
		return nil, err
	}

	recipients, err := s.Recipients.FindRecipients(file)
	if err != nil {
		s.Log.Warnf("Could not list recipients for %s: %v", file.DisplayPath(), err)
	}

	s.Audit.Log(audit.Entry{
		Operation: "insert",
		Store:     s.Manager.Root(),
		Files:     []string{file.DisplayPath()},
	})

	return &InsertResult{Path: file.DisplayPath(), Recipients: recipients, Generated: generated}, nil
}
