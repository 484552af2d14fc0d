package store

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	kerrors "github.com/PolarWolf314/passkeep/internal/errors"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
)

// CryptoService encrypts and decrypts password files.
type CryptoService interface {
	Decrypt(ctx context.Context, file string) (string, error)
	Encrypt(ctx context.Context, data, outputFile string, overwrite bool, recipients ...string) error
}

// RecipientResolver returns the recipients a file should be encrypted for.
type RecipientResolver interface {
	FindRecipients(file PasswordFile) ([]string, error)
}

// Manager reads and writes the passwords in one store.
type Manager struct {
	root       string
	crypto     CryptoService
	recipients RecipientResolver
	parser     *Parser
	fileMatch  string
}

// NewManager returns a Manager for the store at root. fileMatch is a
// doublestar pattern, relative to root, selecting the password files.
func NewManager(root string, crypto CryptoService, recipients RecipientResolver, parser *Parser, fileMatch string) *Manager {
	return &Manager{
		root:       filepath.Clean(root),
		crypto:     crypto,
		recipients: recipients,
		parser:     parser,
		fileMatch:  fileMatch,
	}
}

func (m *Manager) Root() string { return m.root }

func (m *Manager) Parser() *Parser { return m.parser }

// PasswordFiles returns every file in the store matching the file pattern,
// sorted by path.
func (m *Manager) PasswordFiles() ([]PasswordFile, error) {
	return m.PasswordFilesIn("")
}

// PasswordFilesIn returns the password files below dir, a path relative to
// the store root. An empty dir means the whole store.
func (m *Manager) PasswordFilesIn(dir string) ([]PasswordFile, error) {
	info, err := os.Stat(m.root)
	if err != nil || !info.IsDir() {
		return nil, errors.Wrapf(kerrors.ErrStoreNotFound, "%s", m.root)
	}

	prefix, err := m.subtree(dir)
	if err != nil {
		return nil, err
	}

	matches, err := doublestar.Glob(os.DirFS(m.root), m.fileMatch, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Wrapf(err, "matching %q in %s", m.fileMatch, m.root)
	}
	sort.Strings(matches)

	var files []PasswordFile
	for _, match := range matches {
		if prefix != "" && !strings.HasPrefix(match, prefix+"/") {
			continue
		}
		file, err := NewPasswordFile(m.root, filepath.Join(m.root, filepath.FromSlash(match)))
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

// subtree validates dir and returns it as a clean slash path, "" for the root.
func (m *Manager) subtree(dir string) (string, error) {
	if dir == "" {
		return "", nil
	}
	if filepath.IsAbs(dir) {
		return "", errors.Wrapf(kerrors.ErrRelativePathRequired, "%s", dir)
	}
	clean := path.Clean(filepath.ToSlash(dir))
	if clean == "." {
		return "", nil
	}
	if !fs.ValidPath(clean) {
		return "", errors.Wrapf(kerrors.ErrOutsideStore, "%s", dir)
	}
	info, err := os.Stat(filepath.Join(m.root, filepath.FromSlash(clean)))
	if err != nil || !info.IsDir() {
		return "", errors.Wrapf(kerrors.ErrStoreNotFound, "no directory %s in the store", dir)
	}
	return clean, nil
}

// Query looks up the password at relative, appending the encrypted
// extension if it is missing. The boolean is false when no such file exists.
func (m *Manager) Query(relative string) (PasswordFile, bool, error) {
	file, err := m.fileFromPath(relative)
	if err != nil {
		return PasswordFile{}, false, err
	}
	info, err := os.Stat(file.FullPath())
	if err != nil || info.IsDir() {
		return PasswordFile{}, false, nil
	}
	return file, true, nil
}

// Decrypt decrypts and parses file. When firstLineOnly is false the whole
// plaintext is treated as the secret.
func (m *Manager) Decrypt(ctx context.Context, file PasswordFile, firstLineOnly bool) (KeyedPasswordFile, error) {
	if _, err := os.Stat(file.FullPath()); err != nil {
		return KeyedPasswordFile{}, errors.Wrapf(kerrors.ErrPasswordNotFound, "%s", file.FullPath())
	}
	content, err := m.crypto.Decrypt(ctx, file.FullPath())
	if err != nil {
		return KeyedPasswordFile{}, errors.Wrapf(err, "decrypting %s", file.DisplayPath())
	}
	return m.parser.Parse(file, content, !firstLineOnly), nil
}

// Encrypt writes file's content, replacing any existing ciphertext. Missing
// directories are created.
func (m *Manager) Encrypt(ctx context.Context, file DecryptedPasswordFile) (PasswordFile, error) {
	return m.encrypt(ctx, file, true)
}

// Add creates a new password at relative. It refuses to replace an existing
// file.
func (m *Manager) Add(ctx context.Context, relative, secret, metadata string) (PasswordFile, error) {
	file, err := m.fileFromPath(relative)
	if err != nil {
		return PasswordFile{}, err
	}
	parsed := NewParsedPasswordFile(file, secret, metadata)
	return m.encrypt(ctx, parsed.DecryptedPasswordFile, false)
}

func (m *Manager) encrypt(ctx context.Context, file DecryptedPasswordFile, overwrite bool) (PasswordFile, error) {
	if err := os.MkdirAll(file.Dir(), 0o700); err != nil {
		return PasswordFile{}, errors.Wrapf(err, "creating %s", file.Dir())
	}
	if !overwrite {
		if _, err := os.Stat(file.FullPath()); err == nil {
			return PasswordFile{}, errors.Wrapf(kerrors.ErrPasswordExists, "%s", file.DisplayPath())
		}
	}
	recipients, err := m.recipients.FindRecipients(file.PasswordFile)
	if err != nil {
		return PasswordFile{}, errors.Wrapf(err, "finding recipients for %s", file.DisplayPath())
	}
	if err := m.crypto.Encrypt(ctx, file.Content, file.FullPath(), overwrite, recipients...); err != nil {
		return PasswordFile{}, errors.Wrapf(err, "encrypting %s", file.DisplayPath())
	}
	return file.PasswordFile, nil
}

func (m *Manager) fileFromPath(relative string) (PasswordFile, error) {
	if filepath.IsAbs(relative) || strings.HasPrefix(relative, "/") {
		return PasswordFile{}, errors.Wrapf(kerrors.ErrRelativePathRequired, "%s", relative)
	}
	if !strings.HasSuffix(relative, EncryptedExtension) {
		relative += EncryptedExtension
	}
	return NewPasswordFile(m.root, filepath.Join(m.root, filepath.FromSlash(relative)))
}
