package store

import (
	"path/filepath"
	"strings"

	kerrors "github.com/PolarWolf314/passkeep/internal/errors"

	"github.com/cockroachdb/errors"
)

// EncryptedExtension is appended to every stored password file.
const EncryptedExtension = ".gpg"

// PasswordFile is an encrypted file inside a password store.
type PasswordFile struct {
	storeRoot string
	path      string
}

// NewPasswordFile returns the file at path inside storeRoot. Both paths are
// made absolute; path must lie below storeRoot.
func NewPasswordFile(storeRoot, path string) (PasswordFile, error) {
	root, err := filepath.Abs(storeRoot)
	if err != nil {
		return PasswordFile{}, errors.Wrapf(err, "resolving store root %q", storeRoot)
	}
	full, err := filepath.Abs(path)
	if err != nil {
		return PasswordFile{}, errors.Wrapf(err, "resolving %q", path)
	}
	rel, err := filepath.Rel(root, full)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return PasswordFile{}, errors.Wrapf(kerrors.ErrOutsideStore, "%s is not inside %s", full, root)
	}
	return PasswordFile{storeRoot: root, path: full}, nil
}

func (f PasswordFile) StoreRoot() string { return f.storeRoot }

// FullPath is the absolute path of the encrypted file.
func (f PasswordFile) FullPath() string { return f.path }

// Dir is the directory containing the file.
func (f PasswordFile) Dir() string { return filepath.Dir(f.path) }

// Name is the base name without the encrypted extension.
func (f PasswordFile) Name() string {
	return strings.TrimSuffix(filepath.Base(f.path), EncryptedExtension)
}

// RelativePath is the slash-separated path below the store root, including
// the extension.
func (f PasswordFile) RelativePath() string {
	rel, err := filepath.Rel(f.storeRoot, f.path)
	if err != nil {
		return filepath.ToSlash(f.path)
	}
	return filepath.ToSlash(rel)
}

// DisplayPath is RelativePath without the encrypted extension, the way users
// address passwords.
func (f PasswordFile) DisplayPath() string {
	return strings.TrimSuffix(f.RelativePath(), EncryptedExtension)
}

func (f PasswordFile) String() string { return f.DisplayPath() }

// WithContent attaches plaintext to the file.
func (f PasswordFile) WithContent(content string) DecryptedPasswordFile {
	return DecryptedPasswordFile{PasswordFile: f, Content: content}
}

// DecryptedPasswordFile holds the plaintext of a password file. It should
// be dropped as soon as the operation that needed it is done.
type DecryptedPasswordFile struct {
	PasswordFile
	Content string
}

// ParsedPasswordFile splits the plaintext into the secret on the first line
// and the metadata block after it.
type ParsedPasswordFile struct {
	DecryptedPasswordFile
	Secret   string
	Metadata string
}

// NewParsedPasswordFile composes the plaintext from a secret and optional
// metadata.
func NewParsedPasswordFile(file PasswordFile, secret, metadata string) ParsedPasswordFile {
	content := secret
	if metadata != "" {
		content += "\n" + metadata
	}
	return ParsedPasswordFile{
		DecryptedPasswordFile: file.WithContent(content),
		Secret:                secret,
		Metadata:              metadata,
	}
}

type KeyValuePair struct {
	Key   string
	Value string
}

// KeyedPasswordFile adds the key/value pairs found in the metadata block, in
// file order. Keys may repeat.
type KeyedPasswordFile struct {
	ParsedPasswordFile
	Pairs []KeyValuePair
}

// Values returns every value stored under key, in file order.
func (k KeyedPasswordFile) Values(key string) []string {
	var values []string
	for _, p := range k.Pairs {
		if p.Key == key {
			values = append(values, p.Value)
		}
	}
	return values
}

// Lookup returns the first value whose key matches key case-insensitively.
func (k KeyedPasswordFile) Lookup(key string) (string, bool) {
	for _, p := range k.Pairs {
		if strings.EqualFold(p.Key, key) {
			return p.Value, true
		}
	}
	return "", false
}
