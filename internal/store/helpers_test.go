package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// #nosec G306 -- test fixtures
func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil { // #nosec G306
		t.Fatalf("Failed to create test file: %v", err)
	}
}

func mustPasswordFile(t *testing.T, root, relative string) PasswordFile {
	t.Helper()
	file, err := NewPasswordFile(root, filepath.Join(root, filepath.FromSlash(relative)))
	if err != nil {
		t.Fatalf("Failed to create password file: %v", err)
	}
	return file
}

type encryptCall struct {
	data       string
	output     string
	overwrite  bool
	recipients []string
}

// fakeCrypto stores "ciphertext" as the plaintext itself.
type fakeCrypto struct {
	encrypts []encryptCall
	err      error
}

func (f *fakeCrypto) Decrypt(_ context.Context, file string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	data, err := os.ReadFile(file) // #nosec G304
	return string(data), err
}

func (f *fakeCrypto) Encrypt(_ context.Context, data, outputFile string, overwrite bool, recipients ...string) error {
	f.encrypts = append(f.encrypts, encryptCall{data, outputFile, overwrite, recipients})
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(outputFile, []byte(data), 0600)
}

type staticRecipients []string

func (s staticRecipients) FindRecipients(PasswordFile) ([]string, error) { return s, nil }
