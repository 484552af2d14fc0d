package workflows

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/PolarWolf314/passkeep/internal/configs"
	kerrors "github.com/PolarWolf314/passkeep/internal/errors"
)

func TestEdit_ReencryptsWholeFileForPolicy(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, ".gpg-id"), "alice@example.com\nbob@example.com\n")
	writeTestPassword(t, root, "web/site.gpg", []string{aliceID}, "old\nUsername: alice")
	s := newTestSession(t, root, testKeyring(), configs.EnvironmentVariables{})

	var seen string
	result, err := Edit(context.Background(), s, EditOptions{
		Path: "web/site",
		Edit: func(current string) (string, error) {
			seen = current
			return "new\nUsername: alice\nURL: https://example.com", nil
		},
	})
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if seen != "old\nUsername: alice" {
		t.Errorf("Expected the whole plaintext to be edited, got %q", seen)
	}
	if !result.Changed || result.Path != "web/site" {
		t.Errorf("Unexpected result %+v", result)
	}

	ids, plaintext, err := readCiphertext(filepath.Join(root, "web", "site.gpg"))
	if err != nil {
		t.Fatalf("Failed to read password: %v", err)
	}
	if !reflect.DeepEqual(ids, []string{aliceID, bobID}) {
		t.Errorf("Expected the policy recipients, got %q", ids)
	}
	if plaintext != "new\nUsername: alice\nURL: https://example.com" {
		t.Errorf("Unexpected plaintext %q", plaintext)
	}

	entries, _ := s.Audit.ReadEntries()
	if len(entries) != 1 || entries[0].Operation != "edit" {
		t.Errorf("Unexpected audit entries %+v", entries)
	}
}

func TestEdit_UnchangedContentIsNotWritten(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, ".gpg-id"), "alice@example.com\n")
	writeTestPassword(t, root, "site.gpg", []string{aliceID}, "pw")
	keyring := testKeyring()
	s := newTestSession(t, root, keyring, configs.EnvironmentVariables{})

	result, err := Edit(context.Background(), s, EditOptions{
		Path: "site",
		Edit: func(current string) (string, error) { return current, nil },
	})
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if result.Changed || keyring.encrypts != 0 {
		t.Errorf("Expected no re-encryption, got %+v and %d encryptions", result, keyring.encrypts)
	}
}

func TestEdit_Errors(t *testing.T) {
	root := t.TempDir()
	writeTestPassword(t, root, "site.gpg", []string{aliceID}, "pw")
	keyring := testKeyring()
	s := newTestSession(t, root, keyring, configs.EnvironmentVariables{})

	_, err := Edit(context.Background(), s, EditOptions{Path: "missing", Edit: func(c string) (string, error) { return c, nil }})
	if !errors.Is(err, kerrors.ErrPasswordNotFound) {
		t.Errorf("Expected ErrPasswordNotFound, got %v", err)
	}

	editorFailed := errors.New("editor exited with status 1")
	_, err = Edit(context.Background(), s, EditOptions{Path: "site", Edit: func(string) (string, error) { return "", editorFailed }})
	if !errors.Is(err, editorFailed) {
		t.Errorf("Expected the editor error, got %v", err)
	}
	if keyring.encrypts != 0 {
		t.Errorf("Expected nothing to be encrypted, got %d", keyring.encrypts)
	}
}
