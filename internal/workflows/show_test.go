package workflows

import (
	"context"
	"errors"
	"testing"

	"github.com/PolarWolf314/passkeep/internal/configs"
	kerrors "github.com/PolarWolf314/passkeep/internal/errors"
)

func TestShow(t *testing.T) {
	root := t.TempDir()
	content := "hunter2\r\nUsername: alice\r\nURL: https://example.com"
	writeTestPassword(t, root, "web/site.gpg", []string{aliceID}, content)
	s := newTestSession(t, root, testKeyring(), configs.EnvironmentVariables{})

	tests := []struct {
		name string
		opts ShowOptions
		want string
	}{
		{"all", ShowOptions{Path: "web/site", Field: ShowAll}, content},
		{"password", ShowOptions{Path: "web/site.gpg", Field: ShowPassword}, "hunter2"},
		{"key is case-insensitive", ShowOptions{Path: "web/site", Field: ShowKey, Key: "url"}, "https://example.com"},
		{"username", ShowOptions{Path: "web/site", Field: ShowUsername}, "alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Show(context.Background(), s, tt.opts)
			if err != nil {
				t.Fatalf("Show failed: %v", err)
			}
			if result.Value != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, result.Value)
			}
		})
	}
}

func TestShow_PasswordWithoutFirstLineOnly(t *testing.T) {
	root := t.TempDir()
	writeTestPassword(t, root, "site.gpg", []string{aliceID}, "line1\nline2")
	s := newTestSession(t, root, testKeyring(), configs.EnvironmentVariables{})
	s.Config.PasswordStore.FirstLineOnly = false

	result, err := Show(context.Background(), s, ShowOptions{Path: "site", Field: ShowPassword})
	if err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	if result.Value != "line1\nline2" {
		t.Errorf("Expected the whole file, got %q", result.Value)
	}
}

func TestShow_Errors(t *testing.T) {
	root := t.TempDir()
	writeTestPassword(t, root, "site.gpg", []string{aliceID}, "pw")
	keyring := testKeyring()
	s := newTestSession(t, root, keyring, configs.EnvironmentVariables{})

	if _, err := Show(context.Background(), s, ShowOptions{Path: "missing"}); !errors.Is(err, kerrors.ErrPasswordNotFound) {
		t.Errorf("Expected ErrPasswordNotFound, got %v", err)
	}
	if _, err := Show(context.Background(), s, ShowOptions{Path: "site", Field: ShowKey, Key: "nope"}); !errors.Is(err, kerrors.ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound, got %v", err)
	}
	if _, err := Show(context.Background(), s, ShowOptions{Path: "site", Field: ShowUsername}); !errors.Is(err, kerrors.ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound for username, got %v", err)
	}

	keyring.failDecrypt[s.Manager.Root()+"/site.gpg"] = true
	if _, err := Show(context.Background(), s, ShowOptions{Path: "site"}); !errors.Is(err, kerrors.ErrCryptoTool) {
		t.Errorf("Expected ErrCryptoTool, got %v", err)
	}
}
