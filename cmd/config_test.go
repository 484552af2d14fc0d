package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	kerrors "github.com/PolarWolf314/passkeep/internal/errors"

	"github.com/cockroachdb/errors"
)

func TestConfigInitWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	stdout, _, err := runCommand(t, "config", "init", "--config", path)
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(stdout, "Configuration written to") {
		t.Errorf("unexpected output: %q", stdout)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file was not written: %v", err)
	}
	for _, want := range []string{"[password_store]", `file_match = "**/*.gpg"`, `timeout = "5s"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("config file does not contain %q:\n%s", want, data)
		}
	}
}

func TestConfigInitKeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	existing := "[password_store]\nlocation = \"/srv/pass\"\n"
	if err := os.WriteFile(path, []byte(existing), 0600); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runCommand(t, "config", "init", "--config", path)
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(stdout, "already exists") {
		t.Errorf("expected a warning about the existing file, got %q", stdout)
	}
	data, _ := os.ReadFile(path)
	if string(data) != existing {
		t.Errorf("existing config was modified:\n%s", data)
	}

	if _, _, err := runCommand(t, "config", "init", "--config", path, "--force"); err != nil {
		t.Fatalf("config init --force failed: %v", err)
	}
	data, _ = os.ReadFile(path)
	if strings.Contains(string(data), "/srv/pass") {
		t.Errorf("--force did not overwrite the config:\n%s", data)
	}
}

func TestConfigShow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	store := filepath.Join(dir, "store")
	content := "[password_store]\nlocation = \"" + filepath.ToSlash(store) + "\"\nfirst_line_only = false\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PASSWORD_STORE_DIR", "")

	stdout, _, err := runCommand(t, "config", "show", "--config", path)
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	for _, want := range []string{"# " + path, "first_line_only = false", `file_match = "**/*.gpg"`, "# password store: " + store} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output does not contain %q:\n%s", want, stdout)
		}
	}
}

func TestConfigShowInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[gpg]\ntimeout = \"-1s\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	_, stderr, err := runCommand(t, "config", "show", "--config", path)
	if !errors.Is(err, kerrors.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if !strings.Contains(stderr, "passkeep config show") {
		t.Errorf("expected a hint in stderr, got %q", stderr)
	}
}
