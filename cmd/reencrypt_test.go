package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	kerrors "github.com/PolarWolf314/passkeep/internal/errors"
	"github.com/PolarWolf314/passkeep/internal/store"
	"github.com/PolarWolf314/passkeep/internal/ui"
	"github.com/PolarWolf314/passkeep/internal/utils"
	"github.com/PolarWolf314/passkeep/internal/workflows"

	"github.com/cockroachdb/errors"
)

// emptySession returns a session on root that never needs gpg.
func emptySession(root string) *workflows.Session {
	return &workflows.Session{
		Manager: store.NewManager(root, nil, nil, store.NewParser(store.UsernameDetector{}), "**/*.gpg"),
	}
}

func TestRunReencrypt_EmptyStore(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var out bytes.Buffer
	prompter := &utils.Prompter{In: strings.NewReader(""), Out: &bytes.Buffer{}}
	result, err := runReencrypt(context.Background(), emptySession(t.TempDir()), workflows.ReencryptOptions{}, ui.NewProgressPrinter(&out), prompter)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Aborted || len(result.Reencrypted)+len(result.Skipped)+len(result.Failed) != 0 {
		t.Errorf("Unexpected result %+v", result)
	}
	if out.String() != "→ Re-encryption finished.\n" {
		t.Errorf("Unexpected progress output %q", out.String())
	}
}

func TestRunReencrypt_MissingStore(t *testing.T) {
	var out bytes.Buffer
	prompter := &utils.Prompter{In: strings.NewReader(""), Out: &bytes.Buffer{}}
	missing := filepath.Join(t.TempDir(), "missing")

	_, err := runReencrypt(context.Background(), emptySession(missing), workflows.ReencryptOptions{}, ui.NewProgressPrinter(&out), prompter)
	if !errors.Is(err, kerrors.ErrStoreNotFound) {
		t.Fatalf("Expected ErrStoreNotFound, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("Expected no progress output, got %q", out.String())
	}
}
