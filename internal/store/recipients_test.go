package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/PolarWolf314/passkeep/internal/configs"
)

func TestFindRecipients_EnvironmentOverride(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, GpgIDFileName), "policy@example.com\n")

	finder := NewRecipientFinder(root, configs.EnvironmentVariables{PasswordStoreKey: " alice@example.com\tbob@example.com  "})
	got, err := finder.FindRecipients(mustPasswordFile(t, root, "a.gpg"))
	if err != nil {
		t.Fatalf("FindRecipients failed: %v", err)
	}

	want := []string{"alice@example.com", "bob@example.com"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestFindRecipients_BlankOverrideIsIgnored(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, GpgIDFileName), "policy@example.com\n")

	finder := NewRecipientFinder(root, configs.EnvironmentVariables{PasswordStoreKey: "  "})
	got, err := finder.FindRecipients(mustPasswordFile(t, root, "a.gpg"))
	if err != nil {
		t.Fatalf("FindRecipients failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"policy@example.com"}) {
		t.Errorf("Expected policy recipients, got %q", got)
	}
}

func TestFindRecipients_NearestPolicyFileWins(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, GpgIDFileName), "root@example.com\n")
	writeTestFile(t, filepath.Join(root, "work", GpgIDFileName), "work1@example.com\r\n\r\nwork2@example.com\r\n")

	finder := NewRecipientFinder(root, configs.EnvironmentVariables{})

	tests := []struct {
		relative string
		want     []string
	}{
		{"top.gpg", []string{"root@example.com"}},
		{"work/a.gpg", []string{"work1@example.com", "work2@example.com"}},
		{"work/deep/nested/a.gpg", []string{"work1@example.com", "work2@example.com"}},
		{"personal/a.gpg", []string{"root@example.com"}},
	}

	for _, tt := range tests {
		got, err := finder.FindRecipients(mustPasswordFile(t, root, tt.relative))
		if err != nil {
			t.Fatalf("FindRecipients(%s) failed: %v", tt.relative, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: expected %q, got %q", tt.relative, tt.want, got)
		}
	}
}

func TestFindRecipients_StopsAtStoreRoot(t *testing.T) {
	parent := t.TempDir()
	writeTestFile(t, filepath.Join(parent, GpgIDFileName), "outside@example.com\n")
	root := filepath.Join(parent, "store")

	finder := NewRecipientFinder(root, configs.EnvironmentVariables{})
	got, err := finder.FindRecipients(mustPasswordFile(t, root, "missing/dir/a.gpg"))
	if err != nil {
		t.Fatalf("FindRecipients failed: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Expected an empty recipient list, got %q", got)
	}
}

func TestFindRecipients_RelativeRootStopsAtStore(t *testing.T) {
	parent := t.TempDir()
	writeTestFile(t, filepath.Join(parent, GpgIDFileName), "outside@example.com\n")
	root := filepath.Join(parent, "store")
	writeTestFile(t, filepath.Join(root, "work", "a.gpg"), "")

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(parent); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatalf("Failed to restore directory: %v", err)
		}
	})

	finder := NewRecipientFinder("store", configs.EnvironmentVariables{})
	got, err := finder.FindRecipients(mustPasswordFile(t, root, "work/a.gpg"))
	if err != nil {
		t.Fatalf("FindRecipients failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected no recipients from outside the store, got %q", got)
	}
}
