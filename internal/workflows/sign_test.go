package workflows

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/passkeep/internal/configs"
	kerrors "github.com/PolarWolf314/passkeep/internal/errors"
)

func TestSignPolicy_WritesDetachedSignature(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "team", ".gpg-id"), "alice@example.com\nbob@example.com\n")
	keyring := testKeyring()
	s := newTestSession(t, root, keyring, configs.EnvironmentVariables{PasswordStoreSigningKey: aliceID + " " + bobID})

	result, err := SignPolicy(context.Background(), s, SignPolicyOptions{Dir: "team"})
	if err != nil {
		t.Fatalf("SignPolicy failed: %v", err)
	}
	if result.KeyID != aliceID {
		t.Errorf("Expected the first signing key, got %q", result.KeyID)
	}
	if len(keyring.signed) != 1 || keyring.signed[0] != "alice@example.com\nbob@example.com\n" {
		t.Errorf("Expected the policy to be signed, got %q", keyring.signed)
	}

	signature, err := os.ReadFile(filepath.Join(root, "team", ".gpg-id.sig"))
	if err != nil {
		t.Fatalf("Signature was not written: %v", err)
	}
	if !strings.HasPrefix(string(signature), "-----BEGIN PGP SIGNATURE-----") {
		t.Errorf("Expected an armored signature, got %q", signature)
	}

	entries, _ := s.Audit.ReadEntries()
	if len(entries) != 1 || entries[0].Operation != "sign-policy" || entries[0].Files[0] != "team/.gpg-id" {
		t.Errorf("Unexpected audit entries %+v", entries)
	}
}

func TestSignPolicy_Errors(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, ".gpg-id"), "alice@example.com\n")
	s := newTestSession(t, root, testKeyring(), configs.EnvironmentVariables{})

	tests := []struct {
		name string
		opts SignPolicyOptions
		want error
	}{
		{"no signing key", SignPolicyOptions{}, kerrors.ErrKeyNotFound},
		{"no policy file", SignPolicyOptions{Dir: "missing", KeyID: aliceID}, kerrors.ErrKeyNotFound},
		{"outside the store", SignPolicyOptions{Dir: "../elsewhere", KeyID: aliceID}, kerrors.ErrOutsideStore},
		{"unknown key", SignPolicyOptions{KeyID: "FFFF0000FFFF0000"}, kerrors.ErrCryptoTool},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SignPolicy(context.Background(), s, tt.opts); !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(root, ".gpg-id.sig")); !os.IsNotExist(err) {
		t.Errorf("Expected no signature after failures, got %v", err)
	}
}
