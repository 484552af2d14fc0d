package workflows

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/passkeep/internal/audit"
	"github.com/PolarWolf314/passkeep/internal/configs"
	"github.com/PolarWolf314/passkeep/internal/gpg"
	logger "github.com/PolarWolf314/passkeep/internal/logging"

	"golang.org/x/crypto/openpgp/armor"
)

// fakeKeyring answers gpg invocations. "Ciphertext" is the plaintext
// preceded by a header line listing the key ids it is encrypted for.
type fakeKeyring struct {
	// keys maps identifiers (emails or key ids) to short key ids.
	keys map[string]string

	encrypts int
	decrypts int
	// signed records the messages passed to --detach-sign.
	signed []string
	// failDecrypt makes decryption of these paths fail.
	failDecrypt map[string]bool
}

const recipientHeader = "RECIPIENTS "

func newFakeKeyring(keys map[string]string) *fakeKeyring {
	return &fakeKeyring{keys: keys, failDecrypt: map[string]bool{}}
}

func status(line string) gpg.StatusMessage {
	m, _ := gpg.ParseStatusLine(gpg.StatusMarker + line)
	return m
}

func (k *fakeKeyring) Invoke(_ context.Context, arguments string, input io.Reader) (*gpg.Result, error) {
	args, err := gpg.SplitArguments(arguments)
	if err != nil {
		return nil, err
	}

	switch {
	case contains(args, "--decrypt"):
		path := args[len(args)-1]
		k.decrypts++
		if k.failDecrypt[path] {
			return &gpg.Result{ExitCode: 2, StatusMessages: []gpg.StatusMessage{status("DECRYPTION_FAILED")}}, nil
		}
		_, plaintext, err := readCiphertext(path)
		if err != nil {
			return nil, err
		}
		return &gpg.Result{RawStdout: plaintext, StatusMessages: []gpg.StatusMessage{status("DECRYPTION_OKAY")}}, nil

	case contains(args, "--encrypt"):
		data, _ := io.ReadAll(input)
		var output string
		var ids []string
		for i := 0; i < len(args)-1; i++ {
			switch args[i] {
			case "--output":
				output = args[i+1]
			case "--recipient":
				id, ok := k.keys[args[i+1]]
				if !ok {
					return &gpg.Result{StatusMessages: []gpg.StatusMessage{status("INV_RECP 0 " + args[i+1])}}, nil
				}
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			return &gpg.Result{ExitCode: 2, StatusMessages: []gpg.StatusMessage{status("NO_RECP 0")}}, nil
		}
		k.encrypts++
		if err := writeCiphertext(output, ids, string(data)); err != nil {
			return nil, err
		}
		return &gpg.Result{StatusMessages: []gpg.StatusMessage{status("BEGIN_ENCRYPTION 2 9"), status("END_ENCRYPTION")}}, nil

	case contains(args, "--detach-sign"):
		data, _ := io.ReadAll(input)
		keyID := args[len(args)-2]
		if _, ok := k.keys[keyID]; !ok {
			return &gpg.Result{ExitCode: 2, StatusMessages: []gpg.StatusMessage{status("INV_SGNR 9 " + keyID)}}, nil
		}
		k.signed = append(k.signed, string(data))
		var buf bytes.Buffer
		w, err := armor.Encode(&buf, "PGP SIGNATURE", nil)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte("signature of " + keyID)); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return &gpg.Result{RawStdout: buf.String(), StatusMessages: []gpg.StatusMessage{status("SIG_CREATED D 1 8 00 1627027253 " + keyID)}}, nil

	case contains(args, "--list-only"):
		ids, _, err := readCiphertext(args[len(args)-1])
		if err != nil {
			return nil, err
		}
		result := &gpg.Result{}
		for _, id := range ids {
			result.StatusMessages = append(result.StatusMessages, status("ENC_TO "+id+" 1 0"))
		}
		return result, nil

	case contains(args, "--list-keys"):
		id, ok := k.keys[args[len(args)-1]]
		if !ok {
			return &gpg.Result{ExitCode: 2}, nil
		}
		return &gpg.Result{RawStdout: fmt.Sprintf("pub:u:3072:1:%s:1627027253::::::escESC:\n", id)}, nil

	case contains(args, "--list-secret-keys"):
		return &gpg.Result{RawStdout: "sec:u:3072:1:1140265C5D4B56E1:1627027253::::::scESC:\n"}, nil

	case contains(args, "--version"):
		return &gpg.Result{RawStdout: "gpg (GnuPG) 2.4.5\nlibgcrypt 1.10.3\n"}, nil
	}
	return nil, fmt.Errorf("unexpected invocation %q", arguments)
}

func contains(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

func readCiphertext(path string) ([]string, string, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, "", err
	}
	header, plaintext, _ := strings.Cut(string(data), "\n")
	return strings.Fields(strings.TrimPrefix(header, recipientHeader)), plaintext, nil
}

func writeCiphertext(path string, ids []string, plaintext string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(recipientHeader+strings.Join(ids, " ")+"\n"+plaintext), 0o600)
}

// writeTestFile creates a file and its parent directories.
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

func writeTestPassword(t *testing.T, root, relative string, ids []string, plaintext string) {
	t.Helper()
	if err := writeCiphertext(filepath.Join(root, filepath.FromSlash(relative)), ids, plaintext); err != nil {
		t.Fatalf("Failed to write password: %v", err)
	}
}

// newTestSession wires a session for root to keyring. The audit log is
// written to a temporary directory.
func newTestSession(t *testing.T, root string, keyring *fakeKeyring, env configs.EnvironmentVariables) *Session {
	t.Helper()
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	config := configs.Default()
	s, err := newSession(config, env, root, gpg.New(keyring, nil, configs.AdditionalOptions{}), logger.Discard)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	s.Audit = audit.NewTrail(filepath.Join(t.TempDir(), audit.FileName))
	return s
}
