package gpg

import (
	"bytes"
	"strconv"
	"strings"

	"golang.org/x/crypto/openpgp/armor"
)

// Verifier classifies results of operations whose success cannot be read
// from the exit code alone.
type Verifier interface {
	VerifyDecryption(result *Result) error
	VerifyEncryption(result *Result) error
	VerifySignature(result *Result) error
}

// ResultVerifier checks gpg's status output.
//
// gpg can exit zero while reporting a failure for one of several recipients,
// so encryption is only accepted when END_ENCRYPTION was emitted and no
// recipient or general failure was reported.
type ResultVerifier struct{}

func (ResultVerifier) VerifyDecryption(result *Result) error {
	if result.HasStatus(StatusDecryptionOkay) && !result.HasStatus(StatusDecryptionFailed) {
		return nil
	}
	return &CryptoToolError{
		Operation:   "decrypt",
		Message:     describeFailure(result, "decryption was not reported as successful"),
		Diagnostics: result.Diagnostics(),
	}
}

func (ResultVerifier) VerifyEncryption(result *Result) error {
	failed := result.ExitCode != 0 ||
		!result.HasStatus(StatusEndEncryption) ||
		result.HasStatus(StatusInvRecp) ||
		result.HasStatus(StatusNoRecp) ||
		result.HasStatus(StatusFailure) ||
		result.HasStatus(StatusError)
	if !failed {
		return nil
	}
	return &CryptoToolError{
		Operation:   "encrypt",
		Message:     describeFailure(result, "encryption was not reported as successful"),
		Diagnostics: result.Diagnostics(),
	}
}

// VerifySignature accepts a result that announced SIG_CREATED and whose
// stdout is an ASCII-armored signature block.
func (ResultVerifier) VerifySignature(result *Result) error {
	fail := func(msg string) error {
		return &CryptoToolError{Operation: "sign", Message: msg, Diagnostics: result.Diagnostics()}
	}
	if result.ExitCode != 0 || !result.HasStatus(StatusSigCreated) {
		return fail(describeFailure(result, "no signature was created"))
	}
	block, err := armor.Decode(bytes.NewBufferString(result.RawStdout))
	if err != nil {
		return fail("output is not ASCII-armored: " + err.Error())
	}
	if block.Type != "PGP SIGNATURE" {
		return fail("unexpected armor block type " + block.Type)
	}
	return nil
}

// describeFailure picks the most specific explanation the status stream
// offers.
func describeFailure(result *Result, fallback string) string {
	for _, m := range result.StatusMessages {
		switch m.Code {
		case StatusNoSecKey:
			return "no secret key available for key " + firstField(m.Message)
		case StatusInvRecp:
			return "invalid recipient " + lastField(m.Message)
		case StatusNoRecp:
			return "no valid recipients"
		case StatusDecryptionFailed:
			return "decryption failed"
		case StatusBadPassphrase:
			return "bad passphrase"
		case StatusMissingPassphrase:
			return "missing passphrase"
		case StatusFailure, StatusError:
			return strings.ToLower(m.RawCode) + ": " + m.Message
		}
	}
	if result.ExitCode != 0 {
		return fallback + " (exit code " + strconv.Itoa(result.ExitCode) + ")"
	}
	return fallback
}

func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func lastField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
