package gpg

import (
	"context"
	"strconv"
	"strings"

	"github.com/PolarWolf314/passkeep/internal/configs"
	kerrors "github.com/PolarWolf314/passkeep/internal/errors"

	"github.com/cockroachdb/errors"
)

// GPG is a thin wrapper over the gpg command line.
type GPG struct {
	transport Invoker
	verifier  Verifier
	options   configs.AdditionalOptions
}

func New(transport Invoker, verifier Verifier, options configs.AdditionalOptions) *GPG {
	if verifier == nil {
		verifier = ResultVerifier{}
	}
	return &GPG{
		transport: transport,
		verifier:  verifier,
		options:   options,
	}
}

// Decrypt decrypts file and returns its plaintext.
func (g *GPG) Decrypt(ctx context.Context, file string) (string, error) {
	result, err := g.call(ctx, "--decrypt "+Quote(file), nil, g.options.Decrypt)
	if err != nil {
		return "", err
	}
	if err := g.verifier.VerifyDecryption(result); err != nil {
		return "", err
	}
	return result.RawStdout, nil
}

// Encrypt encrypts data for recipients and writes the ciphertext to
// outputFile. Without overwrite gpg refuses to replace an existing file.
func (g *GPG) Encrypt(ctx context.Context, data, outputFile string, overwrite bool, recipients ...string) error {
	var b strings.Builder
	if overwrite {
		b.WriteString("--yes ")
	}
	b.WriteString("--output ")
	b.WriteString(Quote(outputFile))
	b.WriteString(" --encrypt")
	for _, r := range recipients {
		b.WriteString(" --recipient ")
		b.WriteString(Quote(r))
	}

	result, err := g.call(ctx, b.String(), &data, g.options.Encrypt)
	if err != nil {
		return err
	}
	return g.verifier.VerifyEncryption(result)
}

// Sign creates a detached ASCII-armored signature of message with keyID and
// returns it line by line.
func (g *GPG) Sign(ctx context.Context, message, keyID string) ([]string, error) {
	result, err := g.call(ctx, "--detach-sign --local-user "+Quote(keyID)+" --armor", &message, g.options.Sign)
	if err != nil {
		return nil, err
	}
	if err := g.verifier.VerifySignature(result); err != nil {
		return nil, err
	}
	return result.StdoutLines(), nil
}

// GetVersion returns the first line of gpg --version.
func (g *GPG) GetVersion(ctx context.Context) (string, error) {
	result, err := g.call(ctx, "--version", nil, nil)
	if err != nil {
		return "", err
	}
	if result.ExitCode != 0 {
		return "", &CryptoToolError{
			Operation:   "version",
			Message:     "exit code " + strconv.Itoa(result.ExitCode),
			Diagnostics: result.Diagnostics(),
		}
	}
	lines := strings.SplitN(result.RawStdout, "\r\n", 2)
	first, _, _ := strings.Cut(lines[0], "\n")
	return first, nil
}

// GetRecipients lists the key ids file is encrypted for, without decrypting
// it.
func (g *GPG) GetRecipients(ctx context.Context, file string) ([]string, error) {
	result, err := g.call(ctx, "--list-only "+Quote(file), nil, nil)
	if err != nil {
		return nil, err
	}
	var recipients []string
	for _, m := range result.Statuses(StatusEncTo) {
		id, _, _ := strings.Cut(m.Message, " ")
		recipients = append(recipients, id)
	}
	return recipients, nil
}

// Colon listing field positions (see gpg's doc/DETAILS).
const (
	colonKeyID        = 4
	colonCapabilities = 11
)

// FindShortKeyID returns the key id of the first public key or subkey
// matching target that is capable of encryption. The boolean is false when
// no such key exists.
func (g *GPG) FindShortKeyID(ctx context.Context, target string) (string, bool, error) {
	result, err := g.call(ctx, "--list-keys "+Quote(target), nil, nil)
	if err != nil {
		return "", false, err
	}
	for _, line := range result.StdoutLines() {
		if !strings.HasPrefix(line, "pub") && !strings.HasPrefix(line, "sub") {
			continue
		}
		fields := strings.Split(line, ":")
		if len(fields) <= colonCapabilities {
			continue
		}
		if strings.Contains(fields[colonCapabilities], "e") {
			return fields[colonKeyID], true, nil
		}
	}
	return "", false, nil
}

// StartAgent lists the secret keys, which starts gpg-agent as a side effect.
// It fails when the keyring holds no secret keys, since nothing in the store
// could be decrypted.
func (g *GPG) StartAgent(ctx context.Context) error {
	result, err := g.call(ctx, "--list-secret-keys", nil, nil)
	if err != nil {
		return err
	}
	for _, line := range result.StdoutLines() {
		if strings.HasPrefix(line, "sec:") {
			return nil
		}
	}
	return errors.Wrap(kerrors.ErrNoSecretKeys, "passwords in the store cannot be decrypted")
}

func (g *GPG) call(ctx context.Context, arguments string, input *string, operation configs.OptionList) (*Result, error) {
	var options []string
	for _, list := range []configs.OptionList{g.options.Always, operation} {
		for _, o := range list {
			options = append(options, FormatOption(o))
		}
	}
	if len(options) > 0 {
		arguments = strings.Join(options, " ") + " " + arguments
	}

	if input == nil {
		return g.transport.Invoke(ctx, arguments, nil)
	}
	return g.transport.Invoke(ctx, arguments, strings.NewReader(*input))
}

// FormatOption renders a configured option as --name or --name "value".
func FormatOption(o configs.Option) string {
	if o.Value == "" {
		return "--" + o.Name
	}
	return "--" + o.Name + " " + Quote(o.Value)
}
