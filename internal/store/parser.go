package store

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PolarWolf314/passkeep/internal/configs"
	kerrors "github.com/PolarWolf314/passkeep/internal/errors"
)

var (
	lineBreak = regexp.MustCompile(`\r\n|\r|\n`)
	// Only a single space after the colon belongs to the separator.
	keyValueLine = regexp.MustCompile(`^([^\s:]+): ?(.*)$`)
)

// PasswordParseError reports invalid username detection settings or content
// that cannot be parsed.
type PasswordParseError struct {
	Reason string
}

func (e *PasswordParseError) Error() string {
	return "failed to parse password file: " + e.Reason
}

func (e *PasswordParseError) Is(target error) bool { return target == kerrors.ErrPasswordParse }

// Parser turns decrypted plaintext into a KeyedPasswordFile.
type Parser struct {
	usernames UsernameDetector
}

func NewParser(usernames UsernameDetector) *Parser {
	return &Parser{usernames: usernames}
}

// Parse splits content into secret, metadata and key/value pairs. When
// wholeSecret is set the entire content is the secret and there is no
// metadata.
func (p *Parser) Parse(file PasswordFile, content string, wholeSecret bool) KeyedPasswordFile {
	parsed := ParsedPasswordFile{DecryptedPasswordFile: file.WithContent(content)}
	if wholeSecret {
		parsed.Secret = content
		return KeyedPasswordFile{ParsedPasswordFile: parsed}
	}

	parts := lineBreak.Split(content, 2)
	parsed.Secret = parts[0]
	if len(parts) == 2 {
		parsed.Metadata = parts[1]
	}

	return KeyedPasswordFile{
		ParsedPasswordFile: parsed,
		Pairs:              parsePairs(parsed.Metadata),
	}
}

func parsePairs(metadata string) []KeyValuePair {
	var pairs []KeyValuePair
	for _, line := range lineBreak.Split(metadata, -1) {
		m := keyValueLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		pairs = append(pairs, KeyValuePair{Key: m[1], Value: m[2]})
	}
	return pairs
}

// GetUsername applies the configured username detection to file.
func (p *Parser) GetUsername(file KeyedPasswordFile) (string, bool) {
	return p.usernames.Detect(file)
}

type usernameMethod int

const (
	detectByRegex usernameMethod = iota
	detectByLineNumber
	detectByKey
)

// UsernameDetector finds the username in a password file using exactly one
// of three methods: a regular expression with a "username" group applied to
// the whole plaintext, a fixed 1-based line number, or a metadata key.
type UsernameDetector struct {
	method     usernameMethod
	regex      *regexp.Regexp
	lineNumber int
	key        string
}

// NewUsernameDetector validates config and builds the detector it selects.
func NewUsernameDetector(config configs.UsernameDetectionConfig) (UsernameDetector, error) {
	switch strings.ToLower(config.Method) {
	case configs.UsernameMethodRegex, "":
		re, err := regexp.Compile(config.Regex)
		if err != nil {
			return UsernameDetector{}, &PasswordParseError{Reason: fmt.Sprintf("invalid username regex %q: %v", config.Regex, err)}
		}
		if re.SubexpIndex("username") < 0 {
			return UsernameDetector{}, &PasswordParseError{Reason: fmt.Sprintf("username regex %q has no 'username' group", config.Regex)}
		}
		return UsernameDetector{method: detectByRegex, regex: re}, nil
	case configs.UsernameMethodLineNumber:
		if config.LineNumber < 2 {
			return UsernameDetector{}, &PasswordParseError{Reason: "username line number must be 2 or higher"}
		}
		return UsernameDetector{method: detectByLineNumber, lineNumber: config.LineNumber}, nil
	case configs.UsernameMethodFixedKey:
		if config.Key == "" {
			return UsernameDetector{}, &PasswordParseError{Reason: "username key must not be empty"}
		}
		return UsernameDetector{method: detectByKey, key: config.Key}, nil
	default:
		return UsernameDetector{}, &PasswordParseError{Reason: fmt.Sprintf("unknown username detection method %q", config.Method)}
	}
}

// Detect returns the username, or false when file does not contain one.
func (d UsernameDetector) Detect(file KeyedPasswordFile) (string, bool) {
	switch d.method {
	case detectByRegex:
		if d.regex == nil {
			return "", false
		}
		m := d.regex.FindStringSubmatch(normalizeLineBreaks(file.Content))
		if m == nil {
			return "", false
		}
		return m[d.regex.SubexpIndex("username")], true
	case detectByLineNumber:
		lines := lineBreak.Split(file.Content, -1)
		// A terminated last line does not start another one.
		if len(lines) > 1 && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		if len(lines) < d.lineNumber {
			return "", false
		}
		return lines[d.lineNumber-1], true
	case detectByKey:
		values := file.Values(d.key)
		if len(values) == 0 {
			return "", false
		}
		return values[0], true
	}
	return "", false
}

// normalizeLineBreaks rewrites CRLF and lone CR line endings as LF so that
// multi-line patterns anchored with (?m)$ see every line.
func normalizeLineBreaks(content string) string {
	return lineBreak.ReplaceAllString(content, "\n")
}
