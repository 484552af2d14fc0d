package utils

import (
	"regexp"
	"strings"

	"github.com/PolarWolf314/passkeep/internal/ui"
)

// FormatPaths formats a slice of paths into a readable string.
func FormatPaths(paths []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, path := range paths {
		b.WriteString("    - ")
		b.WriteString(ui.Path.Sprint(path))
		b.WriteString("\n")
	}
	return b.String()
}

var lineBreaks = regexp.MustCompile(`\r\n|\r`)

// SplitSecret separates piped input into the password on its first line and
// the metadata after it, normalising line endings to "\n".
func SplitSecret(input string) (secret, metadata string) {
	input = lineBreaks.ReplaceAllString(input, "\n")
	secret, metadata, _ = strings.Cut(input, "\n")
	return secret, strings.TrimRight(metadata, "\n")
}
