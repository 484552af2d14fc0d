package gpg

import (
	"strings"

	"github.com/cockroachdb/errors"
	"mvdan.cc/sh/v3/shell"
)

var quoteReplacer = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`$`, `\$`,
	"`", "\\`",
)

// Quote wraps s in double quotes, escaping the characters that are special
// inside them, so that SplitArguments returns s unchanged as one argument.
func Quote(s string) string {
	return `"` + quoteReplacer.Replace(s) + `"`
}

// SplitArguments turns an argument string into argv. Quoting follows POSIX
// shell rules; variables are never expanded from the environment.
func SplitArguments(arguments string) ([]string, error) {
	fields, err := shell.Fields(arguments, func(string) string { return "" })
	if err != nil {
		return nil, errors.Wrapf(err, "parsing argument string %q", arguments)
	}
	return fields, nil
}
