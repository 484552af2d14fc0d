package gpg

import (
	"regexp"
	"strconv"
)

var percentEscape = regexp.MustCompile(`%[0-9a-f]{2}`)

// UnescapePercent decodes the %xx escapes gpgconf uses in its output.
// Only lower-case hex digits are recognised, as gpgconf never emits others.
func UnescapePercent(text string) string {
	return percentEscape.ReplaceAllStringFunc(text, func(m string) string {
		v, err := strconv.ParseUint(m[1:], 16, 8)
		if err != nil {
			return m
		}
		return string(rune(v))
	})
}
