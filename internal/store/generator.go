package store

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/PolarWolf314/passkeep/internal/configs"
	kerrors "github.com/PolarWolf314/passkeep/internal/errors"

	"github.com/cockroachdb/errors"
)

// PasswordGenerator creates random passwords from the enabled character
// groups of its configuration.
type PasswordGenerator struct {
	length   int
	alphabet []rune
}

func NewPasswordGenerator(config configs.PasswordGenerationConfig) *PasswordGenerator {
	seen := make(map[rune]bool)
	var alphabet []rune
	for _, group := range config.CharacterGroups {
		if !group.Enabled {
			continue
		}
		for _, r := range group.Characters {
			if !seen[r] {
				seen[r] = true
				alphabet = append(alphabet, r)
			}
		}
	}
	return &PasswordGenerator{length: config.Length, alphabet: alphabet}
}

// WithLength returns a generator for passwords of length characters.
func (g *PasswordGenerator) WithLength(length int) *PasswordGenerator {
	return &PasswordGenerator{length: length, alphabet: g.alphabet}
}

// Generate returns a password whose characters are drawn uniformly from the
// alphabet with crypto/rand.
func (g *PasswordGenerator) Generate() (string, error) {
	if len(g.alphabet) == 0 {
		return "", kerrors.ErrNoCharacterGroups
	}
	if g.length <= 0 {
		return "", errors.Newf("password length must be positive, got %d", g.length)
	}

	size := big.NewInt(int64(len(g.alphabet)))
	var b strings.Builder
	for i := 0; i < g.length; i++ {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", errors.Wrap(err, "reading random bytes")
		}
		b.WriteRune(g.alphabet[n.Int64()])
	}
	return b.String(), nil
}
