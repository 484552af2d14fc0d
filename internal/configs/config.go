package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/passkeep/internal/errors"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
)

type Config struct {
	PasswordStore PasswordStoreConfig `toml:"password_store"`
	Gpg           GpgConfig           `toml:"gpg"`
}

type PasswordStoreConfig struct {
	Location          string                   `toml:"location"`
	FileMatch         string                   `toml:"file_match"`
	FirstLineOnly     bool                     `toml:"first_line_only"`
	UsernameDetection UsernameDetectionConfig  `toml:"username_detection"`
	Generation        PasswordGenerationConfig `toml:"password_generation"`
}

// PasswordGenerationConfig controls generated passwords. The alphabet is the
// union of the enabled character groups.
type PasswordGenerationConfig struct {
	Length          int                    `toml:"length"`
	CharacterGroups []CharacterGroupConfig `toml:"character_groups"`
	// DefaultContent is written below a generated password.
	DefaultContent string `toml:"default_content"`
}

type CharacterGroupConfig struct {
	Name       string `toml:"name"`
	Characters string `toml:"characters"`
	Enabled    bool   `toml:"enabled"`
}

// Username detection methods.
const (
	UsernameMethodRegex      = "regex"
	UsernameMethodLineNumber = "line-number"
	UsernameMethodFixedKey   = "fixed-key"
)

type UsernameDetectionConfig struct {
	Method     string `toml:"method"`
	Regex      string `toml:"regex"`
	LineNumber int    `toml:"line_number"`
	Key        string `toml:"key"`
}

type GpgConfig struct {
	Executable        string   `toml:"executable"`
	GnupghomeOverride string   `toml:"gnupghome_override"`
	Timeout           Duration `toml:"timeout"`

	// RawOptions receives the [gpg.options.*] tables; Options holds them in
	// file order.
	RawOptions map[string]map[string]string `toml:"options,omitempty"`
	Options    AdditionalOptions            `toml:"-"`
}

// Duration is a time.Duration written as a string such as "5s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		PasswordStore: PasswordStoreConfig{
			Location:      filepath.Join("~", ".password-store"),
			FileMatch:     "**/*.gpg",
			FirstLineOnly: true,
			UsernameDetection: UsernameDetectionConfig{
				Method:     UsernameMethodRegex,
				Regex:      `(?m)^[Uu]sername: (?P<username>.*?)\r?$`,
				LineNumber: 2,
				Key:        "Username",
			},
			Generation: PasswordGenerationConfig{
				Length: 20,
				CharacterGroups: []CharacterGroupConfig{
					{Name: "Symbols", Characters: "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", Enabled: true},
					{Name: "Numeric", Characters: "0123456789", Enabled: true},
					{Name: "Lowercase", Characters: "abcdefghijklmnopqrstuvwxyz", Enabled: true},
					{Name: "Uppercase", Characters: "ABCDEFGHIJKLMNOPQRSTUVWXYZ", Enabled: true},
					{Name: "Whitespace", Characters: " ", Enabled: false},
				},
				DefaultContent: "Username: \n",
			},
		},
		Gpg: GpgConfig{
			Timeout: Duration{5 * time.Second},
		},
	}
}

// Load reads the configuration file at path, filling unset values from
// Default(). A missing file yields the defaults.
func Load(path string) (*Config, error) {
	config := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	// Character groups from the file replace the defaults instead of being
	// merged into them element by element.
	groups := config.PasswordStore.Generation.CharacterGroups
	config.PasswordStore.Generation.CharacterGroups = nil

	md, err := LoadTOML(path, config)
	if err != nil {
		return nil, errors.Wrapf(kerrors.ErrInvalidConfig, "loading %s: %v", path, err)
	}
	if !md.IsDefined("password_store", "password_generation", "character_groups") {
		config.PasswordStore.Generation.CharacterGroups = groups
	}

	config.Gpg.Options, err = orderedOptions(md, config.Gpg.RawOptions)
	if err != nil {
		return nil, errors.Wrapf(kerrors.ErrInvalidConfig, "loading %s: %v", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Save writes the configuration to path.
func Save(path string, config *Config) error {
	if err := SaveTOML(path, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// Validate checks values that cannot be checked by decoding alone. Username
// detection settings are validated when the detector is built.
func (c *Config) Validate() error {
	if c.PasswordStore.Location == "" {
		return errors.Wrap(kerrors.ErrInvalidConfig, "password_store.location must not be empty")
	}
	if !doublestar.ValidatePattern(c.PasswordStore.FileMatch) {
		return errors.Wrapf(kerrors.ErrInvalidConfig, "password_store.file_match %q is not a valid pattern", c.PasswordStore.FileMatch)
	}
	if c.PasswordStore.Generation.Length <= 0 {
		return errors.Wrap(kerrors.ErrInvalidConfig, "password_store.password_generation.length must be positive")
	}
	if c.Gpg.Timeout.Duration <= 0 {
		return errors.Wrap(kerrors.ErrInvalidConfig, "gpg.timeout must be positive")
	}
	return nil
}

// StoreLocation returns the absolute store path, honouring
// PASSWORD_STORE_DIR and expanding a leading "~".
func (c *Config) StoreLocation(env EnvironmentVariables) (string, error) {
	location := c.PasswordStore.Location
	if strings.TrimSpace(env.PasswordStoreDir) != "" {
		location = env.PasswordStoreDir
	}
	return ExpandPath(location)
}

// ExpandPath expands a leading "~" to the home directory and makes the path
// absolute.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	return filepath.Abs(path)
}
