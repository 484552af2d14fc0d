package workflows

import (
	"context"

	"github.com/PolarWolf314/passkeep/internal/audit"
	"github.com/PolarWolf314/passkeep/internal/configs"
	"github.com/PolarWolf314/passkeep/internal/gpg"
	logger "github.com/PolarWolf314/passkeep/internal/logging"
	"github.com/PolarWolf314/passkeep/internal/store"

	"github.com/cockroachdb/errors"
)

// SessionOptions configures how a Session is opened.
type SessionOptions struct {
	// ConfigPath is the configuration file. Empty means configs.ConfigPath().
	ConfigPath string

	// Log receives gpg diagnostics and progress details.
	Log logger.Logger

	// Processes starts gpg and gpgconf. Nil means real subprocesses.
	Processes gpg.Processes
}

// Session holds everything a command needs to work on the password store.
type Session struct {
	Config     *configs.Config
	Env        configs.EnvironmentVariables
	GPG        *gpg.GPG
	Manager    *store.Manager
	Recipients *store.RecipientFinder
	Generator  *store.PasswordGenerator
	Audit      *audit.Trail
	Log        logger.Logger
}

// Open loads the configuration, locates gpg and its home directory, and
// wires the password store to it.
//
// Returns ErrInvalidConfig for a bad configuration file.
// Returns ErrToolNotFound if no gpg executable can be found.
// Returns ErrPasswordParse for invalid username detection settings.
func Open(ctx context.Context, opts SessionOptions) (*Session, error) {
	configPath := opts.ConfigPath
	if configPath == "" {
		var err error
		if configPath, err = configs.ConfigPath(); err != nil {
			return nil, err
		}
	}

	config, err := configs.Load(configPath)
	if err != nil {
		return nil, err
	}
	opts.Log.Debugf("Loaded configuration from %s", configPath)

	env := configs.LoadFromEnvironment()
	root, err := config.StoreLocation(env)
	if err != nil {
		return nil, errors.Wrap(err, "resolving password store location")
	}

	installation, err := gpg.FindInstallation(config.Gpg.Executable)
	if err != nil {
		return nil, err
	}
	opts.Log.Debugf("Using gpg at %s", installation.Executable)

	home, err := gpg.ResolveHomeDir(ctx, config.Gpg.GnupghomeOverride, installation, opts.Processes, opts.Log)
	if err != nil {
		return nil, err
	}

	transport := gpg.NewTransport(installation, home, opts.Processes, config.Gpg.Timeout.Duration, opts.Log)
	facade := gpg.New(transport, gpg.ResultVerifier{}, config.Gpg.Options)

	return newSession(config, env, root, facade, opts.Log)
}

func newSession(config *configs.Config, env configs.EnvironmentVariables, root string, facade *gpg.GPG, log logger.Logger) (*Session, error) {
	detector, err := store.NewUsernameDetector(config.PasswordStore.UsernameDetection)
	if err != nil {
		return nil, err
	}

	recipients := store.NewRecipientFinder(root, env)
	manager := store.NewManager(root, facade, recipients, store.NewParser(detector), config.PasswordStore.FileMatch)

	return &Session{
		Config:     config,
		Env:        env,
		GPG:        facade,
		Manager:    manager,
		Recipients: recipients,
		Generator:  store.NewPasswordGenerator(config.PasswordStore.Generation),
		Audit:      audit.DefaultTrail(),
		Log:        log,
	}, nil
}
