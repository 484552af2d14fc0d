package configs

import "os"

// EnvironmentVariables holds the environment settings passkeep honours.
type EnvironmentVariables struct {
	// PasswordStoreKey is a whitespace separated list of recipients that
	// overrides all .gpg-id files.
	PasswordStoreKey string
	// PasswordStoreDir overrides the configured store location.
	PasswordStoreDir string

	// PasswordStoreSigningKey is the key .gpg-id files are signed with.
	PasswordStoreSigningKey string
}

func LoadFromEnvironment() EnvironmentVariables {
	return EnvironmentVariables{
		PasswordStoreKey:        os.Getenv("PASSWORD_STORE_KEY"),
		PasswordStoreDir:        os.Getenv("PASSWORD_STORE_DIR"),
		PasswordStoreSigningKey: os.Getenv("PASSWORD_STORE_SIGNING_KEY"),
	}
}
