package errors

import "github.com/cockroachdb/errors"

// Process errors indicate the crypto tool could not be run to completion.
var (
	// ErrProcessStart indicates the crypto tool executable could not be started.
	ErrProcessStart = errors.New("failed to start crypto tool process")

	// ErrProcessTimeout indicates the crypto tool did not exit in time.
	ErrProcessTimeout = errors.New("crypto tool process timed out")

	// ErrToolNotFound indicates no crypto tool executable could be located.
	ErrToolNotFound = errors.New("crypto tool executable not found")
)

// Cryptographic errors indicate the crypto tool ran but reported a failure.
var (
	// ErrCryptoTool indicates a decrypt, encrypt or sign call did not succeed.
	ErrCryptoTool = errors.New("crypto tool reported a failure")

	// ErrNoSecretKeys indicates the keyring holds no secret keys, so nothing can be decrypted.
	ErrNoSecretKeys = errors.New("no secret keys found")

	// ErrHomeDirNotFound indicates the crypto tool's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("could not determine crypto tool home directory")
)

// Store errors indicate issues with the password store or its files.
var (
	// ErrStoreNotFound indicates the password store directory does not exist.
	ErrStoreNotFound = errors.New("password store not found")

	// ErrPasswordNotFound indicates the requested password file does not exist.
	ErrPasswordNotFound = errors.New("password file not found")

	// ErrPasswordExists indicates a password file already exists at the target location.
	ErrPasswordExists = errors.New("password file already exists")

	// ErrRelativePathRequired indicates an absolute path was given where a store-relative one is needed.
	ErrRelativePathRequired = errors.New("path to the password file must be relative")

	// ErrOutsideStore indicates a path does not lie inside the password store.
	ErrOutsideStore = errors.New("path is outside the password store")

	// ErrNoRecipients indicates no usable recipient could be determined for a file.
	ErrNoRecipients = errors.New("no usable recipients")

	// ErrKeyNotFound indicates a metadata key is absent from a password file.
	ErrKeyNotFound = errors.New("key does not exist")
)

// Configuration errors indicate invalid settings or unparsable content.
var (
	// ErrInvalidConfig indicates the configuration file is malformed.
	ErrInvalidConfig = errors.New("configuration is invalid")

	// ErrPasswordParse indicates invalid username detection settings or unparsable content.
	ErrPasswordParse = errors.New("failed to parse password file")

	// ErrNoCharacterGroups indicates password generation has no enabled character group.
	ErrNoCharacterGroups = errors.New("no character groups are enabled")
)

// Run errors.
var (
	// ErrAborted indicates the user chose to stop an operation.
	ErrAborted = errors.New("operation aborted")
)
