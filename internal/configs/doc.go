// Package configs manages passkeep configuration.
//
// Configuration is stored in TOML format at:
//
//	$XDG_CONFIG_HOME/passkeep/config.toml
//
// A missing file is not an error: Default() values are used instead.
//
// # Password Store
//
// The [password_store] table sets the store location, the doublestar
// pattern password files must match, whether the first line of a file is
// its password, and how usernames are detected.
//
// # GPG Options
//
// Extra gpg options are configured per operation:
//
//	[gpg.options.always]
//	verbose = ""
//	[gpg.options.decrypt]
//	try-secret-key = "0xDEADBEEF"
//
// An empty value produces a bare flag (--verbose), any other value a flag
// with an argument (--try-secret-key "0xDEADBEEF"). Options keep the order
// they appear in the file, since gpg is sensitive to flag order.
//
// # Environment
//
// PASSWORD_STORE_DIR overrides the store location and PASSWORD_STORE_KEY
// overrides every .gpg-id file in the store.
package configs
