// Package store models the password store: encrypted password files
// addressed relative to a store root, the parser that splits their
// plaintext into a secret and key/value metadata, the recipient resolver
// that reads .gpg-id policy files, and the Manager that ties these to a
// crypto service.
//
// A password file moves through a chain of immutable stages:
//
//	PasswordFile -> DecryptedPasswordFile -> ParsedPasswordFile -> KeyedPasswordFile
//
// Each stage embeds the previous one and is built from it, never by
// mutating it.
package store
