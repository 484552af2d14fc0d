// Package utils provides shared helpers for the passkeep command line.
//
// # Terminal Utilities
//
//   - IsTerminal: checks whether stdin is a terminal
//   - ReadSecret: reads a password without echoing it
//   - Prompter: asks yes/no questions, answering "no" when nobody can answer
//
// # I/O Utilities
//
//   - ReadPiped: reads a password piped to stdin
//   - SplitSecret: splits piped input into password and metadata
//   - EditText: lets the user edit text in $VISUAL or $EDITOR
//
// # String Utilities
//
//   - FormatPaths: formats store paths for human-readable output
package utils
