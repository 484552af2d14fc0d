// Package ui provides semantic text formatting for CLI output.
//
// This package defines formatters for different types of content (code,
// paths, key ids, errors, etc.) that render appropriately based on terminal
// capabilities. When colors are available, content is colorized. When
// NO_COLOR is set or the terminal doesn't support colors, text-based
// decorations (backticks, quotes) are used instead.
//
// # Semantic Formatters
//
//	ui.Code.Sprint("passkeep reencrypt")      // Commands and code
//	ui.Path.Sprint("mail/alice")              // Store paths
//	ui.KeyID.Join(ids)                        // gpg key ids
//	ui.Success.Sprint("✓")                     // Success indicators
//	ui.Error.Sprint("✗")                       // Error indicators
//	ui.Warning.Sprint("[dry-run]")             // Warnings
//	ui.Info.Sprint("→")                        // Informational hints
//	ui.Highlight.Sprint("alice@example.com")  // User values
//	ui.Muted.Sprint("optional")               // De-emphasized text
//
// ProgressPrinter streams re-encryption messages with an outcome symbol.
//
// # Color Behavior
//
// Colors are disabled when:
//   - NO_COLOR environment variable is set (any value)
//   - Terminal doesn't support colors (TERM=dumb, not a TTY)
//
// When colors are disabled, formatters apply text decorations:
//   - Code: `backticks`
//   - Highlight: 'single quotes'
//   - KeyID: <angle brackets>
//   - Muted: (parentheses)
//   - Others: no decoration (self-evident from context)
package ui
