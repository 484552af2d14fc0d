// Package gpg drives the GnuPG command line tool as a subprocess.
//
// Every call spawns one gpg process with a fixed set of flags that keep it
// non-interactive and make its output machine readable:
//
//	--batch --no-tty --status-fd 2 --with-colons --exit-on-status-write-error
//
// Status lines arrive on stderr prefixed with "[GNUPG:] " and are parsed into
// StatusMessage values; all other stderr lines are kept as diagnostics and
// forwarded to the logger. Stdout is captured verbatim.
//
// # Layers
//
//   - Transport spawns the process, feeds stdin and drains both output
//     pipes concurrently, returning a Result.
//   - ResultVerifier decides whether a Result represents a successful
//     decryption, encryption or signature.
//   - GPG builds the argument string for each operation, merges configured
//     extra options and post-processes results.
//
// Argument strings use shell-style double quoting (see Quote) and are split
// into argv before the process is started, so no shell is ever involved.
package gpg
