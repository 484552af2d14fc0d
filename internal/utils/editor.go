package utils

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"mvdan.cc/sh/v3/shell"
)

// EditorCommand returns the editor command line from $VISUAL or $EDITOR,
// falling back to a platform default.
func EditorCommand() string {
	for _, name := range []string{"VISUAL", "EDITOR"} {
		if editor := os.Getenv(name); editor != "" {
			return editor
		}
	}
	if runtime.GOOS == "windows" {
		return "notepad"
	}
	return "vi"
}

// EditText writes content to a private temporary file, opens it with the
// editor command line and returns what was saved. The editor command is split
// with shell quoting rules; the file path is appended as the last argument.
// The temporary file is removed before returning.
func EditText(ctx context.Context, editor, content string) (string, error) {
	argv, err := shell.Fields(editor, func(string) string { return "" })
	if err != nil {
		return "", fmt.Errorf("failed to parse editor command %q: %w", editor, err)
	}
	if len(argv) == 0 {
		return "", fmt.Errorf("no editor configured (hint: set EDITOR)")
	}

	dir, err := os.MkdirTemp("", "passkeep-edit-")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary directory: %w", err)
	}
	defer os.RemoveAll(dir)

	f, err := os.CreateTemp(dir, "*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	path := f.Name()
	_, err = f.WriteString(content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", fmt.Errorf("failed to write temporary file: %w", err)
	}

	cmd := exec.CommandContext(ctx, argv[0], append(argv[1:], path)...) // #nosec G204 -- the user's own editor
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor %s failed: %w", argv[0], err)
	}

	edited, err := os.ReadFile(path) // #nosec G304 -- file created above
	if err != nil {
		return "", fmt.Errorf("failed to read edited file: %w", err)
	}
	return string(edited), nil
}
