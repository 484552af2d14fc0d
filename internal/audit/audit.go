package audit

import (
	"encoding/json"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/passkeep/internal/configs"
)

// FileName is the audit log inside passkeep's data directory.
const FileName = "audit.jsonl"

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	User      string `json:"user"` // Local account performing the action.
	Operation string `json:"op"`   // Operation name.
	Store     string `json:"store"`

	// Optional fields depending on operation.
	RunID       string   `json:"run_id,omitempty"`      // For reencrypt.
	Files       []string `json:"files,omitempty"`       // For insert and reencrypt.
	Reencrypted int      `json:"reencrypted,omitempty"` // For reencrypt.
	Skipped     int      `json:"skipped,omitempty"`     // For reencrypt.
	Failed      int      `json:"failed,omitempty"`      // For reencrypt.
	Aborted     bool     `json:"aborted,omitempty"`     // For reencrypt.
	Subtree     string   `json:"subtree,omitempty"`     // For reencrypt.
}

// Trail appends entries to one audit log file. A Trail with an empty path
// records nothing.
type Trail struct {
	path string
}

func NewTrail(path string) *Trail {
	return &Trail{path: path}
}

// DefaultTrail returns the trail in passkeep's data directory. If that
// directory cannot be determined the trail is disabled.
func DefaultTrail() *Trail {
	dataPath, err := configs.DataPath()
	if err != nil {
		return &Trail{}
	}
	return NewTrail(filepath.Join(dataPath, FileName))
}

// Path returns the path to the audit log file, or "" if disabled.
func (t *Trail) Path() string { return t.path }

// Log appends an entry to the audit log.
// If logging fails the entry is dropped. Operations should not fail just
// because audit logging failed.
func (t *Trail) Log(entry Entry) {
	if t == nil || t.path == "" {
		return
	}

	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}
	if entry.User == "" {
		entry.User = currentUser()
	}

	if err := os.MkdirAll(filepath.Dir(t.path), 0o700); err != nil {
		return
	}

	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func (t *Trail) ReadEntries() ([]Entry, error) {
	if t == nil || t.path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(t.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
