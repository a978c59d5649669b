// Package ledger persists which pull request head commits have been
// processed, keyed by the pull request's issue URL.
package ledger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the ledger file used when no path is configured.
const DefaultPath = "status.yaml"

// Entry records the last processed state of a single pull request. Field
// order matches the serialized form: entries marshal with their keys in
// alphabetical order, like the file's top-level keys.
type Entry struct {
	LastCommitSHA string `yaml:"last_commit_sha"`
	Number        int    `yaml:"number"`
	UpdatedAt     string `yaml:"updated_at"`
}

// MalformedError reports a ledger file that exists but cannot be parsed.
// Callers must treat it as fatal rather than risk overwriting the file.
type MalformedError struct {
	Path string
	Err  error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed ledger file %s: %v", e.Path, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

// Ledger is the in-memory view of a ledger file. Open loads the whole file
// and Save writes the whole file back; entries are never updated in place.
type Ledger struct {
	path    string
	entries map[string]Entry
}

// Open loads the ledger at path. A missing file yields an empty ledger; a
// file that exists but does not parse yields a *MalformedError.
func Open(path string) (*Ledger, error) {
	led := &Ledger{
		path:    path,
		entries: make(map[string]Entry),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("ledger file not found, starting empty", "path", path)
			return led, nil
		}
		return nil, fmt.Errorf("failed to read ledger file: %w", err)
	}

	if err := yaml.Unmarshal(data, &led.entries); err != nil {
		return nil, &MalformedError{Path: path, Err: err}
	}
	if led.entries == nil {
		led.entries = make(map[string]Entry)
	}

	slog.Debug("ledger loaded", "path", path, "entries", len(led.entries))
	return led, nil
}

// Get returns the entry recorded for the given issue URL.
func (l *Ledger) Get(issueURL string) (Entry, bool) {
	e, ok := l.entries[issueURL]
	return e, ok
}

// Put records an entry for the given issue URL, replacing any previous one.
func (l *Ledger) Put(issueURL string, e Entry) {
	l.entries[issueURL] = e
}

// Len returns the number of recorded pull requests.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Path returns the file the ledger was opened from.
func (l *Ledger) Path() string {
	return l.path
}

// Save writes the full ledger back to its file. The data goes through a
// temp file in the same directory followed by a rename, so an interrupted
// run cannot leave a half-written ledger behind. Keys marshal in sorted
// order, which keeps the output stable across runs.
func (l *Ledger) Save() error {
	data, err := yaml.Marshal(l.entries)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger: %w", err)
	}

	dir := filepath.Dir(l.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(l.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp ledger file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp ledger file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp ledger file: %w", err)
	}

	if err := os.Rename(tmpPath, l.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace ledger file: %w", err)
	}

	slog.Debug("ledger saved", "path", l.path, "entries", len(l.entries))
	return nil
}
