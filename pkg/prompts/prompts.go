// Package prompts serves the agent prompt texts. Defaults are embedded in
// the binary; a prompt directory can override any of them per file, and
// overrides can be reloaded while the process runs.
package prompts

import (
	"embed"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

//go:embed defaults/*.txt
var defaultFS embed.FS

// Prompt names resolvable through a Loader.
const (
	PlannerSystem   = "planner_system"
	PlannerUser     = "planner_user"
	CollectorSystem = "collector_system"
	AnalystSystem   = "analyst_system"
)

// Loader resolves prompt texts, preferring override files in dir over the
// embedded defaults. A nil-dir loader only serves defaults.
type Loader struct {
	mu        sync.RWMutex
	dir       string
	overrides map[string]string
}

// NewLoader builds a loader. dir may be empty to disable overrides.
func NewLoader(dir string) *Loader {
	l := &Loader{
		dir:       dir,
		overrides: make(map[string]string),
	}
	l.Reload()
	return l
}

// Get returns the prompt text for name. Missing names resolve to the empty
// string so callers fail loudly in their own terms.
func (l *Loader) Get(name string) string {
	l.mu.RLock()
	if text, ok := l.overrides[name]; ok {
		l.mu.RUnlock()
		return text
	}
	l.mu.RUnlock()

	data, err := defaultFS.ReadFile("defaults/" + name + ".txt")
	if err != nil {
		slog.Error("Unknown prompt requested", "name", name)
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Reload re-reads every override file from the prompt directory. Called at
// startup and whenever the prompt watcher fires.
func (l *Loader) Reload() {
	if l.dir == "" {
		return
	}

	overrides := make(map[string]string)
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		slog.Warn("Prompt directory not readable, using embedded defaults", "dir", l.dir, "error", err)
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".txt")
		data, err := os.ReadFile(filepath.Join(l.dir, entry.Name()))
		if err != nil {
			slog.Warn("Could not read prompt override", "file", entry.Name(), "error", err)
			continue
		}
		overrides[name] = strings.TrimSpace(string(data))
	}

	l.mu.Lock()
	l.overrides = overrides
	l.mu.Unlock()

	if len(overrides) > 0 {
		slog.Info("Prompt overrides loaded", "dir", l.dir, "count", len(overrides))
	}
}

// Files lists the override file paths to watch for live reload.
func (l *Loader) Files() []string {
	if l.dir == "" {
		return nil
	}
	var files []string
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".txt") {
			files = append(files, filepath.Join(l.dir, entry.Name()))
		}
	}
	return files
}
