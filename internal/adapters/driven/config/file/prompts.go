package file

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/autoanswer-cli/internal/core/domain"
	"github.com/custodia-labs/autoanswer-cli/internal/core/ports/driven"
	"github.com/custodia-labs/autoanswer-cli/internal/logger"
)

var _ driven.PromptStore = (*PromptStore)(nil)

//go:embed prompts
var defaultsFS embed.FS

const defaultsDir = "prompts"

// PromptStore serves prompt templates from a user-editable directory.
// Files missing from the directory fall back to the embedded defaults.
// The directory is seeded with the defaults on first Load, not in the
// constructor, so creating a store never touches the disk.
type PromptStore struct {
	dir string

	seedOnce sync.Once
	seedErr  error

	mu    sync.RWMutex
	cache map[string]string
}

// NewPromptStore returns a store over dir. An empty dir means ~/.autoanswer/prompts.
func NewPromptStore(dir string) (*PromptStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("locate home directory: %w", err)
		}
		dir = filepath.Join(home, ".autoanswer", "prompts")
	}
	return &PromptStore{dir: dir, cache: make(map[string]string)}, nil
}

// Load returns the named template, trimmed of surrounding whitespace.
func (s *PromptStore) Load(name string) (string, error) {
	s.seedOnce.Do(s.seed)

	s.mu.RLock()
	cached, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	prompt, err := s.read(name)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	if existing, ok := s.cache[name]; ok {
		prompt = existing
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()
	return prompt, nil
}

// Reload drops cached templates so edits on disk are picked up.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	clear(s.cache)
	s.mu.Unlock()
}

// Dir returns the prompt directory.
func (s *PromptStore) Dir() string {
	return s.dir
}

// read prefers the user's file and falls back to the embedded default.
func (s *PromptStore) read(name string) (string, error) {
	if s.seedErr == nil {
		data, err := os.ReadFile(filepath.Join(s.dir, name+".txt"))
		if err == nil {
			return strings.TrimSpace(string(data)), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("prompt %s: %v (using default)", name, err)
		}
	}

	def, err := defaultsFS.ReadFile(path.Join(defaultsDir, name+".txt"))
	if err != nil {
		return "", fmt.Errorf("%w: prompt %q", domain.ErrNotFound, name)
	}
	return strings.TrimSpace(string(def)), nil
}

// seed copies every embedded file into dir without replacing existing ones.
// A failure leaves the store serving embedded defaults only.
func (s *PromptStore) seed() {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		s.seedErr = err
		logger.Warn("prompt directory %s unavailable: %v", s.dir, err)
		return
	}

	entries, err := defaultsFS.ReadDir(defaultsDir)
	if err != nil {
		s.seedErr = err
		return
	}
	for _, e := range entries {
		dst := filepath.Join(s.dir, e.Name())
		if _, err := os.Stat(dst); !errors.Is(err, fs.ErrNotExist) {
			continue
		}
		data, err := defaultsFS.ReadFile(path.Join(defaultsDir, e.Name()))
		if err != nil {
			continue
		}
		if err := os.WriteFile(dst, data, 0600); err != nil {
			logger.Warn("seed prompt %s: %v", e.Name(), err)
		}
	}
}
