package config

import (
	"fmt"
	"os"
	"sync"

	"hireai/internal/errors"

	"github.com/fsnotify/fsnotify"
)

// promptMu guards the CustomPrompts string fields once the watcher is
// running, since the AI providers read them on every request.
var promptMu sync.RWMutex

// loadPromptsFromFiles replaces inline prompt strings with file contents
// wherever a *File path is configured. File-backed prompts win over
// inline ones so that operators can hot-edit them.
func (c *Config) loadPromptsFromFiles() error {
	blocks := []*PromptConfig{
		&c.AI.CustomPrompts,
		&c.AI.Screen.CustomPrompts,
		&c.AI.Draft.CustomPrompts,
	}
	for _, block := range blocks {
		if err := block.loadFiles(); err != nil {
			return err
		}
	}
	return nil
}

func (p *PromptConfig) loadFiles() error {
	entries := []struct {
		path   string
		target *string
	}{
		{p.SystemPrompts.ScreenResumeFile, &p.SystemPrompts.ScreenResume},
		{p.SystemPrompts.DraftEmailFile, &p.SystemPrompts.DraftEmail},
		{p.UserPrompts.ScreenResumeFile, &p.UserPrompts.ScreenResume},
		{p.UserPrompts.DraftEmailFile, &p.UserPrompts.DraftEmail},
	}
	for _, entry := range entries {
		if entry.path == "" {
			continue
		}
		content, err := os.ReadFile(entry.path)
		if err != nil {
			return fmt.Errorf("failed to read prompt file %s: %w", entry.path, err)
		}
		promptMu.Lock()
		*entry.target = string(content)
		promptMu.Unlock()
	}
	return nil
}

// promptFilePaths returns every configured prompt file path.
func (c *Config) promptFilePaths() []string {
	var paths []string
	for _, block := range []PromptConfig{
		c.AI.CustomPrompts,
		c.AI.Screen.CustomPrompts,
		c.AI.Draft.CustomPrompts,
	} {
		for _, p := range []string{
			block.SystemPrompts.ScreenResumeFile,
			block.SystemPrompts.DraftEmailFile,
			block.UserPrompts.ScreenResumeFile,
			block.UserPrompts.DraftEmailFile,
		} {
			if p != "" {
				paths = append(paths, p)
			}
		}
	}
	return paths
}

// WatchPromptFiles reloads file-backed prompts when they change on disk.
// It returns a stop function, or (nil, nil) when no prompt files are
// configured.
func (c *Config) WatchPromptFiles(logger *errors.Logger) (func(), error) {
	paths := c.promptFilePaths()
	if len(paths) == 0 {
		return nil, nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create prompt file watcher: %w", err)
	}

	for _, path := range paths {
		if err := watcher.Add(path); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to watch prompt file %s: %w", path, err)
		}
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if err := c.loadPromptsFromFiles(); err != nil {
					logger.Warn("Prompt file reload failed", "file", event.Name, "error", err)
					continue
				}
				logger.Info("Reloaded prompt file", "file", event.Name)
				// Editors that replace the file drop the watch; re-add it.
				_ = watcher.Add(event.Name)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("Prompt file watcher error", "error", err)
			case <-done:
				return
			}
		}
	}()

	return func() {
		close(done)
		watcher.Close()
	}, nil
}

// ScreenPrompts returns the custom screening prompts, safe for
// concurrent use with the prompt file watcher. Empty strings mean the
// built-in defaults apply.
func (c *Config) ScreenPrompts() (system, user string) {
	promptMu.RLock()
	defer promptMu.RUnlock()
	resolved := c.GetScreenConfig()
	return resolved.CustomPrompts.SystemPrompts.ScreenResume,
		resolved.CustomPrompts.UserPrompts.ScreenResume
}

// DraftPrompts returns the custom email drafting prompts.
func (c *Config) DraftPrompts() (system, user string) {
	promptMu.RLock()
	defer promptMu.RUnlock()
	resolved := c.GetDraftConfig()
	return resolved.CustomPrompts.SystemPrompts.DraftEmail,
		resolved.CustomPrompts.UserPrompts.DraftEmail
}
