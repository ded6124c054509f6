package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPromptsFromFiles(t *testing.T) {
	tempDir := t.TempDir()

	systemPromptContent := "Test system prompt for screening"
	userPromptContent := "Test user prompt template: %s and %s"

	systemPromptFile := filepath.Join(tempDir, "system.screen.md")
	userPromptFile := filepath.Join(tempDir, "user.screen.md")

	if err := os.WriteFile(systemPromptFile, []byte(systemPromptContent), 0600); err != nil {
		t.Fatalf("Failed to create test system prompt file: %v", err)
	}
	if err := os.WriteFile(userPromptFile, []byte(userPromptContent), 0600); err != nil {
		t.Fatalf("Failed to create test user prompt file: %v", err)
	}

	config := &Config{
		AI: AIConfig{
			Screen: OperationAIConfig{
				CustomPrompts: PromptConfig{
					SystemPrompts: SystemPrompts{
						ScreenResumeFile: systemPromptFile,
					},
					UserPrompts: UserPrompts{
						ScreenResumeFile: userPromptFile,
					},
				},
			},
		},
	}

	if err := config.loadPromptsFromFiles(); err != nil {
		t.Fatalf("Failed to load prompts from files: %v", err)
	}

	system, user := config.ScreenPrompts()
	if system != systemPromptContent {
		t.Errorf("Expected loaded system prompt content %q, got %q", systemPromptContent, system)
	}
	if user != userPromptContent {
		t.Errorf("Expected loaded user prompt content %q, got %q", userPromptContent, user)
	}

	// File paths are preserved so the watcher can reload them
	if config.AI.Screen.CustomPrompts.SystemPrompts.ScreenResumeFile != systemPromptFile {
		t.Error("Expected system prompt file path to be preserved")
	}
}

func TestLoadPromptsFromFilesMissingFile(t *testing.T) {
	config := &Config{
		AI: AIConfig{
			CustomPrompts: PromptConfig{
				UserPrompts: UserPrompts{
					DraftEmailFile: "/nonexistent/prompt.md",
				},
			},
		},
	}

	if err := config.loadPromptsFromFiles(); err == nil {
		t.Fatal("Expected error for missing prompt file")
	}
}

func TestPromptFilePaths(t *testing.T) {
	config := &Config{
		AI: AIConfig{
			CustomPrompts: PromptConfig{
				SystemPrompts: SystemPrompts{ScreenResumeFile: "a.md"},
			},
			Screen: OperationAIConfig{
				CustomPrompts: PromptConfig{
					UserPrompts: UserPrompts{ScreenResumeFile: "b.md"},
				},
			},
			Draft: OperationAIConfig{
				CustomPrompts: PromptConfig{
					SystemPrompts: SystemPrompts{DraftEmailFile: "c.md"},
				},
			},
		},
	}

	paths := config.promptFilePaths()
	if len(paths) != 3 {
		t.Fatalf("len(paths) = %d, want 3: %v", len(paths), paths)
	}
}

func TestWatchPromptFilesNoFiles(t *testing.T) {
	config := &Config{}

	stop, err := config.WatchPromptFiles(nil)
	if err != nil {
		t.Fatalf("WatchPromptFiles: %v", err)
	}
	if stop != nil {
		t.Error("Expected nil stop function when no prompt files are configured")
	}
}
