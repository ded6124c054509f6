package utils

import "testing"

func TestCandidateNameFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"jane_doe.txt", "Jane Doe"},
		{"john-smith-resume.md", "John Smith Resume"},
		{"/tmp/uploads/ALICE_COOPER.TXT", "Alice Cooper"},
		{"resume.txt", "Resume"},
		{"maria.garcia.txt", "Maria Garcia"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := CandidateNameFromFilename(tt.filename); got != tt.want {
				t.Errorf("CandidateNameFromFilename(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}

func TestGetFileExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"resume.TXT", ".txt"},
		{"notes.md", ".md"},
		{"noext", ""},
	}

	for _, tt := range tests {
		if got := GetFileExtension(tt.filename); got != tt.want {
			t.Errorf("GetFileExtension(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestIsTextFile(t *testing.T) {
	if !IsTextFile("resume.txt") {
		t.Error("expected .txt to be a text file")
	}
	if IsTextFile("resume.pdf") {
		t.Error("expected .pdf not to be a text file")
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
	}

	for _, tt := range tests {
		if got := FormatFileSize(tt.size); got != tt.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}
