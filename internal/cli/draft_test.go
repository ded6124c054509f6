package cli

import "testing"

func TestValidateScoreFlag(t *testing.T) {
	tests := []struct {
		name        string
		score       int
		expectError bool
	}{
		{"lower bound", 0, false},
		{"upper bound", 100, false},
		{"typical", 82, false},
		{"negative", -1, true},
		{"above range", 120, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateScoreFlag(tt.score)
			if tt.expectError && err == nil {
				t.Errorf("expected error for score %d", tt.score)
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error for score %d: %v", tt.score, err)
			}
		})
	}
}
