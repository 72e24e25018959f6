package common

import (
	"testing"
	"time"
)

func TestValidateInterval(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		// Valid Go duration strings (>= 1 second)
		{
			name:     "whole seconds",
			input:    "2s",
			expected: 2 * time.Second,
			wantErr:  false,
		},
		{
			name:     "minutes",
			input:    "5m",
			expected: 5 * time.Minute,
			wantErr:  false,
		},
		{
			name:     "combined duration",
			input:    "1m30s",
			expected: 1*time.Minute + 30*time.Second,
			wantErr:  false,
		},
		{
			name:    "milliseconds - should fail",
			input:   "500ms",
			wantErr: true,
		},
		{
			name:    "zero duration - should fail",
			input:   "0s",
			wantErr: true,
		},
		{
			name:     "duration with whitespace",
			input:    "  10s  ",
			expected: 10 * time.Second,
			wantErr:  false,
		},

		// Valid ISO 8601 durations (>= 1 second)
		{
			name:     "ISO 8601 seconds",
			input:    "PT2S",
			expected: 2 * time.Second,
			wantErr:  false,
		},
		{
			name:     "ISO 8601 minutes",
			input:    "PT5M",
			expected: 5 * time.Minute,
			wantErr:  false,
		},
		{
			name:     "ISO 8601 combined",
			input:    "PT1M30S",
			expected: 1*time.Minute + 30*time.Second,
			wantErr:  false,
		},

		// Invalid inputs
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "garbage",
			input:   "not-a-duration",
			wantErr: true,
		},
		{
			name:    "bare number",
			input:   "5",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateInterval(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ValidateInterval(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateInterval(%q) unexpected error: %v", tt.input, err)
				return
			}
			if got != tt.expected {
				t.Errorf("ValidateInterval(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
