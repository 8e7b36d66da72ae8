package base64_test

import (
	"testing"

	"minka/shared/base64"
)

func TestGetContentType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "valid png data uri",
			input:    "data:image/png;base64,iVBORw0KGgo=",
			expected: "image/png",
		},
		{
			name:     "valid jpeg data uri",
			input:    "data:image/jpeg;base64,/9j/4AAQSkZJRg==",
			expected: "image/jpeg",
		},
		{
			name:     "missing base64 marker",
			input:    "data:image/png",
			expected: "",
		},
		{
			name:     "plain string",
			input:    "not a data uri",
			expected: "",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base64.GetContentType(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestGetContent(t *testing.T) {
	t.Run("valid data uri", func(t *testing.T) {
		got, err := base64.GetContent("data:text/plain;base64,aGVsbG8=")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if string(got) != "hello" {
			t.Errorf("expected %q, got %q", "hello", string(got))
		}
	})

	t.Run("missing marker", func(t *testing.T) {
		if _, err := base64.GetContent("aGVsbG8="); err == nil {
			t.Error("expected error for missing marker")
		}
	})

	t.Run("bad payload", func(t *testing.T) {
		if _, err := base64.GetContent("data:text/plain;base64,!!!"); err == nil {
			t.Error("expected error for bad payload")
		}
	})
}
