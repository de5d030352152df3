package base64_test

import (
	"hotelbooker/shared/base64"
	"testing"
)

func TestGetContentType(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "png data uri",
			input:    "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg==",
			expected: "image/png",
		},
		{
			name:     "jpeg data uri",
			input:    "data:image/jpeg;base64,/9j/4AAQSkZJRgABAQEAYABgAAD",
			expected: "image/jpeg",
		},
		{
			name:     "plain url is not a data uri",
			input:    "https://cdn.example.com/hotels/test-inn.jpg",
			expected: "",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "missing data prefix",
			input:    "image/png;base64,iVBORw0KGgo=",
			expected: "",
		},
		{
			name:     "missing base64 marker",
			input:    "data:image/png,iVBORw0KGgo=",
			expected: "",
		},
		{
			name:     "only prefix and marker",
			input:    "data:;base64,",
			expected: "",
		},
		{
			name:     "content type with parameters",
			input:    "data:image/svg+xml;charset=utf-8;base64,PHN2Zz4=",
			expected: "image/svg+xml;charset=utf-8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := base64.GetContentType(tt.input)
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestExtension(t *testing.T) {
	tests := map[string]string{
		"image/jpeg": ".jpg",
		"image/png":  ".png",
		"image/webp": ".webp",
		"x/unknown":  "",
	}

	for contentType, expected := range tests {
		if got := base64.Extension(contentType); got != expected {
			t.Errorf("Extension(%q): expected %q, got %q", contentType, expected, got)
		}
	}
}
