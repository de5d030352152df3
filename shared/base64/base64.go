package base64

import (
	"mime"
	"strings"
)

// Marker separates the media type of a data URI from its payload.
const Marker = ";base64,"

func GetContentType(file string) string {
	if !strings.HasPrefix(file, "data:") {
		return ""
	}

	start := len("data:")
	end := strings.Index(file, Marker)

	if end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

// Extension returns a file extension for contentType, or an empty string if none is known.
func Extension(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	}

	exts, err := mime.ExtensionsByType(contentType)
	if err != nil || len(exts) == 0 {
		return ""
	}

	return exts[0]
}
