package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var unsafeChars = strings.NewReplacer(
	" ", "_",
	"#", "",
	"?", "",
)

// SanitizeFilename makes an uploaded filename safe for storage paths: spaces
// become underscores, '#' and '?' are stripped, and accented Latin letters
// fold to their ASCII base (ó -> o).
func SanitizeFilename(name string) string {
	replaced := unsafeChars.Replace(name)

	// NFD decompose, drop combining marks, recompose. The chain is stateful,
	// so build it per call.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, replaced)
	if err != nil {
		return replaced
	}

	return folded
}

// MIMEType maps a filename extension to the Content-Type served on download.
// Unrecognized extensions return "" and get no Content-Type override.
func MIMEType(filename string) string {
	parts := strings.Split(filename, ".")
	ext := strings.ToLower(parts[len(parts)-1])

	switch ext {
	case "pdf":
		return "application/pdf"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "txt":
		return "text/plain"
	case "mp3":
		return "audio/mpeg"
	case "wav":
		return "audio/wav"
	case "ogg":
		return "audio/ogg"
	default:
		return ""
	}
}
