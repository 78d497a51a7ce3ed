package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"accents and unsafe chars", "relatório #1?.pdf", "relatorio_1.pdf"},
		{"spaces", "my file.txt", "my_file.txt"},
		{"uppercase accents", "RELATÓRIO ANUAL.pdf", "RELATORIO_ANUAL.pdf"},
		{"cedilla and tilde", "canção.mp3", "cancao.mp3"},
		{"already clean", "photo.png", "photo.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestMIMEType(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"doc.pdf", "application/pdf"},
		{"photo.jpg", "image/jpeg"},
		{"photo.JPEG", "image/jpeg"},
		{"icon.png", "image/png"},
		{"notes.txt", "text/plain"},
		{"song.mp3", "audio/mpeg"},
		{"sound.wav", "audio/wav"},
		{"clip.ogg", "audio/ogg"},
		{"archive.zip", ""},
		{"noextension", ""},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, MIMEType(tt.filename))
		})
	}
}
