package mpris

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindAlbumArt(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  string
	}{
		{"no images", []string{"01.mp3"}, ""},
		{"cover", []string{"01.mp3", "cover.jpg"}, "cover.jpg"},
		{"upper case", []string{"Folder.PNG"}, "Folder.PNG"},
		{"cover beats folder", []string{"folder.jpg", "cover.png"}, "cover.png"},
		{"unknown stem ignored", []string{"scan.jpg", "album.jpeg"}, "album.jpeg"},
		{"non-image ignored", []string{"cover.txt"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("x"), 0o600))
			}

			got := FindAlbumArt(filepath.Join(dir, "01.mp3"))

			if tt.want == "" {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, filepath.Join(dir, tt.want), got)
		})
	}
}

func TestFindAlbumArt_MissingFolder(t *testing.T) {
	assert.Empty(t, FindAlbumArt("/does/not/exist/01.mp3"))
}
