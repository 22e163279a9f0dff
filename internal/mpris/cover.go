package mpris

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

var (
	artStems = []string{"cover", "folder", "front", "album"}
	artExts  = []string{".jpg", ".jpeg", ".png"}
)

// FindAlbumArt returns the image next to trackPath that best matches a
// known cover name, or "" when the folder has none. Names compare
// case-insensitively.
func FindAlbumArt(trackPath string) string {
	dir := filepath.Dir(trackPath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	best, bestRank := "", len(artStems)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.ToLower(e.Name())
		ext := filepath.Ext(name)
		if !lo.Contains(artExts, ext) {
			continue
		}
		rank := lo.IndexOf(artStems, strings.TrimSuffix(name, ext))
		if rank >= 0 && rank < bestRank {
			best, bestRank = filepath.Join(dir, e.Name()), rank
		}
	}
	return best
}
