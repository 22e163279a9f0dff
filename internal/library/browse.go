package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Item is one row of a folder listing.
type Item struct {
	Name       string
	Path       string
	IsFolder   bool
	Duration   time.Duration // files only, zero when unknown
	TrackCount int           // folders only
}

// FilterValue implements search.Item.
func (i Item) FilterValue() string { return i.Name }

// Listing is the content of one browsed folder.
type Listing struct {
	Path   string
	Parent string // empty at the root
	Items  []Item
}

// BrowseFolder lists the immediate children of path: folders first, then audio
// files, each group sorted by name. Parent is empty when path is root.
func (l *Library) BrowseFolder(ctx context.Context, path, root string) (Listing, error) {
	path = filepath.Clean(path)
	root = filepath.Clean(root)

	entries, err := os.ReadDir(path)
	if err != nil {
		return Listing{}, err
	}

	var folders, files []Item
	for _, e := range entries {
		if isHidden(e.Name()) {
			continue
		}
		full := filepath.Join(path, e.Name())
		if e.IsDir() {
			n, err := countAudio(ctx, full)
			if err != nil {
				return Listing{}, err
			}
			folders = append(folders, Item{
				Name:       e.Name(),
				Path:       full,
				IsFolder:   true,
				TrackCount: n,
			})
			continue
		}
		if !IsAudioFile(full) {
			continue
		}
		item := Item{Name: e.Name(), Path: full}
		if d, err := l.duration(full); err == nil {
			item.Duration = d
		}
		files = append(files, item)
	}

	byName := func(items []Item) {
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
		})
	}
	byName(folders)
	byName(files)

	listing := Listing{Path: path, Items: append(folders, files...)}
	if path != root && isWithin(root, path) {
		listing.Parent = filepath.Dir(path)
	}
	return listing, nil
}

func countAudio(ctx context.Context, dir string) (int, error) {
	files, err := discoverFiles(ctx, dir)
	if err != nil {
		if ctx.Err() != nil {
			return 0, err
		}
		return 0, nil
	}
	return len(files), nil
}

func isWithin(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Reveal opens the folder containing path in the desktop file manager.
func Reveal(path string) error {
	dir := path
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		dir = filepath.Dir(path)
	}
	cmd := openCommand(dir)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("reveal %s: %w", dir, err)
	}
	go cmd.Wait() //nolint:errcheck // detached opener
	return nil
}
