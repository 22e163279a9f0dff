package library

import (
	"context"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/llehouerou/vimusic/internal/playlist"
)

// Artist is an entry of the artist browser.
type Artist struct {
	Name       string
	TrackCount int
}

// FilterValue implements search.Item.
func (a Artist) FilterValue() string { return a.Name }

func artistOf(t playlist.Track) string {
	if t.Artist == "" {
		return UnknownArtist
	}
	return t.Artist
}

// Artists groups tracks case-insensitively by artist, sorted by name. The
// first spelling seen names the group.
func Artists(tracks []playlist.Track) []Artist {
	groups := lo.GroupBy(tracks, func(t playlist.Track) string {
		return strings.ToLower(artistOf(t))
	})
	out := make([]Artist, 0, len(groups))
	for _, ts := range groups {
		out = append(out, Artist{Name: artistOf(ts[0]), TrackCount: len(ts)})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if a != b {
			return a < b
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// ArtistTracks returns the tracks of artist in playlist order.
func ArtistTracks(artist string, tracks []playlist.Track) []playlist.Track {
	return lo.Filter(tracks, func(t playlist.Track, _ int) bool {
		return strings.EqualFold(artistOf(t), artist)
	})
}

// FolderError records a library folder that could not be scanned.
type FolderError struct {
	Folder string
	Err    error
}

// ScanResult is the merged outcome of scanning several library folders.
type ScanResult struct {
	Tracks []playlist.Track
	Failed []FolderError
}

// LoadLibrary scans every folder, skipping folders that fail, dedupes by path
// and sorts by track name.
func (l *Library) LoadLibrary(ctx context.Context, folders []string) (ScanResult, error) {
	var res ScanResult
	for _, folder := range folders {
		tracks, err := l.LoadFolder(ctx, folder)
		if err != nil {
			if ctx.Err() != nil {
				return ScanResult{}, ctx.Err()
			}
			l.logger.Warn("library folder scan failed", "folder", folder, "err", err)
			res.Failed = append(res.Failed, FolderError{Folder: folder, Err: err})
			continue
		}
		res.Tracks = append(res.Tracks, tracks...)
	}

	res.Tracks = lo.UniqBy(res.Tracks, func(t playlist.Track) string { return t.Path })
	sort.SliceStable(res.Tracks, func(i, j int) bool {
		a, b := strings.ToLower(res.Tracks[i].Name), strings.ToLower(res.Tracks[j].Name)
		if a != b {
			return a < b
		}
		return res.Tracks[i].Path < res.Tracks[j].Path
	})
	return res, nil
}
