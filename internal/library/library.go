// Package library enumerates audio files on disk and groups them for browsing.
package library

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dhowden/tag"

	"github.com/llehouerou/vimusic/internal/player"
	"github.com/llehouerou/vimusic/internal/playlist"
)

const numWorkers = 8

// UnknownArtist is used for tracks without an artist tag.
const UnknownArtist = "Unknown Artist"

// ErrNotDirectory is returned when a folder operation targets a file.
var ErrNotDirectory = errors.New("not a directory")

// DurationFunc returns the duration of an audio file.
type DurationFunc func(path string) (time.Duration, error)

// Library reads audio folders from disk.
type Library struct {
	logger   *slog.Logger
	duration DurationFunc
}

// Option configures a Library.
type Option func(*Library)

// WithLogger sets the logger used for skipped files and folders.
func WithLogger(l *slog.Logger) Option {
	return func(lib *Library) { lib.logger = l }
}

// WithDuration replaces the duration reader.
func WithDuration(p DurationFunc) Option {
	return func(lib *Library) { lib.duration = p }
}

// New creates a Library that reads durations with the audio decoders.
func New(opts ...Option) *Library {
	l := &Library{
		logger:   slog.Default(),
		duration: player.ReadDuration,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// IsAudioFile reports whether path has a playable extension.
func IsAudioFile(path string) bool {
	return player.Supported(path)
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// discoverFiles walks root and returns audio file paths sorted lexically.
func discoverFiles(ctx context.Context, root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			// Unreadable subtrees are skipped, the rest of the walk continues.
			return nil //nolint:nilerr // intentionally skipping errors
		}
		if path != root && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !IsAudioFile(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// LoadFolder returns every audio file under path as a track, sorted by path.
func (l *Library) LoadFolder(ctx context.Context, path string) ([]playlist.Track, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, path)
	}

	files, err := discoverFiles(ctx, path)
	if err != nil {
		return nil, err
	}
	return l.readTracks(ctx, files)
}

// readTracks reads metadata in parallel while preserving the order of files.
func (l *Library) readTracks(ctx context.Context, files []string) ([]playlist.Track, error) {
	tracks := make([]playlist.Track, len(files))
	work := make(chan int)

	var wg sync.WaitGroup
	for range min(numWorkers, len(files)) {
		wg.Go(func() {
			for i := range work {
				tracks[i] = l.readTrack(files[i])
			}
		})
	}

	var cancelled error
	for i := range files {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		work <- i
	}
	close(work)
	wg.Wait()

	if cancelled != nil {
		return nil, cancelled
	}
	return tracks, nil
}

func (l *Library) readTrack(path string) playlist.Track {
	t := playlist.Track{
		Path:   path,
		Name:   filepath.Base(path),
		Artist: UnknownArtist,
	}

	if artist, album, err := readTags(path); err == nil {
		if artist != "" {
			t.Artist = artist
		}
		t.Album = album
	}

	d, err := l.duration(path)
	if err != nil {
		l.logger.Debug("read duration failed", "path", path, "err", err)
	} else {
		t.Duration = d
	}
	return t
}

func readTags(path string) (artist, album string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return "", "", err
	}

	artist = strings.TrimSpace(m.Artist())
	if artist == "" {
		artist = strings.TrimSpace(m.AlbumArtist())
	}
	return artist, strings.TrimSpace(m.Album()), nil
}
