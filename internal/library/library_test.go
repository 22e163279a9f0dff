//nolint:goconst // test cases intentionally repeat strings for readability
package library

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/vimusic/internal/playlist"
)

func fakeDuration(path string) (time.Duration, error) {
	if filepath.Ext(path) == ".wav" {
		return 0, errors.New("corrupt")
	}
	return time.Duration(len(filepath.Base(path))) * time.Second, nil
}

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, n := range names {
		p := filepath.Join(root, n)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("not audio"), 0o600))
	}
}

func names(tracks []playlist.Track) []string {
	out := make([]string, len(tracks))
	for i, t := range tracks {
		out[i] = t.Name
	}
	return out
}

func TestLoadFolder(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"b.mp3",
		"a/z.FLAC",
		"a/y.wav",
		"notes.txt",
		".hidden/x.mp3",
		"c/.secret.mp3",
	)

	lib := New(WithDuration(fakeDuration))
	tracks, err := lib.LoadFolder(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, []string{"y.wav", "z.FLAC", "b.mp3"}, names(tracks))
	assert.Equal(t, filepath.Join(root, "a", "y.wav"), tracks[0].Path)
	assert.Equal(t, UnknownArtist, tracks[0].Artist)
	assert.Zero(t, tracks[0].Duration, "duration failure leaves duration unknown")
	assert.Equal(t, 6*time.Second, tracks[1].Duration)
}

func TestLoadFolderErrors(t *testing.T) {
	lib := New(WithDuration(fakeDuration))

	_, err := lib.LoadFolder(context.Background(), filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	root := t.TempDir()
	writeFiles(t, root, "a.mp3")
	_, err = lib.LoadFolder(context.Background(), filepath.Join(root, "a.mp3"))
	require.ErrorIs(t, err, ErrNotDirectory)
}

func TestLoadFolderCancelled(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.mp3", "b.mp3")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(WithDuration(fakeDuration)).LoadFolder(ctx, root)
	require.ErrorIs(t, err, context.Canceled)
}

func TestBrowseFolder(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"Zeta/one.mp3",
		"Zeta/deep/two.flac",
		"alpha/three.mp3",
		"empty/readme.txt",
		"b.mp3",
		"A.wav",
		"cover.jpg",
		".cache/x.mp3",
	)
	lib := New(WithDuration(fakeDuration))

	listing, err := lib.BrowseFolder(context.Background(), root, root)
	require.NoError(t, err)
	assert.Empty(t, listing.Parent)

	var got []string
	for _, it := range listing.Items {
		got = append(got, it.Name)
	}
	assert.Equal(t, []string{"alpha", "empty", "Zeta", "A.wav", "b.mp3"}, got)

	assert.True(t, listing.Items[0].IsFolder)
	assert.Equal(t, 1, listing.Items[0].TrackCount)
	assert.Equal(t, 0, listing.Items[1].TrackCount)
	assert.Equal(t, 2, listing.Items[2].TrackCount)
	assert.False(t, listing.Items[4].IsFolder)
	assert.Equal(t, 5*time.Second, listing.Items[4].Duration)

	sub, err := lib.BrowseFolder(context.Background(), filepath.Join(root, "Zeta"), root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(root), sub.Parent)
	require.Len(t, sub.Items, 2)
	assert.Equal(t, "deep", sub.Items[0].Name)
	assert.Equal(t, "one.mp3", sub.Items[1].Name)
}

func TestBrowseFolderOutsideRootHasNoParent(t *testing.T) {
	root := t.TempDir()
	other := t.TempDir()
	listing, err := New(WithDuration(fakeDuration)).BrowseFolder(context.Background(), other, root)
	require.NoError(t, err)
	assert.Empty(t, listing.Parent)
}

func TestArtists(t *testing.T) {
	tracks := []playlist.Track{
		{Name: "1", Artist: "beta"},
		{Name: "2", Artist: "Alpha"},
		{Name: "3", Artist: "Beta"},
		{Name: "4"},
		{Name: "5", Artist: "alpha"},
	}

	assert.Equal(t, []Artist{
		{Name: "Alpha", TrackCount: 2},
		{Name: "beta", TrackCount: 2},
		{Name: UnknownArtist, TrackCount: 1},
	}, Artists(tracks))

	assert.Equal(t, []string{"2", "5"}, names(ArtistTracks("ALPHA", tracks)))
	assert.Equal(t, []string{"4"}, names(ArtistTracks(UnknownArtist, tracks)))
	assert.Empty(t, ArtistTracks("nobody", tracks))
	assert.Empty(t, Artists(nil))
}

func TestLoadLibrary(t *testing.T) {
	one := t.TempDir()
	two := t.TempDir()
	writeFiles(t, one, "b.mp3", "shared/c.mp3")
	writeFiles(t, two, "a.mp3")
	missing := filepath.Join(t.TempDir(), "gone")

	lib := New(WithDuration(fakeDuration))
	res, err := lib.LoadLibrary(context.Background(), []string{one, missing, two, one})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.mp3", "b.mp3", "c.mp3"}, names(res.Tracks))
	require.Len(t, res.Failed, 1)
	assert.Equal(t, missing, res.Failed[0].Folder)
}
