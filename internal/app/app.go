// Package app is the modal core of the player. It routes every key through
// the open overlay or the current mode, owns the playlist, queue and views,
// drives the playback session and renders the screen.
package app

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/vimusic/internal/keymap"
	"github.com/llehouerou/vimusic/internal/library"
	"github.com/llehouerou/vimusic/internal/mpris"
	"github.com/llehouerou/vimusic/internal/notify"
	"github.com/llehouerou/vimusic/internal/playback"
	"github.com/llehouerou/vimusic/internal/player"
	"github.com/llehouerou/vimusic/internal/playlist"
	"github.com/llehouerou/vimusic/internal/settings"
	"github.com/llehouerou/vimusic/internal/state"
)

// Library is the filesystem collaborator.
type Library interface {
	LoadFolder(ctx context.Context, path string) ([]playlist.Track, error)
	BrowseFolder(ctx context.Context, path, root string) (library.Listing, error)
	LoadLibrary(ctx context.Context, folders []string) (library.ScanResult, error)
}

// Deps are the collaborators of the model. Engine, Store, Library and Keys
// are required.
type Deps struct {
	Engine  player.Interface
	Store   state.Interface
	Library Library
	Keys    *keymap.Resolver
	Logger  *slog.Logger

	// Announcer sends desktop notifications; nil disables them.
	Announcer *notify.Announcer
	// Bridge receives a snapshot after every update; nil disables MPRIS.
	Bridge *mpris.Bridge
	// Reveal opens a file's folder; defaults to library.Reveal.
	Reveal func(path string) error

	// ConfigChanges delivers config file writes; LoadKeys rebuilds the
	// resolver when one arrives.
	ConfigChanges <-chan string
	LoadKeys      func() KeymapReloadedMsg

	// StartFolder is opened at startup (command-line argument).
	StartFolder string
	// ConfigFolder is the default folder from the config file, used when
	// the store has none.
	ConfigFolder string
}

// Model is the whole application state. Update has a value receiver like
// every bubbletea model; handlers take a pointer to the local copy.
type Model struct {
	engine    player.Interface
	store     state.Interface
	lib       Library
	keys      *keymap.Resolver
	log       *slog.Logger
	announcer *notify.Announcer
	bridge    *mpris.Bridge
	reveal    func(path string) error

	configChanges <-chan string
	loadKeys      func() KeymapReloadedMsg
	startFolder   string
	configFolder  string

	playlist *playlist.Playlist
	queue    *playlist.Queue
	session  *playback.Session
	settings settings.Settings

	mode        Mode
	overlay     Overlay
	view        ViewMode
	count       int
	pending     pending
	visualStart int

	list   pane
	folder folderView
	artist artistView

	overlayCursor pane
	playlists     []state.PlaylistInfo
	pickerTracks  []playlist.Track
	helpLines     []helpLine

	input  textinput.Model
	source source
	status status

	tickers   tickers
	announced string

	width, height int
	quitting      bool
}

// New builds the model and restores persisted settings.
func New(d Deps) Model {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	reveal := d.Reveal
	if reveal == nil {
		reveal = library.Reveal
	}

	pl := playlist.New()
	q := playlist.NewQueue()
	ti := textinput.New()
	ti.Prompt = ""

	m := Model{
		engine:        d.Engine,
		store:         d.Store,
		lib:           d.Library,
		keys:          d.Keys,
		log:           logger,
		announcer:     d.Announcer,
		bridge:        d.Bridge,
		reveal:        reveal,
		configChanges: d.ConfigChanges,
		loadKeys:      d.LoadKeys,
		startFolder:   d.StartFolder,
		configFolder:  d.ConfigFolder,
		playlist:      pl,
		queue:         q,
		session:       playback.New(d.Engine, pl, q, playback.WithLogger(logger)),
		settings:      loadSettings(d.Store, logger),
		visualStart:   -1,
		list:          newPane(),
		folder:        folderView{pane: newPane()},
		artist:        artistView{artists: newPane(), tracks: newPane()},
		overlayCursor: newPane(),
		input:         ti,
		tickers:       newTickers(),
	}
	return m
}

func loadSettings(store state.Interface, logger *slog.Logger) settings.Settings {
	data, err := store.Settings()
	if err != nil {
		logger.Warn("read settings failed", "err", err)
		return settings.Default()
	}
	s, err := settings.Unmarshal(data)
	if err != nil {
		logger.Warn("parse settings failed", "err", err)
		return settings.Default()
	}
	return s
}

// Init opens the start folder and begins watching the config file.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if folder := m.initialFolder(); folder != "" {
		cmds = append(cmds, m.loadFolderCmd(folder, false))
	}
	if m.configChanges != nil {
		cmds = append(cmds, waitForConfigChange(m.configChanges))
	}
	return tea.Batch(cmds...)
}

// initialFolder picks the command-line folder, then the stored default,
// then the configured default.
func (m Model) initialFolder() string {
	if m.startFolder != "" {
		return m.startFolder
	}
	return m.defaultFolder()
}

func (m Model) defaultFolder() string {
	folder, err := m.store.DefaultFolder()
	if err != nil {
		m.log.Warn("read default folder failed", "err", err)
	}
	if folder != "" {
		return folder
	}
	return m.configFolder
}

func waitForConfigChange(changes <-chan string) tea.Cmd {
	return func() tea.Msg {
		path, ok := <-changes
		if !ok {
			return nil
		}
		return configChangedMsg{path: path}
	}
}

// Quitting reports whether the user asked to quit.
func (m Model) Quitting() bool {
	return m.quitting
}

// Close stops playback and releases the engine.
func (m Model) Close() error {
	return m.session.Close()
}
