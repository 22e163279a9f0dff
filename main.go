package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/llehouerou/vimusic/internal/app"
	"github.com/llehouerou/vimusic/internal/config"
	"github.com/llehouerou/vimusic/internal/keymap"
	"github.com/llehouerou/vimusic/internal/library"
	"github.com/llehouerou/vimusic/internal/mpris"
	"github.com/llehouerou/vimusic/internal/notify"
	"github.com/llehouerou/vimusic/internal/player"
	"github.com/llehouerou/vimusic/internal/state"
	"github.com/llehouerou/vimusic/internal/stderr"
	"github.com/llehouerou/vimusic/internal/watch"
)

var (
	configPath string
	logPath    string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:          "vimusic [folder]",
	Short:        "A modal terminal music player driven by vim-style keys",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (default: $XDG_CONFIG_HOME/vimusic/config.toml)")
	rootCmd.Flags().StringVar(&logPath, "log-file", "", "log file (default: $XDG_STATE_HOME/vimusic/vimusic.log)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "log at debug level")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(_ *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, logFile, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	logger.Info("starting", "config", cfg.Paths)

	// Audio libraries write to fd 2, which would corrupt the screen.
	if capture, err := stderr.Start(logger); err != nil {
		logger.Warn("stderr capture unavailable", "err", err)
	} else {
		defer capture.Stop()
	}

	store, err := state.Open()
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	defer store.Close()

	keys := buildKeys(cfg.Keybindings)
	for _, e := range keys.Errs {
		logger.Warn("key binding skipped", "err", e)
	}

	var changes <-chan string
	watcher, err := watch.New(config.WatchPaths(configPath), watch.WithLogger(logger))
	if err != nil {
		logger.Warn("config watch unavailable", "err", err)
	} else {
		defer watcher.Close()
		changes = watcher.Changes()
	}

	var announcer *notify.Announcer
	if cfg.Notifications {
		n, err := notify.New()
		if err != nil {
			logger.Warn("notifications unavailable", "err", err)
		} else {
			announcer = notify.NewAnnouncer(n, mpris.FindAlbumArt)
		}
	}

	var program *tea.Program
	var bridge *mpris.Bridge
	if cfg.MPRISEnabled() {
		bridge = mpris.NewBridge(func(c mpris.Command) {
			program.Send(app.RemoteMsg(c))
		})
	}

	var start string
	if len(args) == 1 {
		start = args[0]
	}

	model := app.New(app.Deps{
		Engine:        player.New(),
		Store:         store,
		Library:       library.New(library.WithLogger(logger)),
		Keys:          keys.Keys,
		Logger:        logger,
		Announcer:     announcer,
		Bridge:        bridge,
		ConfigChanges: changes,
		LoadKeys:      reloadKeys,
		StartFolder:   start,
		ConfigFolder:  cfg.DefaultFolder,
	})
	program = tea.NewProgram(model, tea.WithAltScreen())

	if bridge != nil {
		adapter, err := mpris.New(bridge)
		if err != nil {
			logger.Warn("mpris unavailable", "err", err)
		} else {
			defer adapter.Close()
		}
	}

	final, err := program.Run()
	if m, ok := final.(app.Model); ok {
		if cerr := m.Close(); cerr != nil {
			logger.Warn("close player", "err", cerr)
		}
	}
	if announcer != nil {
		if derr := announcer.Dismiss(); derr != nil {
			logger.Debug("dismiss notification", "err", derr)
		}
	}
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

// openLog opens the log file named by the flag, the config or the XDG
// default, in that order.
func openLog(cfg *config.Config) (*slog.Logger, *os.File, error) {
	path := logPath
	if path == "" {
		path = cfg.LogFile
	}
	if path == "" {
		p, err := config.DefaultLogFile()
		if err != nil {
			return nil, nil, fmt.Errorf("log file: %w", err)
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f, nil
}

func buildKeys(raw map[string]string) app.KeymapReloadedMsg {
	overrides, errs := keymap.ParseOverrides(raw)
	return app.KeymapReloadedMsg{
		Keys: keymap.NewResolver(keymap.Defaults).WithOverrides(overrides),
		Errs: errs,
	}
}

// reloadKeys runs on the event loop after a config file write.
func reloadKeys() app.KeymapReloadedMsg {
	raw, err := config.LoadKeybindings(configPath)
	if err != nil {
		return app.KeymapReloadedMsg{Errs: []error{err}}
	}
	return buildKeys(raw)
}
