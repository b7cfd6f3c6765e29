package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/five82/realmboard/internal/config"
	"github.com/five82/realmboard/internal/logging"
	"github.com/five82/realmboard/internal/session"
	"github.com/five82/realmboard/internal/sotah"
	"github.com/five82/realmboard/internal/state"
	"github.com/five82/realmboard/internal/ui"
)

// Options configure the realmboard application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/realmboard/prefs.toml
	PollEvery  int    // seconds; zero uses the config value
}

// Run boots the realmboard TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	sessions, err := session.Open(ctx, cfg.SessionDB)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer func() { _ = sessions.Close() }()

	token, err := sessions.Token(ctx)
	if err != nil && !errors.Is(err, session.ErrNoToken) {
		logger.Warn("read session token", zap.Error(err))
	}

	client, err := sotah.NewClient(cfg.APIURL)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	interval := cfg.PollInterval()
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	initial := state.Default()
	initial.PreloadedToken = token
	store := state.NewStore(&initial, logger.Named("store"))
	local := loadLocalPrefs(opts.PrefsPath)

	syncer := newSyncer(store, client, sessions, local, logger.Named("sync"), interval)
	actions := newActions(store, client, sessions, local, syncer, logger.Named("actions"))

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		syncer.Run(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	logger.Info("realmboard started",
		zap.String("api", cfg.APIURL),
		zap.Duration("refresh", interval),
		zap.Bool("session", token != ""),
	)

	return ui.Run(ui.Options{
		Context:   ctx,
		Store:     store,
		Actions:   actions,
		ThemeName: local.get().Theme,
		LogPath:   cfg.Log.File,
		Logger:    logger.Named("ui"),
	})
}

// Logout removes the stored session token without starting the dashboard.
func Logout(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	sessions, err := session.Open(ctx, cfg.SessionDB)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer func() { _ = sessions.Close() }()
	return sessions.Clear(ctx)
}
