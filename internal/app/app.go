// Package app wires the cache subsystem together: one key-value store and
// the components built on it. Construction happens exactly once, through
// New; nothing here is a package-level singleton.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/clauseguard/clauseguard/internal/cache/chats"
	"github.com/clauseguard/clauseguard/internal/cache/entitlements"
	"github.com/clauseguard/clauseguard/internal/config"
	"github.com/clauseguard/clauseguard/internal/guest"
	"github.com/clauseguard/clauseguard/internal/kvstore"
	"github.com/clauseguard/clauseguard/internal/logging"
	"github.com/clauseguard/clauseguard/internal/offer"
	"github.com/clauseguard/clauseguard/internal/prefs"
	"github.com/clauseguard/clauseguard/internal/remote"
)

// App owns the shared key-value store and exposes the cache components
// built on top of it.
type App struct {
	cfg *config.Config
	log logging.Logger
	kv  kvstore.Store

	Guest        *guest.Store
	Chats        *chats.Cache
	Entitlements *entitlements.Cache
	Offers       *offer.Scheduler
	Prefs        *prefs.Store
}

// New opens the local store described by cfg and builds every component on
// it. The caller must Close the returned App.
func New(cfg *config.Config, log logging.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: config is required")
	}
	if log == nil {
		log = logging.Nop()
	}

	kvCfg := kvstore.DefaultConfig(cfg.CacheDir)
	if cfg.InMemory {
		kvCfg = kvstore.InMemoryConfig()
	}
	kvCfg.Logger = log.With("component", "kvstore")

	kv, err := kvstore.NewBadgerStore(kvCfg)
	if err != nil {
		return nil, fmt.Errorf("app: open local store: %w", err)
	}

	return &App{
		cfg:          cfg,
		log:          log,
		kv:           kv,
		Guest:        guest.NewStore(kv, log.With("component", "guest")),
		Chats:        chats.NewBounded(kv, log.With("component", "chats"), cfg.MaxChatListEntries, cfg.MaxChatMessages),
		Entitlements: entitlements.New(kv, log.With("component", "entitlements")),
		Offers:       offer.NewScheduler(kv, log.With("component", "offer")),
		Prefs:        prefs.New(kv),
	}, nil
}

// Close releases the underlying store.
func (a *App) Close() error {
	return a.kv.Close()
}

// MigrateGuest pushes local guest analyses to the managed backend under
// userID. It requires the backend to be configured.
func (a *App) MigrateGuest(ctx context.Context, userID string) (guest.MigrationReport, error) {
	if a.cfg.BackendURL == "" || a.cfg.BackendAPIKey == "" {
		return guest.MigrationReport{}, errors.New("app: backend not configured")
	}

	saver, err := remote.NewSaver(remote.Config{
		URL:    a.cfg.BackendURL,
		APIKey: a.cfg.BackendAPIKey,
	}, a.log.With("component", "remote"))
	if err != nil {
		return guest.MigrationReport{}, err
	}

	return a.Guest.MigrateToRemote(ctx, userID, saver.SaveFn())
}
