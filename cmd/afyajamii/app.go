package main

import (
	"fmt"

	"github.com/juliet3570/afyajamii-client/internal/config"
	"github.com/juliet3570/afyajamii-client/internal/gateway"
	"github.com/juliet3570/afyajamii-client/internal/platform/logger"
	"github.com/juliet3570/afyajamii-client/internal/session"
)

// App wires the client together: config, logger, gateway and the session
// store, restored once at startup.
type App struct {
	Config   *config.Config
	Log      *logger.Logger
	API      *gateway.Client
	Sessions *session.Store
}

func NewApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	api, err := gateway.New(gateway.Options{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Log:     log,
	})
	if err != nil {
		return nil, err
	}

	// A failed keyring path (no resolvable config dir) degrades to an
	// in-memory session for this run.
	var keyring session.Keyring
	if path, err := config.Path("session.yaml"); err == nil {
		keyring = session.NewFileKeyring(path)
	} else {
		log.Warn("session persistence unavailable", "error", err)
	}

	sessions := session.NewStore(keyring, log)
	sessions.Restore()

	return &App{
		Config:   cfg,
		Log:      log,
		API:      api,
		Sessions: sessions,
	}, nil
}
