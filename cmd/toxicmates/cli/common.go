package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/toxicmates/internal/config"
	"github.com/felixgeelhaar/toxicmates/internal/network"
	"github.com/felixgeelhaar/toxicmates/internal/observe"
	"github.com/felixgeelhaar/toxicmates/internal/store"
)

func settingsPath() string {
	if dbPath != "" {
		return dbPath
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".toxicmates", "settings.db")
}

func openStore() (store.Settings, error) {
	s, err := store.NewSQLiteStore(settingsPath())
	if err != nil {
		return nil, fmt.Errorf("failed to init store: %w", err)
	}
	return s, nil
}

func newObserver(out io.Writer, cfg config.Config) *observe.Observer {
	if jsonOutput || cfg.LogFormat == config.FormatJSON {
		return observe.NewJSON(out, verbose)
	}
	return observe.New(out, verbose)
}

// session is a fresh network configured from the settings store.
type session struct {
	cfg     config.Config
	obs     *observe.Observer
	network *network.Service
}

func newSession(logOut io.Writer) (*session, error) {
	s, err := openStore()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	cfg, err := config.Load(s)
	if err != nil {
		return nil, err
	}

	obs := newObserver(logOut, cfg)
	obs.Log().Debug().
		Int("feed_capacity", cfg.FeedCapacity).
		Int("mailbox_capacity", cfg.MailboxCapacity).
		Msg("configuration loaded")

	return &session{
		cfg:     cfg,
		obs:     obs,
		network: network.New(cfg, obs, nil),
	}, nil
}

func (s *session) Close() error {
	return s.obs.Close()
}
