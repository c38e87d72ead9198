package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tartampluch/go-numerology/internal/config"
	"github.com/zalando/go-keyring"
)

// PasswordStore keeps address book passwords out of configuration files.
type PasswordStore interface {
	Get(user string) (string, error)
	Set(user, pass string) error
}

// KeyringStore stores passwords in the OS keyring under one service name.
type KeyringStore struct {
	Service string
}

// NewKeyringStore uses the application service name.
func NewKeyringStore() KeyringStore {
	return KeyringStore{Service: config.KeyringService}
}

func (k KeyringStore) Get(user string) (string, error) {
	pass, err := keyring.Get(k.Service, user)
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrKeyringRead, err)
	}
	return pass, nil
}

func (k KeyringStore) Set(user, pass string) error {
	return keyring.Set(k.Service, user, pass)
}

// ResolvePassword fills cfg.WebPass from store when the configuration did
// not set one. A missing keyring entry leaves it empty.
func ResolvePassword(cfg SourceConfig, store PasswordStore) SourceConfig {
	if cfg.WebPass != "" || cfg.WebUser == "" || store == nil {
		return cfg
	}

	pass, err := store.Get(cfg.WebUser)
	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, keyring.ErrNotFound) {
			level = slog.LevelDebug
		}
		slog.Log(context.Background(), level, config.MsgPassFail,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyUser, cfg.WebUser,
			config.LogKeyError, err,
		)
		return cfg
	}

	cfg.WebPass = pass
	return cfg
}
