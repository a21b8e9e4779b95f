// Package prefs persists small device-local user preferences. Today that
// is only the last app language, kept so the UI can render in the right
// language before any remote profile loads. The store is constructed and
// passed explicitly; there is no hidden one-time initialization.
package prefs

import (
	"context"
	"errors"

	"github.com/clauseguard/clauseguard/internal/common"
	"github.com/clauseguard/clauseguard/internal/kvstore"
)

type Store struct {
	store kvstore.Store
}

func New(store kvstore.Store) *Store {
	return &Store{store: store}
}

// Language returns the last stored language code, or "" when none is set.
func (s *Store) Language(ctx context.Context) (string, error) {
	data, err := s.store.Get(ctx, kvstore.KeyLastAppLanguage)
	if errors.Is(err, common.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SetLanguage stores the language code. An empty code is a no-op.
func (s *Store) SetLanguage(ctx context.Context, code string) error {
	if code == "" {
		return nil
	}
	return s.store.Set(ctx, kvstore.KeyLastAppLanguage, []byte(code))
}
