package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/clauseguard/clauseguard/internal/common"
)

// GetJSON reads key and unmarshals it into dst. It returns false both when
// the key is absent and when the stored bytes fail to parse: corrupted
// content is indistinguishable from a cache miss by contract, so it must
// never surface as an error to consumers. dst is left untouched on a miss.
func GetJSON(ctx context.Context, s Store, key string, dst any) (bool, error) {
	data, err := s.Get(ctx, key)
	if errors.Is(err, common.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		// Corruption policy: treat as never written.
		return false, nil
	}
	return true, nil
}

// SetJSON marshals v and durably replaces the value under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("kvstore: marshal %q: %w", key, err)
	}
	return s.Set(ctx, key, data)
}
