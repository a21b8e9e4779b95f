// Package chats maintains the device-local mirror of a user's remote chat
// state: the per-user chat list, per-chat message arrays, and per-chat
// metadata. It is a read-through/write-through mirror: writes always
// replace prior content wholesale, reads return the last written snapshot
// (or an empty result, never an error, when nothing is cached).
package chats

import (
	"context"

	"github.com/clauseguard/clauseguard/internal/models"
)

// Mirror describes the chat mirror-cache operations.
type Mirror interface {
	// List returns the cached chat summaries for a user, newest-first.
	// A never-written or corrupted key yields an empty list.
	List(ctx context.Context, userID string) ([]models.ChatListEntry, error)

	// SetList replaces the cached list, truncated to the newest MaxListEntries.
	SetList(ctx context.Context, userID string, entries []models.ChatListEntry) error

	// Messages returns the cached message history for one chat.
	Messages(ctx context.Context, chatID string) ([]models.ChatMessage, error)

	// SetMessages replaces the cached history, keeping only the most recent
	// MaxMessages by dropping from the front.
	SetMessages(ctx context.Context, chatID string, msgs []models.ChatMessage) error

	// Meta returns the cached metadata for one chat, nil when absent.
	Meta(ctx context.Context, chatID string) (*models.ChatMeta, error)

	// SetMeta replaces the cached metadata. A nil meta is a no-op.
	SetMeta(ctx context.Context, chatID string, meta *models.ChatMeta) error
}
