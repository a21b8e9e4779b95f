package chats

import (
	"context"

	"github.com/clauseguard/clauseguard/internal/kvstore"
	"github.com/clauseguard/clauseguard/internal/logging"
	"github.com/clauseguard/clauseguard/internal/models"
)

// Default bounds for cached chat state. The list keeps the newest entries
// as delivered by the remote (which sorts); message history keeps the most
// recent messages, losing old history but never recent history.
const (
	MaxListEntries = 50
	MaxMessages    = 100
)

// Cache implements Mirror on top of the key-value store.
type Cache struct {
	store       kvstore.Store
	log         logging.Logger
	maxList     int
	maxMessages int
}

var _ Mirror = (*Cache)(nil)

// New returns a Cache with the default bounds.
func New(store kvstore.Store, log logging.Logger) *Cache {
	return NewBounded(store, log, MaxListEntries, MaxMessages)
}

// NewBounded returns a Cache with custom bounds; non-positive values fall
// back to the defaults.
func NewBounded(store kvstore.Store, log logging.Logger, maxList, maxMessages int) *Cache {
	if maxList <= 0 {
		maxList = MaxListEntries
	}
	if maxMessages <= 0 {
		maxMessages = MaxMessages
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Cache{store: store, log: log, maxList: maxList, maxMessages: maxMessages}
}

func (c *Cache) List(ctx context.Context, userID string) ([]models.ChatListEntry, error) {
	if userID == "" {
		return []models.ChatListEntry{}, nil
	}

	var entries []models.ChatListEntry
	ok, err := kvstore.GetJSON(ctx, c.store, kvstore.ChatListKey(userID), &entries)
	if err != nil {
		return nil, err
	}
	if !ok || entries == nil {
		return []models.ChatListEntry{}, nil
	}
	return entries, nil
}

func (c *Cache) SetList(ctx context.Context, userID string, entries []models.ChatListEntry) error {
	if userID == "" {
		return nil
	}
	if len(entries) > c.maxList {
		entries = entries[:c.maxList]
	}
	if entries == nil {
		entries = []models.ChatListEntry{}
	}
	return kvstore.SetJSON(ctx, c.store, kvstore.ChatListKey(userID), entries)
}

func (c *Cache) Messages(ctx context.Context, chatID string) ([]models.ChatMessage, error) {
	if chatID == "" {
		return []models.ChatMessage{}, nil
	}

	var msgs []models.ChatMessage
	ok, err := kvstore.GetJSON(ctx, c.store, kvstore.ChatMessagesKey(chatID), &msgs)
	if err != nil {
		return nil, err
	}
	if !ok || msgs == nil {
		return []models.ChatMessage{}, nil
	}
	return msgs, nil
}

func (c *Cache) SetMessages(ctx context.Context, chatID string, msgs []models.ChatMessage) error {
	if chatID == "" {
		return nil
	}
	if len(msgs) > c.maxMessages {
		msgs = msgs[len(msgs)-c.maxMessages:]
	}
	if msgs == nil {
		msgs = []models.ChatMessage{}
	}
	return kvstore.SetJSON(ctx, c.store, kvstore.ChatMessagesKey(chatID), msgs)
}

func (c *Cache) Meta(ctx context.Context, chatID string) (*models.ChatMeta, error) {
	if chatID == "" {
		return nil, nil
	}

	var meta models.ChatMeta
	ok, err := kvstore.GetJSON(ctx, c.store, kvstore.ChatMetaKey(chatID), &meta)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &meta, nil
}

func (c *Cache) SetMeta(ctx context.Context, chatID string, meta *models.ChatMeta) error {
	if chatID == "" || meta == nil {
		return nil
	}
	return kvstore.SetJSON(ctx, c.store, kvstore.ChatMetaKey(chatID), meta)
}
