package models

import "time"

// ChatListEntry is the summary record for one chat in a user's chat list.
// The list is replaced wholesale on every remote fetch and is assumed to
// arrive newest-first; the cache never re-sorts it.
type ChatListEntry struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	LastMessage string    `json:"lastMessage,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ChatMessage is one message in a chat's ordered history.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// ChatMeta is the free-form per-chat metadata record; at most one per chat,
// absent until first written.
type ChatMeta struct {
	Title       string    `json:"title,omitempty"`
	DocumentRef string    `json:"documentRef,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}
