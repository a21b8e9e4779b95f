package chats

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clauseguard/clauseguard/internal/kvstore"
	"github.com/clauseguard/clauseguard/internal/logging"
	"github.com/clauseguard/clauseguard/internal/models"
)

func setupCache(t *testing.T) (*Cache, kvstore.Store) {
	t.Helper()
	s, err := kvstore.NewBadgerStore(kvstore.InMemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return New(s, logging.Nop()), s
}

func makeList(n int) []models.ChatListEntry {
	list := make([]models.ChatListEntry, n)
	for i := range list {
		list[i] = models.ChatListEntry{
			ID:        fmt.Sprintf("chat-%d", i),
			Title:     fmt.Sprintf("Chat %d", i),
			UpdatedAt: time.Now().Add(-time.Duration(i) * time.Minute).UTC(),
		}
	}
	return list
}

func makeMessages(n int) []models.ChatMessage {
	msgs := make([]models.ChatMessage, n)
	for i := range msgs {
		msgs[i] = models.ChatMessage{
			ID:      fmt.Sprintf("msg-%d", i),
			Role:    "user",
			Content: fmt.Sprintf("message %d", i),
		}
	}
	return msgs
}

func TestList_NeverWrittenIsEmpty(t *testing.T) {
	c, _ := setupCache(t)

	list, err := c.List(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestSetList_RoundTripPreservesOrder(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	in := makeList(3)
	require.NoError(t, c.SetList(ctx, "u1", in))

	got, err := c.List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestSetList_TruncatesToFirst50(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	in := makeList(75)
	require.NoError(t, c.SetList(ctx, "u1", in))

	got, err := c.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, MaxListEntries)
	assert.Equal(t, in[:MaxListEntries], got, "keeps the first (newest) entries in order")
}

func TestSetList_PerUserIsolation(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetList(ctx, "u1", makeList(2)))
	require.NoError(t, c.SetList(ctx, "u2", makeList(5)))

	got1, err := c.List(ctx, "u1")
	require.NoError(t, err)
	got2, err := c.List(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, got1, 2)
	assert.Len(t, got2, 5)
}

func TestSetMessages_KeepsLast100(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	in := makeMessages(130)
	require.NoError(t, c.SetMessages(ctx, "c1", in))

	got, err := c.Messages(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, got, MaxMessages)
	assert.Equal(t, in[30:], got, "drops from the front, relative order preserved")
	assert.Equal(t, "msg-129", got[len(got)-1].ID, "most recent message survives")
}

func TestSetMessages_ReplacesWholesale(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetMessages(ctx, "c1", makeMessages(10)))
	replacement := makeMessages(2)
	require.NoError(t, c.SetMessages(ctx, "c1", replacement))

	got, err := c.Messages(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, replacement, got)
}

func TestMessages_NeverWrittenIsEmpty(t *testing.T) {
	c, _ := setupCache(t)

	got, err := c.Messages(context.Background(), "c1")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMeta_RoundTripAndAbsent(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	got, err := c.Meta(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, got)

	meta := &models.ChatMeta{Title: "Lease review", DocumentRef: "doc-7"}
	require.NoError(t, c.SetMeta(ctx, "c1", meta))

	got, err = c.Meta(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *meta, *got)
}

func TestSetMeta_NilIsNoOp(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetMeta(ctx, "c1", nil))

	got, err := c.Meta(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMissingIDs_AreSilentNoOps(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetList(ctx, "", makeList(1)))
	require.NoError(t, c.SetMessages(ctx, "", makeMessages(1)))
	require.NoError(t, c.SetMeta(ctx, "", &models.ChatMeta{Title: "x"}))

	list, err := c.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, list)
	msgs, err := c.Messages(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestCorruptedValue_BehavesAsNeverWritten(t *testing.T) {
	c, s := setupCache(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, kvstore.ChatListKey("u1"), []byte("%%garbage%%")))
	require.NoError(t, s.Set(ctx, kvstore.ChatMessagesKey("c1"), []byte("{broken")))
	require.NoError(t, s.Set(ctx, kvstore.ChatMetaKey("c1"), []byte("[]garbage")))

	list, err := c.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)

	msgs, err := c.Messages(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, msgs)

	meta, err := c.Meta(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, meta)
}

func TestNewBounded_FallsBackToDefaults(t *testing.T) {
	s, err := kvstore.NewBadgerStore(kvstore.InMemoryConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	c := NewBounded(s, nil, 0, -1)
	assert.Equal(t, MaxListEntries, c.maxList)
	assert.Equal(t, MaxMessages, c.maxMessages)
}
