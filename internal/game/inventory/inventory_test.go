package inventory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/auraforge/internal/model"
)

func newItem() model.Item {
	return model.Item{ID: uuid.New(), TemplateID: "t", Slot: model.SlotRing}
}

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestNew_DefaultCapacity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultCapacity, New(0).Capacity())
	assert.Equal(t, DefaultCapacity, New(-3).Capacity())
	assert.Equal(t, 4, New(4).Capacity())
}

func TestTryAdd(t *testing.T) {
	t.Parallel()

	inv := New(2)
	require.NoError(t, inv.TryAdd(newItem()))
	require.NoError(t, inv.TryAdd(newItem()))
	require.ErrorIs(t, inv.TryAdd(newItem()), ErrFull)
	require.ErrorIs(t, inv.TryAdd(model.Item{}), ErrEmpty)

	assert.Equal(t, 2, inv.Len())
	assert.Equal(t, 0, inv.FreeSlots())
}

func TestRemoveAndGet(t *testing.T) {
	t.Parallel()

	inv := New(3)
	a, b := newItem(), newItem()
	require.NoError(t, inv.TryAdd(a))
	require.NoError(t, inv.TryAdd(b))

	got, ok := inv.Get(b.ID)
	require.True(t, ok)
	assert.Equal(t, b.ID, got.ID)

	removed, err := inv.Remove(a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, removed.ID)

	_, err = inv.Remove(a.ID)
	require.ErrorIs(t, err, ErrNotFound)

	items := inv.Items()
	require.Len(t, items, 1)
	assert.Equal(t, b.ID, items[0].ID)
}

func TestGrant_OverflowGoesToInbox(t *testing.T) {
	t.Parallel()

	inv := New(1)
	first, second := newItem(), newItem()

	assert.False(t, inv.Grant(first, SourceGate, now))
	assert.True(t, inv.Grant(second, SourceAnvil, now))

	assert.Equal(t, 1, inv.Len())
	inbox := inv.Inbox()
	require.Len(t, inbox, 1)
	assert.Equal(t, second.ID, inbox[0].Item.ID)
	assert.Equal(t, SourceAnvil, inbox[0].Source)
	assert.Equal(t, now, inbox[0].ReceivedAt)
}

func TestClaim(t *testing.T) {
	t.Parallel()

	inv := New(1)
	bagItem, pending := newItem(), newItem()
	inv.Grant(bagItem, SourceGate, now)
	inv.Grant(pending, SourceGate, now)

	_, err := inv.Claim(pending.ID)
	require.ErrorIs(t, err, ErrFull)

	_, err = inv.Claim(uuid.New())
	require.ErrorIs(t, err, ErrNotFound)

	_, err = inv.Remove(bagItem.ID)
	require.NoError(t, err)

	got, err := inv.Claim(pending.ID)
	require.NoError(t, err)
	assert.Equal(t, pending.ID, got.ID)
	assert.Empty(t, inv.Inbox())
	assert.Equal(t, 1, inv.Len())
}

func TestClaimAll(t *testing.T) {
	t.Parallel()

	inv := New(3)
	var granted []model.Item
	for range 3 {
		it := newItem()
		granted = append(granted, it)
		inv.Grant(it, SourceGate, now)
	}
	for range 4 {
		inv.Grant(newItem(), SourceAnvil, now)
	}
	require.Len(t, inv.Inbox(), 4)

	// Освобождаем два места.
	_, err := inv.Remove(granted[0].ID)
	require.NoError(t, err)
	_, err = inv.Remove(granted[1].ID)
	require.NoError(t, err)

	assert.Equal(t, 2, inv.ClaimAll())
	assert.Len(t, inv.Inbox(), 2)
	assert.Equal(t, 3, inv.Len())
	assert.Equal(t, 0, inv.ClaimAll())
}

func TestRestore(t *testing.T) {
	t.Parallel()

	inv := New(2)
	items := []model.Item{newItem(), newItem(), newItem()}
	pending := []InboxEntry{{Item: newItem(), Source: SourceGate, ReceivedAt: now}}

	inv.Restore(items, pending)

	assert.Equal(t, 2, inv.Len())
	inbox := inv.Inbox()
	require.Len(t, inbox, 2)
	assert.Equal(t, items[2].ID, inbox[0].Item.ID)
	assert.Equal(t, pending[0].Item.ID, inbox[1].Item.ID)
}
