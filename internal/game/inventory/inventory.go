// Package inventory — сумка персонажа фиксированной ёмкости и inbox для
// предметов, которые не поместились (дроп с гейта, крафт на наковальне).
package inventory

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/auraforge/internal/model"
)

// DefaultCapacity is the bag size of a new character.
const DefaultCapacity = 10

var (
	ErrFull     = errors.New("inventory is full")
	ErrNotFound = errors.New("item not found")
	ErrEmpty    = errors.New("item is empty")
)

// Source describes where an inbox item came from.
type Source string

const (
	SourceGate  Source = "gate"
	SourceAnvil Source = "anvil"
	SourceEquip Source = "equip"
)

// InboxEntry — предмет, ожидающий свободного места в сумке.
type InboxEntry struct {
	Item       model.Item
	Source     Source
	ReceivedAt time.Time
}

// Inventory keeps items in insertion order. Inbox is unbounded.
type Inventory struct {
	mu       sync.RWMutex
	capacity int
	items    []model.Item
	inbox    []InboxEntry
}

// New creates an empty inventory. capacity <= 0 falls back to DefaultCapacity.
func New(capacity int) *Inventory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Inventory{
		capacity: capacity,
		items:    make([]model.Item, 0, capacity),
	}
}

func (inv *Inventory) Capacity() int { return inv.capacity }

// Len returns number of items in the bag.
func (inv *Inventory) Len() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return len(inv.items)
}

// FreeSlots returns capacity - Len.
func (inv *Inventory) FreeSlots() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.capacity - len(inv.items)
}

// Items returns a copy of bag items.
func (inv *Inventory) Items() []model.Item {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return slices.Clone(inv.items)
}

// Get finds an item in the bag by id.
func (inv *Inventory) Get(id uuid.UUID) (model.Item, bool) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	if i := inv.indexOf(id); i >= 0 {
		return inv.items[i], true
	}
	return model.Item{}, false
}

// TryAdd puts it into the bag. Returns ErrFull when there is no room.
func (inv *Inventory) TryAdd(it model.Item) error {
	if it.IsZero() {
		return ErrEmpty
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	if len(inv.items) >= inv.capacity {
		return ErrFull
	}
	inv.items = append(inv.items, it)
	return nil
}

// Remove takes an item out of the bag.
func (inv *Inventory) Remove(id uuid.UUID) (model.Item, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	i := inv.indexOf(id)
	if i < 0 {
		return model.Item{}, ErrNotFound
	}
	it := inv.items[i]
	inv.items = slices.Delete(inv.items, i, i+1)
	return it, nil
}

// Grant puts it into the bag or, if the bag is full, into the inbox.
// Returns true when the item went to the inbox. Предмет никогда не теряется.
func (inv *Inventory) Grant(it model.Item, src Source, now time.Time) bool {
	if it.IsZero() {
		return false
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	if len(inv.items) < inv.capacity {
		inv.items = append(inv.items, it)
		return false
	}
	inv.inbox = append(inv.inbox, InboxEntry{Item: it, Source: src, ReceivedAt: now})
	return true
}

// Inbox returns a copy of pending entries, oldest first.
func (inv *Inventory) Inbox() []InboxEntry {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return slices.Clone(inv.inbox)
}

// Claim moves one inbox item into the bag.
func (inv *Inventory) Claim(id uuid.UUID) (model.Item, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	i := slices.IndexFunc(inv.inbox, func(e InboxEntry) bool { return e.Item.ID == id })
	if i < 0 {
		return model.Item{}, ErrNotFound
	}
	if len(inv.items) >= inv.capacity {
		return model.Item{}, ErrFull
	}
	it := inv.inbox[i].Item
	inv.items = append(inv.items, it)
	inv.inbox = slices.Delete(inv.inbox, i, i+1)
	return it, nil
}

// ClaimAll moves as many inbox items as fit, oldest first.
// Returns number of claimed items.
func (inv *Inventory) ClaimAll() int {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	n := min(inv.capacity-len(inv.items), len(inv.inbox))
	if n <= 0 {
		return 0
	}
	for _, e := range inv.inbox[:n] {
		inv.items = append(inv.items, e.Item)
	}
	inv.inbox = slices.Delete(inv.inbox, 0, n)
	return n
}

// Restore replaces bag and inbox contents (loading from storage).
// Items beyond capacity go to the inbox.
func (inv *Inventory) Restore(items []model.Item, inbox []InboxEntry) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	inv.items = inv.items[:0]
	inv.inbox = nil
	for _, it := range items {
		if len(inv.items) < inv.capacity {
			inv.items = append(inv.items, it)
			continue
		}
		inv.inbox = append(inv.inbox, InboxEntry{Item: it, Source: SourceEquip})
	}
	inv.inbox = append(inv.inbox, inbox...)
}

func (inv *Inventory) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(inv.items, func(it model.Item) bool { return it.ID == id })
}
