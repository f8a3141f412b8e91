// Package equipment — надетые предметы (slot → item) и их суммарные бонусы.
package equipment

import (
	"errors"
	"fmt"
	"sync"

	"github.com/udisondev/auraforge/internal/model"
)

// Equipment errors.
var (
	ErrInvalidSlot = errors.New("invalid equipment slot")
	ErrEmptyItem   = errors.New("item is empty")
)

// Equipment holds at most one item per slot.
// Totals() всегда пересчитывается из всех надетых предметов,
// инкрементальных патчей бонусов нет.
type Equipment struct {
	mu    sync.RWMutex
	slots [slotCount]model.Item
}

const slotCount = int(model.SlotArtifact) + 1

// New creates empty equipment.
func New() *Equipment {
	return &Equipment{}
}

func validSlot(s model.Slot) bool {
	return s >= 0 && int(s) < slotCount
}

// Equip puts it into its slot and returns the replaced item
// (zero Item if the slot was empty).
func (e *Equipment) Equip(it model.Item) (model.Item, error) {
	if it.IsZero() {
		return model.Item{}, ErrEmptyItem
	}
	if !validSlot(it.Slot) {
		return model.Item{}, fmt.Errorf("%w: %s", ErrInvalidSlot, it.Slot)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	replaced := e.slots[it.Slot]
	e.slots[it.Slot] = it
	return replaced, nil
}

// Unequip removes and returns the item in slot.
// Returns false if the slot is empty or invalid.
func (e *Equipment) Unequip(slot model.Slot) (model.Item, bool) {
	if !validSlot(slot) {
		return model.Item{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	it := e.slots[slot]
	if it.IsZero() {
		return model.Item{}, false
	}
	e.slots[slot] = model.Item{}
	return it, true
}

// Get returns the item in slot.
func (e *Equipment) Get(slot model.Slot) (model.Item, bool) {
	if !validSlot(slot) {
		return model.Item{}, false
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	it := e.slots[slot]
	return it, !it.IsZero()
}

// Items returns equipped items ordered by slot.
func (e *Equipment) Items() []model.Item {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []model.Item
	for _, it := range e.slots {
		if !it.IsZero() {
			out = append(out, it)
		}
	}
	return out
}

// Count returns number of equipped items.
func (e *Equipment) Count() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	n := 0
	for _, it := range e.slots {
		if !it.IsZero() {
			n++
		}
	}
	return n
}

// Totals sums bonuses of every equipped item.
func (e *Equipment) Totals() model.EquipmentBonusTotals {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var t model.EquipmentBonusTotals
	for _, it := range e.slots {
		if !it.IsZero() {
			t = t.AddItem(it)
		}
	}
	return t
}
