// Package character связывает профиль игрока, экипировку и сумку и держит
// актуальный snapshot производных статов.
//
// Любое изменение входов расчёта (уровень, базовые атрибуты, экипировка)
// вызывает полный пересчёт через stats.Derive и уведомляет подписчика.
package character

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/auraforge/internal/game/equipment"
	"github.com/udisondev/auraforge/internal/game/inventory"
	"github.com/udisondev/auraforge/internal/game/stats"
	"github.com/udisondev/auraforge/internal/model"
)

var (
	ErrNoPoints       = errors.New("no unspent points")
	ErrInventoryFull  = errors.New("inventory is full")
	ErrItemNotFound   = errors.New("item not found")
	ErrNothingToEquip = errors.New("slot is empty")
)

// Character is safe for concurrent use.
type Character struct {
	player *model.Player
	equip  *equipment.Equipment
	inv    *inventory.Inventory
	now    func() time.Time

	// opMu сериализует операции, перекладывающие предметы между сумкой и слотами.
	opMu sync.Mutex

	mu        sync.RWMutex
	derived   model.DerivedStats
	onChanged func(model.DerivedStats)
}

// New wraps player with empty equipment and a bag of the given capacity.
func New(player *model.Player, capacity int) *Character {
	c := &Character{
		player: player,
		equip:  equipment.New(),
		inv:    inventory.New(capacity),
		now:    time.Now,
	}
	c.derived = c.derive()
	return c
}

func (c *Character) ID() uuid.UUID                   { return c.player.ID() }
func (c *Character) Player() *model.Player           { return c.player }
func (c *Character) Equipment() *equipment.Equipment { return c.equip }
func (c *Character) Inventory() *inventory.Inventory { return c.inv }

// Stats returns the current derived stats snapshot.
func (c *Character) Stats() model.DerivedStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.derived
}

// OnStatsChanged registers a callback invoked after every recompute.
// Вызывается вне мьютекса.
func (c *Character) OnStatsChanged(fn func(model.DerivedStats)) {
	c.mu.Lock()
	c.onChanged = fn
	c.mu.Unlock()
}

// Recompute re-derives stats from current inputs and notifies the observer.
func (c *Character) Recompute() model.DerivedStats {
	ds := c.derive()

	c.mu.Lock()
	c.derived = ds
	fn := c.onChanged
	c.mu.Unlock()

	if fn != nil {
		fn(ds)
	}
	return ds
}

func (c *Character) derive() model.DerivedStats {
	return stats.Derive(c.player.Base(), c.equip.Totals(), c.player.Level(), c.player.Class())
}

// SpendPoint moves one unspent point into stat.
func (c *Character) SpendPoint(stat model.StatType) error {
	if !c.player.SpendPoint(stat) {
		return fmt.Errorf("spend %s: %w", stat, ErrNoPoints)
	}
	c.Recompute()
	return nil
}

// GainXP adds experience; recomputes stats if a level was gained.
func (c *Character) GainXP(amount int) int {
	gained := c.player.GainXP(amount)
	if gained > 0 {
		c.Recompute()
	}
	return gained
}

// Equip moves a bag item into its slot. The replaced item goes back
// into the freed bag slot; if the bag was filled in the meantime it
// lands in the inbox instead.
func (c *Character) Equip(itemID uuid.UUID) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if err := c.equipLocked(itemID); err != nil {
		return err
	}
	c.Recompute()
	return nil
}

func (c *Character) equipLocked(itemID uuid.UUID) error {
	it, err := c.inv.Remove(itemID)
	if err != nil {
		return fmt.Errorf("equip %s: %w", itemID, ErrItemNotFound)
	}

	replaced, err := c.equip.Equip(it)
	if err != nil {
		c.returnToBag(it)
		return fmt.Errorf("equip %s: %w", itemID, err)
	}
	if !replaced.IsZero() {
		c.returnToBag(replaced)
	}
	return nil
}

// returnToBag кладёт предмет обратно в сумку, при переполнении в inbox.
// Reports whether the item went to the inbox.
func (c *Character) returnToBag(it model.Item) bool {
	return c.inv.Grant(it, inventory.SourceEquip, c.now())
}

// Unequip moves the item in slot into the bag.
func (c *Character) Unequip(slot model.Slot) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if _, ok := c.equip.Get(slot); !ok {
		return fmt.Errorf("unequip %s: %w", slot, ErrNothingToEquip)
	}
	if c.inv.FreeSlots() <= 0 {
		return fmt.Errorf("unequip %s: %w", slot, ErrInventoryFull)
	}

	it, ok := c.equip.Unequip(slot)
	if !ok {
		return fmt.Errorf("unequip %s: %w", slot, ErrNothingToEquip)
	}
	if err := c.inv.TryAdd(it); err != nil {
		if _, err := c.equip.Equip(it); err != nil {
			c.returnToBag(it)
			c.Recompute()
		}
		return fmt.Errorf("unequip %s: %w", slot, ErrInventoryFull)
	}

	c.Recompute()
	return nil
}

// Store grants a new item: bag if there is room, inbox otherwise.
// Returns true when the item went to the inbox.
func (c *Character) Store(it model.Item, src inventory.Source, now time.Time) bool {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	return c.inv.Grant(it, src, now)
}

// Sell removes a bag item and credits its sell value as gold.
func (c *Character) Sell(itemID uuid.UUID) (int64, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	it, err := c.inv.Remove(itemID)
	if err != nil {
		return 0, fmt.Errorf("sell %s: %w", itemID, ErrItemNotFound)
	}
	c.player.AddGold(it.SellValue)
	return it.SellValue, nil
}

// AutoEquip equips every bag item whose Power beats the item in its slot.
// Returns number of swaps. Используется симулятором баланса.
func (c *Character) AutoEquip() int {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	swaps := 0
	for _, it := range c.inv.Items() {
		cur, ok := c.equip.Get(it.Slot)
		if ok && cur.Power >= it.Power {
			continue
		}
		if err := c.equipLocked(it.ID); err == nil {
			swaps++
		}
	}
	if swaps > 0 {
		c.Recompute()
	}
	return swaps
}
