package character

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/auraforge/internal/game/inventory"
	"github.com/udisondev/auraforge/internal/model"
)

func newCharacter(t *testing.T, capacity int) *Character {
	t.Helper()
	p, err := model.NewPlayer("Jinwoo", model.ClassWarrior)
	require.NoError(t, err)
	return New(p, capacity)
}

func weapon(power int64, dmgMin, dmgMax int) model.Item {
	return model.Item{
		ID:              uuid.New(),
		TemplateID:      "sword",
		Slot:            model.SlotMainHand,
		WeaponDamageMin: dmgMin,
		WeaponDamageMax: dmgMax,
		Bonus:           model.Attributes{Strength: 4},
		Power:           power,
		SellValue:       power / 100,
	}
}

var now = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

func TestNew_DerivesStartingStats(t *testing.T) {
	t.Parallel()

	c := newCharacter(t, 5)
	ds := c.Stats()
	assert.Equal(t, model.ClassWarrior, ds.Class)
	assert.Equal(t, 1, ds.Level)
	assert.Equal(t, int64(92), ds.MaxHealth)
	assert.Equal(t, 5, c.Inventory().Capacity())
}

func TestSpendPoint(t *testing.T) {
	t.Parallel()

	c := newCharacter(t, 5)
	require.ErrorIs(t, c.SpendPoint(model.StatStrength), ErrNoPoints)

	require.Equal(t, 1, c.GainXP(100))
	before := c.Stats().MainStatValue

	var notified int
	c.OnStatsChanged(func(model.DerivedStats) { notified++ })

	require.NoError(t, c.SpendPoint(model.StatStrength))
	assert.Equal(t, before+1, c.Stats().MainStatValue)
	assert.Equal(t, 1, notified)
}

func TestGainXP_RecomputesOnLevelUp(t *testing.T) {
	t.Parallel()

	c := newCharacter(t, 5)
	var levels []int
	c.OnStatsChanged(func(ds model.DerivedStats) { levels = append(levels, ds.Level) })

	assert.Zero(t, c.GainXP(50))
	assert.Empty(t, levels, "no level, no recompute")

	assert.Equal(t, 1, c.GainXP(60))
	assert.Equal(t, []int{2}, levels)
	assert.Equal(t, 2, c.Stats().Level)
}

func TestEquip_SwapsIntoBag(t *testing.T) {
	t.Parallel()

	c := newCharacter(t, 2)
	old, better := weapon(100, 3, 5), weapon(500, 10, 14)
	require.NoError(t, c.Inventory().TryAdd(old))
	require.NoError(t, c.Inventory().TryAdd(better))

	require.NoError(t, c.Equip(old.ID))
	assert.Equal(t, 3, c.Stats().WeaponDamageMin)
	assert.Equal(t, 1, c.Inventory().Len())

	require.NoError(t, c.Equip(better.ID))
	ds := c.Stats()
	assert.Equal(t, 10, ds.WeaponDamageMin)
	assert.Equal(t, 14, ds.WeaponDamageMax)
	assert.Equal(t, 9, ds.Attributes.Strength)

	_, ok := c.Inventory().Get(old.ID)
	assert.True(t, ok, "replaced item returns to the bag")
	assert.Equal(t, 1, c.Inventory().Len())
}

func TestEquip_Errors(t *testing.T) {
	t.Parallel()

	c := newCharacter(t, 2)
	require.ErrorIs(t, c.Equip(uuid.New()), ErrItemNotFound)

	bad := weapon(1, 1, 1)
	bad.Slot = model.Slot(99)
	require.NoError(t, c.Inventory().TryAdd(bad))
	require.Error(t, c.Equip(bad.ID))

	_, ok := c.Inventory().Get(bad.ID)
	assert.True(t, ok, "failed equip keeps the item")
}

func TestUnequip(t *testing.T) {
	t.Parallel()

	c := newCharacter(t, 1)
	w := weapon(100, 7, 9)
	require.NoError(t, c.Inventory().TryAdd(w))
	require.NoError(t, c.Equip(w.ID))

	filler := weapon(1, 1, 1)
	require.NoError(t, c.Inventory().TryAdd(filler))
	require.ErrorIs(t, c.Unequip(model.SlotMainHand), ErrInventoryFull)
	assert.Equal(t, 7, c.Stats().WeaponDamageMin, "still equipped")

	_, err := c.Sell(filler.ID)
	require.NoError(t, err)
	require.NoError(t, c.Unequip(model.SlotMainHand))
	assert.Equal(t, 1, c.Stats().WeaponDamageMin)

	require.ErrorIs(t, c.Unequip(model.SlotMainHand), ErrNothingToEquip)
}

func TestStoreAndSell(t *testing.T) {
	t.Parallel()

	c := newCharacter(t, 1)
	a, b := weapon(2000, 1, 2), weapon(3000, 1, 2)

	assert.False(t, c.Store(a, inventory.SourceGate, now))
	assert.True(t, c.Store(b, inventory.SourceGate, now))

	gold := c.Player().Gold()
	got, err := c.Sell(a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20), got)
	assert.Equal(t, gold+20, c.Player().Gold())

	_, err = c.Sell(a.ID)
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestAutoEquip(t *testing.T) {
	t.Parallel()

	c := newCharacter(t, 4)
	weak, strong := weapon(100, 2, 3), weapon(900, 20, 25)
	ring := model.Item{ID: uuid.New(), TemplateID: "ring", Slot: model.SlotRing, Power: 50}

	for _, it := range []model.Item{weak, strong, ring} {
		require.NoError(t, c.Inventory().TryAdd(it))
	}

	swaps := c.AutoEquip()
	assert.GreaterOrEqual(t, swaps, 2)

	got, ok := c.Equipment().Get(model.SlotMainHand)
	require.True(t, ok)
	assert.Equal(t, strong.ID, got.ID)
	_, ok = c.Equipment().Get(model.SlotRing)
	assert.True(t, ok)
}

func TestEquip_ReplacedItemOverflowsToInbox(t *testing.T) {
	t.Parallel()

	c := newCharacter(t, 1)
	c.now = func() time.Time { return now }

	old := weapon(100, 3, 5)
	require.NoError(t, c.Inventory().TryAdd(old))
	require.NoError(t, c.Equip(old.ID))

	filler := weapon(1, 1, 1)
	require.NoError(t, c.Inventory().TryAdd(filler))
	assert.True(t, c.returnToBag(old), "full bag routes to inbox")

	inbox := c.Inventory().Inbox()
	require.Len(t, inbox, 1)
	assert.Equal(t, old.ID, inbox[0].Item.ID)
	assert.Equal(t, inventory.SourceEquip, inbox[0].Source)
	assert.Equal(t, now, inbox[0].ReceivedAt)
}

func TestCharacter_ConcurrentMovesKeepItems(t *testing.T) {
	t.Parallel()

	c := newCharacter(t, 3)
	seeded := []model.Item{weapon(100, 1, 2), weapon(200, 2, 3)}
	for _, it := range seeded {
		require.NoError(t, c.Inventory().TryAdd(it))
	}
	granted := make([]model.Item, 6)
	for i := range granted {
		granted[i] = weapon(int64(300+i), 1, 2)
	}

	var wg sync.WaitGroup
	for _, it := range granted {
		wg.Go(func() { c.Store(it, inventory.SourceGate, now) })
	}
	for range 20 {
		wg.Go(func() {
			for _, it := range c.Inventory().Items() {
				_ = c.Equip(it.ID)
			}
		})
	}
	wg.Wait()

	seen := make(map[uuid.UUID]int)
	if it, ok := c.Equipment().Get(model.SlotMainHand); ok {
		seen[it.ID]++
	}
	for _, it := range c.Inventory().Items() {
		seen[it.ID]++
	}
	for _, e := range c.Inventory().Inbox() {
		seen[e.Item.ID]++
	}

	for _, it := range append(seeded, granted...) {
		assert.Equal(t, 1, seen[it.ID], "item %s", it.ID)
	}
	assert.Len(t, seen, len(seeded)+len(granted))
}
