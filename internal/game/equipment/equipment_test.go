package equipment

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/auraforge/internal/model"
)

func testItem(slot model.Slot) model.Item {
	return model.Item{
		ID:         uuid.New(),
		TemplateID: "test_" + slot.String(),
		Name:       slot.String(),
		Slot:       slot,
	}
}

func TestEquip_ReplacesSameSlot(t *testing.T) {
	t.Parallel()

	eq := New()
	first := testItem(model.SlotHead)
	second := testItem(model.SlotHead)

	replaced, err := eq.Equip(first)
	require.NoError(t, err)
	assert.True(t, replaced.IsZero())

	replaced, err = eq.Equip(second)
	require.NoError(t, err)
	assert.Equal(t, first.ID, replaced.ID)

	got, ok := eq.Get(model.SlotHead)
	require.True(t, ok)
	assert.Equal(t, second.ID, got.ID)
	assert.Equal(t, 1, eq.Count())
}

func TestEquip_Errors(t *testing.T) {
	t.Parallel()

	eq := New()

	_, err := eq.Equip(model.Item{})
	require.ErrorIs(t, err, ErrEmptyItem)

	bad := testItem(model.SlotAny)
	_, err = eq.Equip(bad)
	require.ErrorIs(t, err, ErrInvalidSlot)

	bad.Slot = model.Slot(42)
	_, err = eq.Equip(bad)
	require.ErrorIs(t, err, ErrInvalidSlot)

	assert.Equal(t, 0, eq.Count())
}

func TestUnequip(t *testing.T) {
	t.Parallel()

	eq := New()
	it := testItem(model.SlotRing)
	_, err := eq.Equip(it)
	require.NoError(t, err)

	got, ok := eq.Unequip(model.SlotRing)
	require.True(t, ok)
	assert.Equal(t, it.ID, got.ID)

	_, ok = eq.Unequip(model.SlotRing)
	assert.False(t, ok, "slot is already empty")

	_, ok = eq.Unequip(model.SlotAny)
	assert.False(t, ok)
}

func TestItems_OrderedBySlot(t *testing.T) {
	t.Parallel()

	eq := New()
	for _, s := range []model.Slot{model.SlotArtifact, model.SlotMainHand, model.SlotBoots} {
		_, err := eq.Equip(testItem(s))
		require.NoError(t, err)
	}

	items := eq.Items()
	require.Len(t, items, 3)
	assert.Equal(t, model.SlotMainHand, items[0].Slot)
	assert.Equal(t, model.SlotBoots, items[1].Slot)
	assert.Equal(t, model.SlotArtifact, items[2].Slot)
}

func TestTotals(t *testing.T) {
	t.Parallel()

	eq := New()
	assert.Equal(t, model.EquipmentBonusTotals{}, eq.Totals())

	weapon := testItem(model.SlotMainHand)
	weapon.Bonus = model.Attributes{Strength: 10}
	weapon.WeaponDamageMin = 8
	weapon.WeaponDamageMax = 12
	weapon.CritRate = 2.5

	chest := testItem(model.SlotChest)
	chest.Bonus = model.Attributes{Strength: 3, Vitality: 7}
	chest.Armor = 40
	chest.AuraBonusPercent = 1.5
	chest.Speed = 1

	_, err := eq.Equip(weapon)
	require.NoError(t, err)
	_, err = eq.Equip(chest)
	require.NoError(t, err)

	tot := eq.Totals()
	assert.Equal(t, model.Attributes{Strength: 13, Vitality: 7}, tot.Attributes)
	assert.Equal(t, 8, tot.WeaponDamageMin)
	assert.Equal(t, 12, tot.WeaponDamageMax)
	assert.Equal(t, 40, tot.Armor)
	assert.InDelta(t, 2.5, tot.CritRate, 1e-9)
	assert.InDelta(t, 1.5, tot.AuraPercent, 1e-9)
	assert.InDelta(t, 1.0, tot.Speed, 1e-9)

	_, ok := eq.Unequip(model.SlotMainHand)
	require.True(t, ok)
	tot = eq.Totals()
	assert.Equal(t, 0, tot.WeaponDamageMax)
	assert.Equal(t, 3, tot.Attributes.Strength)
}
