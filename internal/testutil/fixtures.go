package testutil

import (
	"testing"

	"github.com/google/uuid"

	"github.com/udisondev/auraforge/internal/game/character"
	"github.com/udisondev/auraforge/internal/model"
)

// Fixtures содержит заранее подготовленные тестовые данные.
var Fixtures = struct {
	PlayerName string
	Class      model.Class
	Capacity   int
}{
	PlayerName: "Igris",
	Class:      model.ClassWarrior,
	Capacity:   10,
}

// NewCharacter создаёт персонажа из Fixtures.
func NewCharacter(tb testing.TB) *character.Character {
	tb.Helper()

	p, err := model.NewPlayer(Fixtures.PlayerName, Fixtures.Class)
	if err != nil {
		tb.Fatalf("creating player: %v", err)
	}
	return character.New(p, Fixtures.Capacity)
}

// NewItem возвращает заполненный предмет для slot.
func NewItem(slot model.Slot, power int64) model.Item {
	it := model.Item{
		ID:         uuid.New(),
		TemplateID: "fixture_" + slot.String(),
		Name:       "Fixture " + slot.String(),
		Slot:       slot,
		Rarity:     model.RarityHero,
		Quality:    model.QualityEpic,
		Level:      12,
		Bonus:      model.Attributes{Strength: 7, Dexterity: 2, Intellect: 1, Vitality: 5},
		CritRate:   1.5,
		Speed:      2.5,
		Power:      power,
		SellValue:  power/200 + 5,
	}
	switch {
	case slot == model.SlotMainHand:
		it.WeaponDamageMin, it.WeaponDamageMax = 30, 40
	case slot == model.SlotOffHand:
		it.WeaponDamageMin, it.WeaponDamageMax = 12, 12
	case slot.IsArmor():
		it.Armor = 18
	}
	return it
}
