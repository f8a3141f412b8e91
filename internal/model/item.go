package model

import (
	"fmt"

	"github.com/google/uuid"
)

// ItemLocation определяет где хранится предмет.
type ItemLocation int32

const (
	ItemLocationInventory ItemLocation = iota
	ItemLocationEquipped
	ItemLocationInbox
)

// String returns human-readable item location name.
func (il ItemLocation) String() string {
	switch il {
	case ItemLocationInventory:
		return "Inventory"
	case ItemLocationEquipped:
		return "Equipped"
	case ItemLocationInbox:
		return "Inbox"
	default:
		return "Unknown"
	}
}

// Item — сгенерированный экземпляр предмета.
// Все rolled-значения фиксируются при генерации и больше не меняются;
// тип передаётся по значению, поэтому контейнеры (inventory/equipment)
// не могут случайно его пропатчить.
type Item struct {
	ID         uuid.UUID
	TemplateID string
	Name       string

	Slot    Slot
	Rarity  Rarity
	Quality Quality
	Level   int // level at creation

	Bonus Attributes

	// Weapon damage: non-zero only for MainHand (range) and OffHand (min == max).
	WeaponDamageMin int
	WeaponDamageMax int

	// Armor: non-zero only for Head/Chest/Legs/Boots.
	Armor int

	CritRate   float64 // %
	CritDamage float64 // %
	Speed      float64 // flat

	AuraBonusPercent float64

	Power     int64
	SellValue int64
}

// IsZero reports whether the item is the zero value ("no item").
func (it Item) IsZero() bool {
	return it.ID == uuid.Nil && it.TemplateID == ""
}

// WeaponDamageAverage returns (min+max)/2.
func (it Item) WeaponDamageAverage() float64 {
	return float64(it.WeaponDamageMin+it.WeaponDamageMax) / 2
}

// String is used in logs.
func (it Item) String() string {
	return fmt.Sprintf("%s [%s %s %s lvl %d, power %d]",
		it.Name, it.Rarity, it.Quality, it.Slot, it.Level, it.Power)
}
