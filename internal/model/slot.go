package model

// Slot — слот экипировки.
// Только MainHand/OffHand дают weapon damage, только Head/Chest/Legs/Boots дают armor.
type Slot int32

const (
	SlotMainHand Slot = iota
	SlotOffHand
	SlotHead
	SlotChest
	SlotLegs
	SlotBoots
	SlotBelt
	SlotRing
	SlotAmulet
	SlotArtifact
)

// SlotAny is a request wildcard: "any slot the class can use".
// Never stored on an item.
const SlotAny Slot = -1

// AllSlots lists every equipment slot.
var AllSlots = []Slot{
	SlotMainHand,
	SlotOffHand,
	SlotHead,
	SlotChest,
	SlotLegs,
	SlotBoots,
	SlotBelt,
	SlotRing,
	SlotAmulet,
	SlotArtifact,
}

// String returns human-readable slot name.
func (s Slot) String() string {
	switch s {
	case SlotAny:
		return "Any"
	case SlotMainHand:
		return "MainHand"
	case SlotOffHand:
		return "OffHand"
	case SlotHead:
		return "Head"
	case SlotChest:
		return "Chest"
	case SlotLegs:
		return "Legs"
	case SlotBoots:
		return "Boots"
	case SlotBelt:
		return "Belt"
	case SlotRing:
		return "Ring"
	case SlotAmulet:
		return "Amulet"
	case SlotArtifact:
		return "Artifact"
	default:
		return "Unknown"
	}
}

// IsWeapon returns true for slots that roll weapon damage.
func (s Slot) IsWeapon() bool {
	return s == SlotMainHand || s == SlotOffHand
}

// IsArmor returns true for slots that roll armor.
func (s Slot) IsArmor() bool {
	switch s {
	case SlotHead, SlotChest, SlotLegs, SlotBoots:
		return true
	default:
		return false
	}
}

// ParseSlot parses slot name (case-insensitive).
func ParseSlot(s string) (Slot, bool) {
	norm := normalizeEnumName(s)
	for _, sl := range AllSlots {
		if normalizeEnumName(sl.String()) == norm {
			return sl, true
		}
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler.
func (s Slot) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Slot) UnmarshalText(b []byte) error {
	v, ok := ParseSlot(string(b))
	if !ok {
		return &UnknownEnumError{Kind: "slot", Value: string(b)}
	}
	*s = v
	return nil
}
