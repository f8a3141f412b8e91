package data

import "github.com/udisondev/auraforge/internal/model"

// WeaponKind — как слот роллит weapon damage.
type WeaponKind int32

const (
	WeaponNone  WeaponKind = iota
	WeaponRange            // MainHand: min..max, ролл на каждую атаку
	WeaponFlat             // OffHand: min == max
)

// SubstatRoll — шанс появления сабстата и его интенсивность.
// Chance == 0 означает, что сабстат на этом слоте не роллится.
type SubstatRoll struct {
	Chance    float64
	Intensity float64
}

// SlotPolicy — правила генерации боевых сабстатов для слота.
type SlotPolicy struct {
	Slot model.Slot

	Weapon       WeaponKind
	WeaponFactor float64 // budget multiplier for base damage
	WeaponJitter [2]int  // inclusive int jitter for flat damage

	ArmorFactor float64 // 0 = slot never rolls armor
	ArmorJitter [2]int  // inclusive int jitter

	CritRate   SubstatRoll
	CritDamage SubstatRoll
	Speed      SubstatRoll
}

// slotPolicies indexed by model.Slot ordinal.
var slotPolicies = [...]SlotPolicy{
	model.SlotMainHand: {
		Slot: model.SlotMainHand, Weapon: WeaponRange, WeaponFactor: 2.5, WeaponJitter: [2]int{-2, 2},
		CritRate:   SubstatRoll{Chance: 0.30, Intensity: 0.4},
		CritDamage: SubstatRoll{Chance: 0.25, Intensity: 0.4},
		Speed:      SubstatRoll{Chance: 0.15, Intensity: 0.3},
	},
	model.SlotOffHand: {
		Slot: model.SlotOffHand, Weapon: WeaponFlat, WeaponFactor: 1.0, WeaponJitter: [2]int{-2, 3},
		CritRate:   SubstatRoll{Chance: 0.35, Intensity: 0.5},
		CritDamage: SubstatRoll{Chance: 0.30, Intensity: 0.5},
		Speed:      SubstatRoll{Chance: 0.20, Intensity: 0.3},
	},
	model.SlotHead: {
		Slot: model.SlotHead, ArmorFactor: 0.9, ArmorJitter: [2]int{-2, 3},
		CritRate:   SubstatRoll{Chance: 0.25, Intensity: 0.4},
		CritDamage: SubstatRoll{Chance: 0.20, Intensity: 0.3},
	},
	model.SlotChest: {
		Slot: model.SlotChest, ArmorFactor: 1.2, ArmorJitter: [2]int{-2, 4},
		CritDamage: SubstatRoll{Chance: 0.25, Intensity: 0.3},
		Speed:      SubstatRoll{Chance: 0.15, Intensity: 0.2},
	},
	model.SlotLegs: {
		Slot: model.SlotLegs, ArmorFactor: 1.0, ArmorJitter: [2]int{-2, 3},
		CritRate: SubstatRoll{Chance: 0.20, Intensity: 0.3},
		Speed:    SubstatRoll{Chance: 0.20, Intensity: 0.3},
	},
	model.SlotBoots: {
		Slot: model.SlotBoots, ArmorFactor: 0.7, ArmorJitter: [2]int{-2, 2},
		CritRate: SubstatRoll{Chance: 0.15, Intensity: 0.3},
		Speed:    SubstatRoll{Chance: 0.80, Intensity: 0.7},
	},
	model.SlotBelt: {
		Slot:       model.SlotBelt,
		CritRate:   SubstatRoll{Chance: 0.40, Intensity: 0.5},
		CritDamage: SubstatRoll{Chance: 0.40, Intensity: 0.4},
		Speed:      SubstatRoll{Chance: 0.30, Intensity: 0.3},
	},
	model.SlotRing: {
		Slot:       model.SlotRing,
		CritRate:   SubstatRoll{Chance: 0.60, Intensity: 0.8},
		CritDamage: SubstatRoll{Chance: 0.60, Intensity: 0.8},
		Speed:      SubstatRoll{Chance: 0.25, Intensity: 0.3},
	},
	model.SlotAmulet: {
		Slot:       model.SlotAmulet,
		CritRate:   SubstatRoll{Chance: 0.50, Intensity: 0.7},
		CritDamage: SubstatRoll{Chance: 0.60, Intensity: 0.8},
		Speed:      SubstatRoll{Chance: 0.35, Intensity: 0.4},
	},
	model.SlotArtifact: {
		Slot:       model.SlotArtifact,
		CritRate:   SubstatRoll{Chance: 0.45, Intensity: 0.6},
		CritDamage: SubstatRoll{Chance: 0.45, Intensity: 0.6},
		Speed:      SubstatRoll{Chance: 0.40, Intensity: 0.5},
	},
}

// GetSlotPolicy returns substat policy for a slot.
// Unknown slots get an empty policy (no substats at all).
func GetSlotPolicy(s model.Slot) SlotPolicy {
	if s < 0 || int(s) >= len(slotPolicies) {
		return SlotPolicy{Slot: s}
	}
	return slotPolicies[s]
}
