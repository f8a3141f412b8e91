package data

import "github.com/udisondev/auraforge/internal/model"

// Default armor mitigation caps.
const (
	DefaultArmorCap = 0.50
	TankArmorCap    = 0.60
)

// ClassInfo — множители и пассивки одного класса.
// Stat Model, Loot Generator и Combat Resolver читают только эту таблицу,
// никаких switch по классу в формулах.
type ClassInfo struct {
	Class model.Class

	// MainStat scales damage and drives cross-type mitigation.
	MainStat model.StatType
	// SecondaryStat is the second focus of Epic+ item splits.
	SecondaryStat model.StatType

	DamageMultiplier float64
	HealthMultiplier float64

	SpeedBonus      float64 // flat, added before SpeedMultiplier
	SpeedMultiplier float64
	CritRateBonus   float64 // passive, %
	CritDamageBonus float64 // passive, %

	ArmorCap      float64
	LifestealRate float64
}

// classTable indexed by model.Class ordinal.
var classTable = [...]ClassInfo{
	model.ClassWarrior: {
		Class: model.ClassWarrior, MainStat: model.StatStrength, SecondaryStat: model.StatVitality,
		DamageMultiplier: 1.05, HealthMultiplier: 1.2, SpeedMultiplier: 1,
		ArmorCap: DefaultArmorCap,
	},
	model.ClassTank: {
		Class: model.ClassTank, MainStat: model.StatStrength, SecondaryStat: model.StatVitality,
		DamageMultiplier: 0.9, HealthMultiplier: 1.4, SpeedBonus: -10, SpeedMultiplier: 1,
		ArmorCap: TankArmorCap,
	},
	model.ClassAssassin: {
		Class: model.ClassAssassin, MainStat: model.StatDexterity, SecondaryStat: model.StatVitality,
		DamageMultiplier: 1.0, HealthMultiplier: 1.0, SpeedBonus: 15, SpeedMultiplier: 1,
		CritRateBonus: 5,
		ArmorCap:      DefaultArmorCap,
	},
	model.ClassArcher: {
		Class: model.ClassArcher, MainStat: model.StatDexterity, SecondaryStat: model.StatStrength,
		DamageMultiplier: 1.0, HealthMultiplier: 1.0, SpeedBonus: 10, SpeedMultiplier: 1,
		CritDamageBonus: 25,
		ArmorCap:        DefaultArmorCap,
	},
	model.ClassMage: {
		Class: model.ClassMage, MainStat: model.StatIntellect, SecondaryStat: model.StatVitality,
		DamageMultiplier: 1.0, HealthMultiplier: 1.0, SpeedMultiplier: 1,
		ArmorCap: DefaultArmorCap,
	},
	model.ClassNecromancer: {
		Class: model.ClassNecromancer, MainStat: model.StatIntellect, SecondaryStat: model.StatVitality,
		DamageMultiplier: 0.95, HealthMultiplier: 1.1, SpeedMultiplier: 1,
		ArmorCap:      DefaultArmorCap,
		LifestealRate: 0.15,
	},
}

// neutralClass is returned for unknown class values.
var neutralClass = ClassInfo{
	MainStat:         model.StatStrength,
	SecondaryStat:    model.StatVitality,
	DamageMultiplier: 1,
	HealthMultiplier: 1,
	SpeedMultiplier:  1,
	ArmorCap:         DefaultArmorCap,
}

// GetClassInfo returns class record. Unknown classes get neutral multipliers.
func GetClassInfo(c model.Class) ClassInfo {
	if c < 0 || int(c) >= len(classTable) {
		info := neutralClass
		info.Class = c
		return info
	}
	return classTable[c]
}
