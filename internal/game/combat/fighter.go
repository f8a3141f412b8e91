package combat

import "github.com/udisondev/auraforge/internal/model"

// Fighter — одноразовый snapshot бойца, собирается из DerivedStats
// перед каждым боем и выбрасывается после.
type Fighter struct {
	Class     model.Class
	MaxHealth int64

	// Weapon fighters: MainStatValue × roll(WeaponMin..WeaponMax) × LevelMultiplier.
	WeaponMin       int
	WeaponMax       int
	LevelMultiplier float64

	// Flat fighters: FlatDamage per attack.
	Flat       bool
	FlatDamage int64

	Armor      int
	ArmorCap   float64
	CritRate   float64 // [0, 100]
	CritDamage float64 // 150 = x1.5
	Speed      float64

	MainStat      model.StatType
	MainStatValue int
	LifestealRate float64
}

// PlayerFighter builds a fighter that rolls its weapon range on every attack.
func PlayerFighter(ds model.DerivedStats) Fighter {
	f := baseFighter(ds)
	f.WeaponMin = max(1, ds.WeaponDamageMin)
	f.WeaponMax = max(f.WeaponMin, ds.WeaponDamageMax)
	f.LevelMultiplier = ds.LevelDamageMultiplier
	return f
}

// FlatFighter builds a fighter that deals the precomputed ds.Damage per attack.
func FlatFighter(ds model.DerivedStats) Fighter {
	f := baseFighter(ds)
	f.Flat = true
	f.FlatDamage = max(1, ds.Damage)
	return f
}

func baseFighter(ds model.DerivedStats) Fighter {
	return Fighter{
		Class:         ds.Class,
		MaxHealth:     max(1, ds.MaxHealth),
		Armor:         max(0, ds.Armor),
		ArmorCap:      ds.ArmorCap,
		CritRate:      ds.CritRate,
		CritDamage:    ds.CritDamage,
		Speed:         ds.Speed,
		MainStat:      ds.MainStat,
		MainStatValue: ds.MainStatValue,
		LifestealRate: ds.LifestealRate,
	}
}
