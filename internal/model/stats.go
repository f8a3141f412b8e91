package model

// EquipmentBonusTotals — сумма бонусов всех надетых предметов.
// Пересчитывается владельцем экипировки при каждом equip/unequip,
// Stat Model получает её как неизменяемый snapshot.
type EquipmentBonusTotals struct {
	Attributes  Attributes
	AuraPercent float64

	WeaponDamageMin int
	WeaponDamageMax int

	Armor      int
	CritRate   float64
	CritDamage float64
	Speed      float64
}

// AddItem accumulates one item's rolled values.
func (t EquipmentBonusTotals) AddItem(it Item) EquipmentBonusTotals {
	t.Attributes = t.Attributes.Add(it.Bonus)
	t.AuraPercent += it.AuraBonusPercent
	t.WeaponDamageMin += it.WeaponDamageMin
	t.WeaponDamageMax += it.WeaponDamageMax
	t.Armor += it.Armor
	t.CritRate += it.CritRate
	t.CritDamage += it.CritDamage
	t.Speed += it.Speed
	return t
}

// DerivedStats — производные боевые статы. Всегда полный пересчёт
// из текущих входов, никаких инкрементальных патчей.
type DerivedStats struct {
	Class Class
	Level int

	MaxHealth int64
	Damage    int64

	// Effective weapon range used per attack (both >= 1).
	WeaponDamageMin int
	WeaponDamageMax int

	Armor    int
	ArmorCap float64

	CritRate   float64 // [0, 100]
	CritDamage float64 // 150 = x1.5
	Speed      float64

	MainStat      StatType
	MainStatValue int

	// LevelDamageMultiplier = (1 + level*0.03) * auraMult * classDmgMult.
	// Per-attack damage = MainStatValue * roll(WeaponDamageMin..Max) * LevelDamageMultiplier.
	LevelDamageMultiplier float64

	LifestealRate float64

	Attributes  Attributes // effective (base + equipment)
	AuraPercent float64    // level part + equipment part
	Aura        int64
}
