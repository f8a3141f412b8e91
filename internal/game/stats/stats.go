// Package stats вычисляет производные боевые статы персонажа.
//
// Derive — чистая тотальная функция: никаких ошибок, минимумы max(1, ...)
// защищают от нулевых и отрицательных значений. Результат хранит
// и рассылает подписчикам вызывающий (см. character).
package stats

import (
	"math"

	"github.com/udisondev/auraforge/internal/data"
	"github.com/udisondev/auraforge/internal/model"
)

// Formula constants.
const (
	AuraPercentPerLevel = 1.5

	HealthPerVitality    = 15.0
	HealthGrowthPerLevel = 0.02
	DamageGrowthPerLevel = 0.03
	BaseCritRate         = 5.0
	BaseCritDamage       = 150.0
	BaseSpeed            = 100.0
	SpeedPerDexterity    = 0.5
	MaxCritRate          = 100.0
	auraWeightAttribute  = 100.0
	auraWeightDamage     = 2.0
	auraWeightArmor      = 50.0
	auraWeightCritRate   = 100.0
	auraWeightCritDamage = 50.0
	auraWeightSpeed      = 30.0
)

// Derive maps base attributes + equipment totals + level + class into DerivedStats.
func Derive(base model.Attributes, bonus model.EquipmentBonusTotals, level int, class model.Class) model.DerivedStats {
	level = max(1, level)
	info := data.GetClassInfo(class)

	eff := base.Add(bonus.Attributes).NonNegative()

	auraPct := AuraPercent(level, bonus.AuraPercent)
	auraMult := 1 + auraPct/100

	hp := float64(eff.Vitality) * HealthPerVitality *
		(1 + float64(level)*HealthGrowthPerLevel) * auraMult * info.HealthMultiplier
	maxHealth := max(1, int64(math.Round(hp)))

	// Множитель урона за попадание без учёта оружия и main stat.
	levelMult := (1 + float64(level)*DamageGrowthPerLevel) * info.DamageMultiplier * auraMult

	mainValue := eff.Get(info.MainStat)
	weaponAvg := max(1, float64(bonus.WeaponDamageMin+bonus.WeaponDamageMax)/2)
	damage := max(1, int64(math.Round(float64(mainValue)*weaponAvg*levelMult)))

	wMin := max(1, bonus.WeaponDamageMin)
	wMax := max(wMin, bonus.WeaponDamageMax)

	armor := max(0, bonus.Armor)
	critRate := clamp(BaseCritRate+bonus.CritRate+info.CritRateBonus, 0, MaxCritRate)
	critDamage := max(0, BaseCritDamage+bonus.CritDamage+info.CritDamageBonus)
	speed := max(0, (BaseSpeed+float64(eff.Dexterity)*SpeedPerDexterity+bonus.Speed+info.SpeedBonus)*info.SpeedMultiplier)

	ds := model.DerivedStats{
		Class:                 class,
		Level:                 level,
		MaxHealth:             maxHealth,
		Damage:                damage,
		WeaponDamageMin:       wMin,
		WeaponDamageMax:       wMax,
		Armor:                 armor,
		ArmorCap:              info.ArmorCap,
		CritRate:              critRate,
		CritDamage:            critDamage,
		Speed:                 speed,
		MainStat:              info.MainStat,
		MainStatValue:         mainValue,
		LevelDamageMultiplier: levelMult,
		LifestealRate:         info.LifestealRate,
		Attributes:            eff,
		AuraPercent:           auraPct,
	}
	ds.Aura = Aura(ds)
	return ds
}

// AuraPercent returns the aggregate power bonus % for a level plus equipment part.
func AuraPercent(level int, equipment float64) float64 {
	return float64(max(1, level)-1)*AuraPercentPerLevel + equipment
}

// Aura returns the power score of already derived stats.
// Used for opponent scaling and comparisons, never in damage math.
func Aura(ds model.DerivedStats) int64 {
	raw := float64(ds.Attributes.Sum())*auraWeightAttribute +
		float64(ds.Damage)*auraWeightDamage +
		float64(ds.MaxHealth) +
		float64(ds.Armor)*auraWeightArmor +
		ds.CritRate*auraWeightCritRate +
		ds.CritDamage*auraWeightCritDamage +
		ds.Speed*auraWeightSpeed

	return max(0, int64(math.Round(raw*(1+ds.AuraPercent/100))))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
