// Package gate — миссии-гейты: генерация предложений, принятие за энергию,
// отложенный seeded-бой по истечении таймера, награды и дроп.
package gate

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/auraforge/internal/data"
	"github.com/udisondev/auraforge/internal/game/dice"
	"github.com/udisondev/auraforge/internal/model"
)

// Gate duration bounds, minutes. Energy cost equals the duration in minutes.
const (
	MinMinutes = 1
	MaxMinutes = 20
)

// Reward formula constants (per minute).
const (
	xpPerMinute      = 12.0
	goldPerMinute    = 8.0
	essencePerMinute = 2.5
	xpLevelGrowth    = 0.04
	goldLevelGrowth  = 0.03
)

// Enemy mirror adjustments.
const (
	enemyCritFactor    = 0.80
	enemyCritDmgFactor = 0.85
	enemySpeedFactor   = 0.95
	enemyMinCritDamage = 100.0
	enemyMinSpeed      = 50.0
	enemyPointsPerAura = 0.005
	enemyMinPoints     = 4
)

// Gate — одно предложение миссии.
type Gate struct {
	ID       uuid.UUID
	Rank     Rank
	Duration time.Duration

	EnergyCost    int
	RewardXP      int
	RewardGold    int64
	RewardEssence int64

	RandomItemChance float64
	EpicItemChance   float64

	// Enemy — производные статы противника. Бьёт плоским Enemy.Damage.
	Enemy model.DerivedStats
}

// New rolls a gate for a player with stats ds.
func New(ds model.DerivedStats, r *rand.Rand) Gate {
	rank := RollRank(r)
	info := GetRankInfo(rank)
	minutes := dice.IntRange(r, MinMinutes, MaxMinutes)
	level := max(1, ds.Level)

	g := Gate{
		ID:               dice.NewUUID(r),
		Rank:             rank,
		Duration:         time.Duration(minutes) * time.Minute,
		EnergyCost:       minutes,
		RandomItemChance: info.RandomItemChance,
		EpicItemChance:   info.EpicItemChance,
	}
	g.RewardXP, g.RewardGold, g.RewardEssence = Rewards(minutes, level, info.RewardMultiplier)

	mult := dice.Range(r, info.EnemyMin, info.EnemyMax)
	g.Enemy = Enemy(ds, mult, r)
	return g
}

// Rewards returns XP, gold and essence for a gate of the given length.
func Rewards(minutes, level int, mult float64) (int, int64, int64) {
	m := float64(minutes) * mult
	lvl := float64(max(1, level) - 1)
	xp := int(math.Round(m * xpPerMinute * (1 + lvl*xpLevelGrowth)))
	gold := int64(math.Round(m * goldPerMinute * (1 + lvl*goldLevelGrowth)))
	essence := int64(math.Round(m * essencePerMinute))
	return xp, gold, essence
}

// Enemy mirrors ds scaled by mult, with a random class and attribute spread
// derived from the scaled aura.
func Enemy(ds model.DerivedStats, mult float64, r *rand.Rand) model.DerivedStats {
	class := model.AllClasses[r.IntN(len(model.AllClasses))]
	info := data.GetClassInfo(class)

	aura := int64(float64(ds.Aura) * mult)
	points := max(enemyMinPoints, int(math.Round(float64(aura)*enemyPointsPerAura)))
	attrs := enemyAttributes(points, r)

	return model.DerivedStats{
		Class:         class,
		Level:         ds.Level,
		MaxHealth:     max(1, int64(float64(ds.MaxHealth)*mult)),
		Damage:        max(1, int64(float64(ds.Damage)*mult)),
		Armor:         max(0, int(math.Round(float64(ds.Armor)*mult))),
		ArmorCap:      data.DefaultArmorCap,
		CritRate:      min(100, max(0, ds.CritRate*mult*enemyCritFactor)),
		CritDamage:    max(enemyMinCritDamage, ds.CritDamage*mult*enemyCritDmgFactor),
		Speed:         max(enemyMinSpeed, ds.Speed*mult*enemySpeedFactor),
		MainStat:      info.MainStat,
		MainStatValue: attrs.Get(info.MainStat),
		LifestealRate: info.LifestealRate,
		Attributes:    attrs,
		Aura:          aura,
	}
}

// enemyAttributes: STR/VIT/DEX по U[p/5, max(p/5+1, p/3)), INT — остаток.
func enemyAttributes(points int, r *rand.Rand) model.Attributes {
	lo := points / 5
	hi := max(lo+1, points/3)
	roll := func() int { return lo + r.IntN(hi-lo) }

	a := model.Attributes{
		Strength:  roll(),
		Vitality:  roll(),
		Dexterity: roll(),
	}
	a.Intellect = max(0, points-(a.Strength+a.Vitality+a.Dexterity))
	return a
}
