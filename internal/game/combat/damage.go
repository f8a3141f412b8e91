package combat

import (
	"math"
	"math/rand/v2"

	"github.com/udisondev/auraforge/internal/config"
	"github.com/udisondev/auraforge/internal/game/dice"
)

// Mitigation returns the damage reduction fraction for attacker hitting defender.
//
//	armor part = min(armor / (armor + ArmorConstant), defender.ArmorCap)
//	cross part = min(main / (main + CrossStatConstant) × CrossStatFactor, CrossStatCap),
//	             only when main stat types differ
//	total      = min(armor part + cross part, MitigationCap)
func Mitigation(rules config.CombatRules, attacker, defender Fighter) float64 {
	var armorRed float64
	if defender.Armor > 0 {
		a := float64(defender.Armor)
		armorRed = math.Min(a/(a+rules.ArmorConstant), math.Max(0, defender.ArmorCap))
	}

	var crossRed float64
	if attacker.MainStat != defender.MainStat && defender.MainStatValue > 0 {
		v := float64(defender.MainStatValue)
		crossRed = math.Min(v/(v+rules.CrossStatConstant)*rules.CrossStatFactor, rules.CrossStatCap)
	}

	return math.Max(0, math.Min(rules.MitigationCap, armorRed+crossRed))
}

// AttacksPerRound returns min(maxAttacks, max(1, floor(speed / max(1, minSpeed)))).
func AttacksPerRound(speed, minSpeed float64, maxAttacks int) int {
	minSpeed = math.Max(1, minSpeed)
	n := int(math.Floor(speed / minSpeed))
	return min(max(1, maxAttacks), max(1, n))
}

// baseDamage returns damage before mitigation, crit and variance.
func baseDamage(f Fighter, r *rand.Rand) float64 {
	if f.Flat {
		return float64(f.FlatDamage)
	}
	roll := dice.IntRange(r, f.WeaponMin, f.WeaponMax)
	return float64(f.MainStatValue) * float64(roll) * f.LevelMultiplier
}

// CalcHitDamage calculates one attack: base → mitigation → crit → variance.
// Returns damage (minimum 1) and whether the hit was critical.
func CalcHitDamage(rules config.CombatRules, attacker, defender Fighter, r *rand.Rand) (int64, bool) {
	dmg := baseDamage(attacker, r) * (1 - Mitigation(rules, attacker, defender))

	crit := r.Float64()*100 < attacker.CritRate
	if crit {
		dmg *= attacker.CritDamage / 100
	}

	if rules.Variance > 0 {
		dmg *= dice.Range(r, 1-rules.Variance, 1+rules.Variance)
	}

	return max(1, int64(dmg)), crit
}
