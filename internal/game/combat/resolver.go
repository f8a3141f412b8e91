// Package combat — детерминированный пошаговый бой двух snapshot-ов.
//
// Порядок хода и число атак за раунд определяются скоростью; урон проходит
// через armor/cross-type митигацию, крит и разброс. Каждый Resolve создаёт
// собственный PCG из seed, общий поток случайных чисел не затрагивается.
package combat

import (
	"math/rand/v2"

	"github.com/udisondev/auraforge/internal/config"
	"github.com/udisondev/auraforge/internal/game/dice"
)

// Outcome — результат боя.
type Outcome struct {
	AttackerWon    bool
	Turns          int   // сыгранные раунды
	AttackerHealth int64 // >= 0
	DefenderHealth int64 // >= 0
	TimedOut       bool  // достигнут MaxTurns, победитель по доле HP
}

// HitResult содержит результат одной атаки для наблюдения в тестах и логах.
type HitResult struct {
	Turn         int
	FromAttacker bool
	Damage       int64
	Crit         bool
	Healed       int64
	TargetHealth int64
}

// Resolver resolves fights under fixed CombatRules.
// Safe for concurrent use once configured.
type Resolver struct {
	rules config.CombatRules

	// onHit is called after every attack (optional).
	onHit func(HitResult)
}

// NewResolver creates a Resolver.
func NewResolver(rules config.CombatRules) *Resolver {
	rules.MaxTurns = max(1, rules.MaxTurns)
	rules.MaxAttacksPerRound = max(1, rules.MaxAttacksPerRound)
	return &Resolver{rules: rules}
}

// Rules returns the rules the resolver was created with.
func (r *Resolver) Rules() config.CombatRules {
	return r.rules
}

// SetHitObserver sets fn to be called after every attack.
// Must be called before the resolver is shared between goroutines.
func (r *Resolver) SetHitObserver(fn func(HitResult)) {
	r.onHit = fn
}

// Resolve runs a fight with a child generator seeded from seed.
// Same inputs and seed → identical Outcome.
func (r *Resolver) Resolve(attacker, defender Fighter, seed uint64) Outcome {
	return r.ResolveWith(attacker, defender, dice.New(seed))
}

type side struct {
	f       Fighter
	hp      int64
	attacks int
}

// ResolveWith runs a fight drawing from rng.
//
// Attacker acts first when attacker.Speed >= defender.Speed. Knockout is
// checked after every attack. At the round cap the higher remaining health
// fraction wins, ties go to the attacker.
func (r *Resolver) ResolveWith(attacker, defender Fighter, rng *rand.Rand) Outcome {
	attacker.MaxHealth = max(1, attacker.MaxHealth)
	defender.MaxHealth = max(1, defender.MaxHealth)

	minSpeed := min(attacker.Speed, defender.Speed)
	a := &side{f: attacker, hp: attacker.MaxHealth, attacks: AttacksPerRound(attacker.Speed, minSpeed, r.rules.MaxAttacksPerRound)}
	d := &side{f: defender, hp: defender.MaxHealth, attacks: AttacksPerRound(defender.Speed, minSpeed, r.rules.MaxAttacksPerRound)}

	first, second := a, d
	if attacker.Speed < defender.Speed {
		first, second = d, a
	}

	for turn := 1; turn <= r.rules.MaxTurns; turn++ {
		if r.volley(turn, first, second, first == a, rng) || r.volley(turn, second, first, second == a, rng) {
			return Outcome{
				AttackerWon:    d.hp <= 0,
				Turns:          turn,
				AttackerHealth: max(0, a.hp),
				DefenderHealth: max(0, d.hp),
			}
		}
	}

	aFrac := float64(a.hp) / float64(a.f.MaxHealth)
	dFrac := float64(d.hp) / float64(d.f.MaxHealth)
	return Outcome{
		AttackerWon:    aFrac >= dFrac,
		Turns:          r.rules.MaxTurns,
		AttackerHealth: max(0, a.hp),
		DefenderHealth: max(0, d.hp),
		TimedOut:       true,
	}
}

// volley performs all attacks of src against dst for one round.
// Returns true on knockout.
func (r *Resolver) volley(turn int, src, dst *side, fromAttacker bool, rng *rand.Rand) bool {
	for range src.attacks {
		dmg, crit := CalcHitDamage(r.rules, src.f, dst.f, rng)
		dst.hp -= dmg

		var healed int64
		if src.f.LifestealRate > 0 {
			heal := int64(float64(dmg) * src.f.LifestealRate)
			before := src.hp
			src.hp = min(src.f.MaxHealth, src.hp+heal)
			healed = src.hp - before
		}

		if r.onHit != nil {
			r.onHit(HitResult{
				Turn:         turn,
				FromAttacker: fromAttacker,
				Damage:       dmg,
				Crit:         crit,
				Healed:       healed,
				TargetHealth: dst.hp,
			})
		}

		if dst.hp <= 0 {
			return true
		}
	}
	return false
}
