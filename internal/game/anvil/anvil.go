// Package anvil — крафт предметов за эссенцию и прокачка уровня наковальни.
//
// Уровень наковальни определяет распределение редкостей (rarity.Curve),
// уровень предмета равен уровню персонажа. Прокачка идёт по таймеру:
// золото списывается на старте, таймер можно пропустить за mana crystals.
// Время всегда передаёт вызывающий (now), пакет не спит и не тикает.
package anvil

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/udisondev/auraforge/internal/config"
	"github.com/udisondev/auraforge/internal/game/character"
	"github.com/udisondev/auraforge/internal/game/inventory"
	"github.com/udisondev/auraforge/internal/game/loot"
	"github.com/udisondev/auraforge/internal/game/rarity"
	"github.com/udisondev/auraforge/internal/model"
)

var (
	ErrMaxLevel          = errors.New("anvil is at max level")
	ErrUpgradeInProgress = errors.New("anvil upgrade already in progress")
	ErrNoUpgrade         = errors.New("no anvil upgrade in progress")
	ErrNotEnoughGold     = errors.New("not enough gold")
	ErrNotEnoughEssence  = errors.New("not enough essence")
	ErrNotEnoughCrystals = errors.New("not enough mana crystals")
	ErrNoTemplate        = errors.New("no item template for class")
)

// CraftResult describes one crafted item.
type CraftResult struct {
	Item    model.Item
	ToInbox bool
}

// Anvil is safe for concurrent use.
type Anvil struct {
	rules    config.AnvilRules
	maxLevel int
	curve    *rarity.Curve
	gen      *loot.Generator

	mu        sync.Mutex
	level     int
	upgrading bool
	startedAt time.Time
	duration  time.Duration
}

// New creates a level 1 anvil. nil curve means rarity.DefaultCurve().
func New(rules config.AnvilRules, maxLevel int, curve *rarity.Curve, gen *loot.Generator) *Anvil {
	if curve == nil {
		curve = rarity.DefaultCurve()
	}
	return &Anvil{
		rules:    rules,
		maxLevel: max(1, maxLevel),
		curve:    curve,
		gen:      gen,
		level:    1,
	}
}

// Level returns current anvil level.
func (a *Anvil) Level() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.level
}

// SetLevel restores a persisted level (clamped to [1, maxLevel]).
func (a *Anvil) SetLevel(level int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.level = min(max(1, level), a.maxLevel)
}

// IsMaxLevel reports whether the anvil can no longer be upgraded.
func (a *Anvil) IsMaxLevel() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.level >= a.maxLevel
}

// UpgradeCost returns gold cost of the next level, -1 at max level.
func (a *Anvil) UpgradeCost() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.upgradeCost()
}

func (a *Anvil) upgradeCost() int64 {
	if a.level >= a.maxLevel {
		return -1
	}
	return int64(math.Round(a.rules.UpgradeBaseCost * math.Pow(a.rules.UpgradeCostRate, float64(a.level))))
}

// UpgradeDuration returns timer length of the next level, 0 at max level.
func (a *Anvil) UpgradeDuration() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.upgradeDuration()
}

func (a *Anvil) upgradeDuration() time.Duration {
	if a.level >= a.maxLevel {
		return 0
	}
	secs := a.rules.UpgradeBaseTime.Seconds() * math.Pow(a.rules.UpgradeTimeRate, float64(a.level-1))
	return time.Duration(secs * float64(time.Second)).Round(time.Second)
}

// Upgrading reports whether a timed upgrade is running.
func (a *Anvil) Upgrading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.upgrading
}

// StartUpgrade spends gold and starts the upgrade timer.
func (a *Anvil) StartUpgrade(p *model.Player, now time.Time) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.level >= a.maxLevel {
		return ErrMaxLevel
	}
	if a.upgrading {
		return ErrUpgradeInProgress
	}
	cost := a.upgradeCost()
	if !p.SpendGold(cost) {
		return fmt.Errorf("%w: need %d", ErrNotEnoughGold, cost)
	}

	a.upgrading = true
	a.startedAt = now
	a.duration = a.upgradeDuration()
	return nil
}

// Remaining returns time left on the upgrade timer.
func (a *Anvil) Remaining(now time.Time) time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.remaining(now)
}

func (a *Anvil) remaining(now time.Time) time.Duration {
	if !a.upgrading {
		return 0
	}
	return max(0, a.startedAt.Add(a.duration).Sub(now))
}

// Progress returns elapsed share of the upgrade timer in [0, 1].
func (a *Anvil) Progress(now time.Time) float64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.upgrading || a.duration <= 0 {
		return 0
	}
	p := float64(now.Sub(a.startedAt)) / float64(a.duration)
	return min(1, max(0, p))
}

// SkipCost returns mana crystals needed to finish now:
// 1 за каждый начатый SkipStep, минимум 1. 0 если нечего пропускать.
func (a *Anvil) SkipCost(now time.Time) int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.skipCost(now)
}

func (a *Anvil) skipCost(now time.Time) int64 {
	rem := a.remaining(now)
	if rem <= 0 || a.rules.SkipStep <= 0 {
		return 0
	}
	return max(1, int64(math.Ceil(float64(rem)/float64(a.rules.SkipStep))))
}

// Skip spends mana crystals and completes the upgrade immediately.
func (a *Anvil) Skip(p *model.Player, now time.Time) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.upgrading {
		return ErrNoUpgrade
	}
	cost := a.skipCost(now)
	if cost <= 0 {
		a.complete()
		return nil
	}
	if !p.SpendManaCrystals(cost) {
		return fmt.Errorf("%w: need %d", ErrNotEnoughCrystals, cost)
	}
	a.complete()
	return nil
}

// CompleteIfDone finishes the upgrade when its timer has elapsed.
// Returns true if the level went up.
func (a *Anvil) CompleteIfDone(now time.Time) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.upgrading || a.remaining(now) > 0 {
		return false
	}
	a.complete()
	return true
}

func (a *Anvil) complete() {
	a.upgrading = false
	a.level = min(a.level+1, a.maxLevel)
	slog.Debug("anvil upgraded", "level", a.level)
}

// Weights returns the rarity distribution of the current anvil level.
func (a *Anvil) Weights() []rarity.Weight {
	a.mu.Lock()
	lvl := a.level
	a.mu.Unlock()
	return a.curve.Weights(lvl, a.maxLevel)
}

// RollRarity rolls a rarity for the current anvil level.
func (a *Anvil) RollRarity(r *rand.Rand) model.Rarity {
	return rarity.Roll(r, a.Weights())
}

// Craft spends essence, rolls rarity and quality and stores a new item
// of any slot for the character's class. Essence is refunded when no
// template fits.
func (a *Anvil) Craft(c *character.Character, r *rand.Rand, now time.Time) (CraftResult, error) {
	p := c.Player()
	if !p.SpendEssence(a.rules.EssencePerCraft) {
		return CraftResult{}, fmt.Errorf("%w: need %d", ErrNotEnoughEssence, a.rules.EssencePerCraft)
	}

	rar := a.RollRarity(r)
	req := loot.Request{
		Level:   p.Level(),
		Rarity:  rar,
		Quality: loot.RollQuality(rar, r),
		Class:   p.Class(),
		Slot:    model.SlotAny,
	}
	it, ok := a.gen.Generate(req, r)
	if !ok {
		p.AddEssence(a.rules.EssencePerCraft)
		return CraftResult{}, fmt.Errorf("%w: %s", ErrNoTemplate, p.Class())
	}

	toInbox := c.Store(it, inventory.SourceAnvil, now)
	slog.Debug("item crafted",
		"player", p.Name(),
		"item", it.String(),
		"inbox", toInbox)

	return CraftResult{Item: it, ToInbox: toInbox}, nil
}
