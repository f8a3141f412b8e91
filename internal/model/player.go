package model

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Starting values for a freshly created character.
const (
	StartingLevel       = 1
	StartingXPToNext    = 100
	StartingAttribute   = 5
	StartingEssence     = 10
	StartingEnergy      = 100
	PointsPerLevel      = 3
	xpGrowthPerLevel    = 1.25
	maxPlayerNameLength = 16
)

// Покупка энергии за золото: пачка сверх максимума, с дневным лимитом (UTC).
const (
	EnergyPackAmount   = 20
	EnergyPackGoldCost = 100
	EnergyPacksPerDay  = 10
	EnergyPackOverflow = 200
)

var (
	// ErrInvalidName is returned by NewPlayer for empty or too long names.
	ErrInvalidName = errors.New("invalid player name")

	ErrEnergyDailyLimit = errors.New("daily energy purchase limit reached")
	ErrNotEnoughGold    = errors.New("not enough gold")
)

// PlayerState — плоский snapshot игрока для хранения в БД.
type PlayerState struct {
	ID            uuid.UUID
	Name          string
	Class         Class
	Level         int
	XP            int
	XPToNext      int
	Base          Attributes
	UnspentPoints int
	Gold          int64
	Essence       int64
	ManaCrystals  int64
	Energy        int
	MaxEnergy     int

	EnergyPacksToday int
	EnergyPackDay    time.Time // UTC-полночь дня последней покупки
}

// Player — профиль персонажа: уровень, опыт, базовые атрибуты и валюты.
// Производные статы здесь не хранятся (см. character.Character).
type Player struct {
	mu sync.RWMutex

	id    uuid.UUID
	name  string
	class Class

	level    int
	xp       int
	xpToNext int

	base          Attributes
	unspentPoints int

	gold         int64
	essence      int64
	manaCrystals int64

	energy    int
	maxEnergy int

	energyPacksToday int
	energyPackDay    time.Time
}

// NewPlayer создаёт нового персонажа 1 уровня с базовыми атрибутами 5/5/5/5.
func NewPlayer(name string, class Class) (*Player, error) {
	n := utf8.RuneCountInString(name)
	if n == 0 || n > maxPlayerNameLength {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return &Player{
		id:       uuid.New(),
		name:     name,
		class:    class,
		level:    StartingLevel,
		xpToNext: StartingXPToNext,
		base: Attributes{
			Strength:  StartingAttribute,
			Dexterity: StartingAttribute,
			Intellect: StartingAttribute,
			Vitality:  StartingAttribute,
		},
		essence:   StartingEssence,
		energy:    StartingEnergy,
		maxEnergy: StartingEnergy,
	}, nil
}

// RestorePlayer rebuilds a Player from persisted state.
func RestorePlayer(s PlayerState) *Player {
	return &Player{
		id:            s.ID,
		name:          s.Name,
		class:         s.Class,
		level:         max(1, s.Level),
		xp:            max(0, s.XP),
		xpToNext:      max(1, s.XPToNext),
		base:          s.Base.NonNegative(),
		unspentPoints: max(0, s.UnspentPoints),
		gold:          max(0, s.Gold),
		essence:       max(0, s.Essence),
		manaCrystals:  max(0, s.ManaCrystals),
		energy:        max(0, s.Energy),
		maxEnergy:     max(0, s.MaxEnergy),

		energyPacksToday: max(0, s.EnergyPacksToday),
		energyPackDay:    s.EnergyPackDay,
	}
}

// State returns a snapshot for persistence.
func (p *Player) State() PlayerState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return PlayerState{
		ID:            p.id,
		Name:          p.name,
		Class:         p.class,
		Level:         p.level,
		XP:            p.xp,
		XPToNext:      p.xpToNext,
		Base:          p.base,
		UnspentPoints: p.unspentPoints,
		Gold:          p.gold,
		Essence:       p.essence,
		ManaCrystals:  p.manaCrystals,
		Energy:        p.energy,
		MaxEnergy:     p.maxEnergy,

		EnergyPacksToday: p.energyPacksToday,
		EnergyPackDay:    p.energyPackDay,
	}
}

func (p *Player) ID() uuid.UUID { return p.id }
func (p *Player) Name() string  { return p.name }
func (p *Player) Class() Class  { return p.class }

// Level returns current level.
func (p *Player) Level() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.level
}

// XP returns (current, toNext).
func (p *Player) XP() (int, int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.xp, p.xpToNext
}

// Base returns spendable base attributes (without equipment).
func (p *Player) Base() Attributes {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.base
}

// UnspentPoints returns points available for SpendPoint.
func (p *Player) UnspentPoints() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.unspentPoints
}

// SpendPoint moves one unspent point into the given attribute.
// Returns false if there are no points left.
// Caller must recompute derived stats afterwards.
func (p *Player) SpendPoint(stat StatType) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.unspentPoints <= 0 {
		return false
	}
	if stat < StatStrength || stat > StatVitality {
		return false
	}
	p.base = p.base.With(stat, p.base.Get(stat)+1)
	p.unspentPoints--
	return true
}

// GainXP adds experience and performs level-ups.
// Each level grants PointsPerLevel points, next threshold grows ×1.25.
// Returns number of levels gained.
func (p *Player) GainXP(amount int) int {
	if amount <= 0 {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.xp += amount
	gained := 0
	for p.xp >= p.xpToNext {
		p.xp -= p.xpToNext
		p.level++
		p.xpToNext = int(math.Round(float64(p.xpToNext) * xpGrowthPerLevel))
		p.unspentPoints += PointsPerLevel
		gained++
	}
	return gained
}

// Gold returns current gold.
func (p *Player) Gold() int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.gold
}

// AddGold adds gold; non-positive amounts are ignored.
func (p *Player) AddGold(amount int64) {
	if amount <= 0 {
		return
	}
	p.mu.Lock()
	p.gold += amount
	p.mu.Unlock()
}

// SpendGold spends gold if enough is available.
func (p *Player) SpendGold(amount int64) bool {
	if amount <= 0 {
		return true
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gold < amount {
		return false
	}
	p.gold -= amount
	return true
}

// Essence returns shadow essence (crafting currency).
func (p *Player) Essence() int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.essence
}

// AddEssence adds crafting currency.
func (p *Player) AddEssence(amount int64) {
	if amount <= 0 {
		return
	}
	p.mu.Lock()
	p.essence += amount
	p.mu.Unlock()
}

// SpendEssence spends crafting currency if enough is available.
func (p *Player) SpendEssence(amount int64) bool {
	if amount <= 0 {
		return true
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.essence < amount {
		return false
	}
	p.essence -= amount
	return true
}

// ManaCrystals returns premium currency.
func (p *Player) ManaCrystals() int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.manaCrystals
}

// AddManaCrystals adds premium currency.
func (p *Player) AddManaCrystals(amount int64) {
	if amount <= 0 {
		return
	}
	p.mu.Lock()
	p.manaCrystals += amount
	p.mu.Unlock()
}

// SpendManaCrystals spends premium currency if enough is available.
func (p *Player) SpendManaCrystals(amount int64) bool {
	if amount <= 0 {
		return true
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.manaCrystals < amount {
		return false
	}
	p.manaCrystals -= amount
	return true
}

// Energy returns (current, max).
func (p *Player) Energy() (int, int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.energy, p.maxEnergy
}

// UseEnergy spends energy for accepting a gate.
func (p *Player) UseEnergy(amount int) bool {
	if amount <= 0 {
		return true
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.energy < amount {
		return false
	}
	p.energy -= amount
	return true
}

// RestoreEnergy adds energy, capped at max. Купленный сверх максимума
// запас не срезается.
func (p *Player) RestoreEnergy(amount int) {
	if amount <= 0 {
		return
	}
	p.mu.Lock()
	if p.energy < p.maxEnergy {
		p.energy = min(p.maxEnergy, p.energy+amount)
	}
	p.mu.Unlock()
}

// BuyEnergy trades EnergyPackGoldCost gold for EnergyPackAmount energy.
// Energy may exceed max by up to EnergyPackOverflow. At most
// EnergyPacksPerDay purchases per UTC day of now.
func (p *Player) BuyEnergy(now time.Time) error {
	day := utcDay(now)

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.energyPackDay.Equal(day) {
		p.energyPackDay = day
		p.energyPacksToday = 0
	}
	if p.energyPacksToday >= EnergyPacksPerDay {
		return fmt.Errorf("buy energy: %w", ErrEnergyDailyLimit)
	}
	if p.gold < EnergyPackGoldCost {
		return fmt.Errorf("buy energy: %w: need %d", ErrNotEnoughGold, EnergyPackGoldCost)
	}

	p.gold -= EnergyPackGoldCost
	p.energyPacksToday++
	p.energy = max(p.energy, min(p.maxEnergy+EnergyPackOverflow, p.energy+EnergyPackAmount))
	return nil
}

// EnergyPacksLeft returns purchases still available on the UTC day of now.
func (p *Player) EnergyPacksLeft(now time.Time) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.energyPackDay.Equal(utcDay(now)) {
		return EnergyPacksPerDay
	}
	return max(0, EnergyPacksPerDay-p.energyPacksToday)
}

func utcDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
