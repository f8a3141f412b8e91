package gate

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/udisondev/auraforge/internal/game/character"
	"github.com/udisondev/auraforge/internal/game/combat"
	"github.com/udisondev/auraforge/internal/game/dice"
	"github.com/udisondev/auraforge/internal/game/inventory"
	"github.com/udisondev/auraforge/internal/game/loot"
	"github.com/udisondev/auraforge/internal/model"
)

// OffersPerRefresh is the number of gates offered at once.
const OffersPerRefresh = 3

var (
	ErrGateActive      = errors.New("a gate is already active")
	ErrNoSuchGate      = errors.New("no such gate offer")
	ErrNotEnoughEnergy = errors.New("not enough energy")
	ErrNoActiveGate    = errors.New("no active gate")
	ErrGateNotReady    = errors.New("gate timer has not finished")
)

// RarityRoller rolls drop rarity. *anvil.Anvil satisfies it.
type RarityRoller interface {
	RollRarity(r *rand.Rand) model.Rarity
}

// Result — итог разрешённого гейта.
type Result struct {
	Gate    Gate
	Outcome combat.Outcome
	Won     bool

	LevelsGained int

	Drop        model.Item
	HasDrop     bool
	DropToInbox bool
}

// Board — доска гейтов одного персонажа: предложения → активный гейт →
// готов к разрешению → бой и награды. Не больше одного активного гейта.
type Board struct {
	resolver *combat.Resolver
	gen      *loot.Generator
	rarity   RarityRoller

	mu      sync.Mutex
	offers  []Gate
	active  *Gate
	started time.Time
	ends    time.Time
}

// NewBoard creates an empty board.
func NewBoard(resolver *combat.Resolver, gen *loot.Generator, rarity RarityRoller) *Board {
	return &Board{
		resolver: resolver,
		gen:      gen,
		rarity:   rarity,
	}
}

// Refresh replaces the offers with OffersPerRefresh new gates.
// Does nothing while a gate is active.
func (b *Board) Refresh(ds model.DerivedStats, r *rand.Rand) []Gate {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.active != nil {
		return nil
	}
	b.offers = b.offers[:0]
	for range OffersPerRefresh {
		b.offers = append(b.offers, New(ds, r))
	}
	return slices.Clone(b.offers)
}

// Ensure generates offers only when there is neither an active gate nor any offer.
func (b *Board) Ensure(ds model.DerivedStats, r *rand.Rand) []Gate {
	b.mu.Lock()
	empty := b.active == nil && len(b.offers) == 0
	b.mu.Unlock()

	if empty {
		return b.Refresh(ds, r)
	}
	return b.Offers()
}

// Offers returns a copy of the current offers.
func (b *Board) Offers() []Gate {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.offers)
}

// Accept spends energy and starts the gate timer. Offers are cleared.
func (b *Board) Accept(c *character.Character, index int, now time.Time) (Gate, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.active != nil {
		return Gate{}, ErrGateActive
	}
	if index < 0 || index >= len(b.offers) {
		return Gate{}, fmt.Errorf("%w: %d", ErrNoSuchGate, index)
	}

	g := b.offers[index]
	if !c.Player().UseEnergy(g.EnergyCost) {
		return Gate{}, fmt.Errorf("%w: need %d", ErrNotEnoughEnergy, g.EnergyCost)
	}

	b.active = &g
	b.started = now
	b.ends = now.Add(g.Duration)
	b.offers = b.offers[:0]
	return g, nil
}

// Active returns the running gate.
func (b *Board) Active() (Gate, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.active == nil {
		return Gate{}, false
	}
	return *b.active, true
}

// Ready reports whether the active gate's timer has finished.
func (b *Board) Ready(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active != nil && !now.Before(b.ends)
}

// Remaining returns time left on the active gate.
func (b *Board) Remaining(now time.Time) time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.active == nil {
		return 0
	}
	return max(0, b.ends.Sub(now))
}

// Progress returns elapsed share of the active gate in [0, 1].
func (b *Board) Progress(now time.Time) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.active == nil {
		return 0
	}
	total := b.ends.Sub(b.started)
	if total <= 0 {
		return 1
	}
	return min(1, max(0, float64(now.Sub(b.started))/float64(total)))
}

// ResolveIfReady fights the active gate once its timer is over.
// Fight and drop seeds depend only on (character, gate, end time).
// Rewards and drops are granted only on a win; the gate is cleared either way.
func (b *Board) ResolveIfReady(c *character.Character, now time.Time) (Result, error) {
	b.mu.Lock()
	if b.active == nil {
		b.mu.Unlock()
		return Result{}, ErrNoActiveGate
	}
	if now.Before(b.ends) {
		b.mu.Unlock()
		return Result{}, ErrGateNotReady
	}
	g := *b.active
	ends := b.ends
	b.active = nil
	b.started = time.Time{}
	b.ends = time.Time{}
	b.mu.Unlock()

	profile := c.ID().String()
	gateID := g.ID.String()
	endUnix := strconv.FormatInt(ends.Unix(), 10)

	attacker := combat.PlayerFighter(c.Stats())
	defender := combat.FlatFighter(g.Enemy)
	out := b.resolver.Resolve(attacker, defender, combat.SeedFor(profile, gateID, endUnix))

	res := Result{Gate: g, Outcome: out, Won: out.AttackerWon}
	if !res.Won {
		slog.Debug("gate lost", "gate", gateID, "rank", g.Rank, "turns", out.Turns)
		return res, nil
	}

	p := c.Player()
	res.LevelsGained = c.GainXP(g.RewardXP)
	p.AddGold(g.RewardGold)
	p.AddEssence(g.RewardEssence)

	drops := dice.New(combat.SeedFor(profile, gateID, endUnix, "drops"))
	if it, ok := b.rollDrop(g, p, drops); ok {
		res.Drop = it
		res.HasDrop = true
		res.DropToInbox = c.Store(it, inventory.SourceGate, now)
	}

	slog.Debug("gate won",
		"gate", gateID,
		"rank", g.Rank,
		"turns", out.Turns,
		"levels", res.LevelsGained,
		"drop", res.HasDrop)

	return res, nil
}

// rollDrop: epic имеет приоритет над обычным дропом.
// Epic → редкость не ниже Hero и качество не ниже Epic.
func (b *Board) rollDrop(g Gate, p *model.Player, r *rand.Rand) (model.Item, bool) {
	minRarity, minQuality := model.RarityERank, model.QualityNormal
	switch {
	case g.EpicItemChance > 0 && r.Float64()*100 <= g.EpicItemChance:
		minRarity, minQuality = model.RarityHero, model.QualityEpic
	case g.RandomItemChance > 0 && r.Float64()*100 <= g.RandomItemChance:
	default:
		return model.Item{}, false
	}

	rar := model.RarityERank
	if b.rarity != nil {
		rar = b.rarity.RollRarity(r)
	}
	rar = max(rar, minRarity)
	q := max(loot.RollQuality(rar, r), minQuality)

	return b.gen.Generate(loot.Request{
		Level:   p.Level(),
		Rarity:  rar,
		Quality: q,
		Class:   p.Class(),
		Slot:    model.SlotAny,
	}, r)
}
