package rarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/auraforge/internal/config"
	"github.com/udisondev/auraforge/internal/game/dice"
	"github.com/udisondev/auraforge/internal/model"
)

const maxLevel = 100

func TestWeightsForLevel_Level1(t *testing.T) {
	t.Parallel()

	w := WeightsForLevel(1, maxLevel)
	require.Len(t, w, 1)
	assert.Equal(t, Weight{Rarity: model.RarityERank, Weight: 10000}, w[0])

	// Уровни ниже 1 ведут себя как 1.
	assert.Equal(t, w, WeightsForLevel(0, maxLevel))
	assert.Equal(t, w, WeightsForLevel(-5, maxLevel))
}

func TestWeightsForLevel_EarlyFixed(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []Weight{
		{model.RarityERank, 8500},
		{model.RarityCommon, 1500},
	}, WeightsForLevel(2, maxLevel))

	assert.Equal(t, []Weight{
		{model.RarityERank, 7000},
		{model.RarityCommon, 2500},
		{model.RarityDRank, 500},
	}, WeightsForLevel(3, maxLevel))
}

func TestWeightsForLevel_SumsAndOrder(t *testing.T) {
	t.Parallel()

	for level := 1; level <= maxLevel; level++ {
		w := WeightsForLevel(level, maxLevel)
		require.NotEmpty(t, w, "level %d", level)

		total := Total(w)
		require.Positive(t, total, "level %d", level)
		assert.InDelta(t, 10000, total, 15, "level %d", level)

		var p float64
		prev := model.Rarity(-1)
		for _, e := range w {
			require.Positive(t, e.Weight, "level %d tier %s", level, e.Rarity)
			require.Greater(t, e.Rarity, prev, "level %d: tiers must be ordered", level)
			prev = e.Rarity
			p += Probability(w, e.Rarity)
		}
		assert.InDelta(t, 1.0, p, 1e-9, "level %d", level)
	}
}

func TestWeightsForLevel_TailUnlock(t *testing.T) {
	t.Parallel()

	for level := 1; level <= maxLevel; level++ {
		w := WeightsForLevel(level, maxLevel)
		af := WeightOf(w, model.RarityAuraFarming)
		god := WeightOf(w, model.RarityGodlike)

		if level <= 60 {
			assert.Zero(t, af, "AuraFarming at level %d", level)
		} else {
			assert.Positive(t, af, "AuraFarming at level %d", level)
		}
		if level <= 40 {
			assert.Zero(t, god, "Godlike at level %d", level)
		} else {
			assert.Positive(t, god, "Godlike at level %d", level)
		}
	}

	top := WeightsForLevel(maxLevel, maxLevel)
	assert.Equal(t, 500, WeightOf(top, model.RarityAuraFarming)) // ровно 5%
	assert.Equal(t, 800, WeightOf(top, model.RarityGodlike))
}

func TestWeightsForLevel_FocusMovesUp(t *testing.T) {
	t.Parallel()

	mode := func(w []Weight) model.Rarity {
		best := w[0]
		for _, e := range w[1:] {
			if e.Weight > best.Weight {
				best = e
			}
		}
		return best.Rarity
	}

	assert.LessOrEqual(t, mode(WeightsForLevel(4, maxLevel)), model.RarityCommon)
	assert.Equal(t, model.RarityMonarch, mode(WeightsForLevel(maxLevel, maxLevel)))

	prev := model.RarityERank
	for level := 4; level <= maxLevel; level += 8 {
		m := mode(WeightsForLevel(level, maxLevel))
		assert.GreaterOrEqual(t, m, prev, "level %d", level)
		prev = m
	}
}

// Окно узкое в начале и у капа, шире всего в середине.
func TestWeightsForLevel_SpreadWidestMidGame(t *testing.T) {
	t.Parallel()

	early := len(WeightsForLevel(4, maxLevel))
	mid := len(WeightsForLevel(52, maxLevel))
	late := len(WeightsForLevel(maxLevel, maxLevel))

	assert.Greater(t, mid, early)
	assert.Greater(t, mid, late)
}

// Тиры сильно выше фокуса подавлены.
func TestWeightsForLevel_SuppressesFarTiers(t *testing.T) {
	t.Parallel()

	w := WeightsForLevel(4, maxLevel)
	assert.Zero(t, WeightOf(w, model.RarityRare))
	assert.Zero(t, WeightOf(w, model.RarityMonarch))
}

func TestWeightsForLevel_ClampsAboveMax(t *testing.T) {
	t.Parallel()

	assert.Equal(t, WeightsForLevel(maxLevel, maxLevel), WeightsForLevel(250, maxLevel))
}

func TestCurve_Custom(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultRarityCurve()
	cfg.Total = 1000
	cfg.Tails = nil
	c := NewCurve(cfg)

	w := c.Weights(maxLevel, maxLevel)
	assert.Zero(t, WeightOf(w, model.RarityAuraFarming))
	assert.InDelta(t, 1000, Total(w), 5)
}

func TestCurve_DegenerateFallback(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultRarityCurve()
	cfg.Fixed = []config.FixedDistribution{
		{Level: 1, Shares: []config.TierShare{{Rarity: model.RarityRare, Percent: -10}}},
	}
	c := NewCurve(cfg)

	assert.Equal(t, []Weight{{model.RarityERank, 10000}}, c.Weights(1, maxLevel))
}

func TestRoll(t *testing.T) {
	t.Parallel()

	r := dice.New(7)
	w := WeightsForLevel(2, maxLevel)

	counts := map[model.Rarity]int{}
	const n = 20000
	for range n {
		counts[Roll(r, w)]++
	}
	assert.Len(t, counts, 2)
	assert.InDelta(t, 0.85, float64(counts[model.RarityERank])/n, 0.02)
	assert.InDelta(t, 0.15, float64(counts[model.RarityCommon])/n, 0.02)
}

func TestRoll_Deterministic(t *testing.T) {
	t.Parallel()

	w := WeightsForLevel(70, maxLevel)
	a, b := dice.New(99), dice.New(99)
	for range 200 {
		require.Equal(t, Roll(a, w), Roll(b, w))
	}
}

func TestRoll_Fallback(t *testing.T) {
	t.Parallel()

	r := dice.New(1)
	assert.Equal(t, model.RarityERank, Roll(r, nil))
	assert.Equal(t, model.RarityERank, Roll(r, []Weight{{model.RarityHero, 0}, {model.RarityMonarch, -3}}))
	assert.Equal(t, model.RarityMonarch, Roll(r, []Weight{{model.RarityHero, 0}, {model.RarityMonarch, 1}}))
}

func BenchmarkWeightsForLevel(b *testing.B) {
	for b.Loop() {
		_ = WeightsForLevel(57, maxLevel)
	}
}
