// Package rarity — таблица весов редкости по уровню прогрессии
// (скользящее гауссово окно по тирам) и бросок редкости.
package rarity

import (
	"math"
	"math/rand/v2"

	"github.com/udisondev/auraforge/internal/config"
	"github.com/udisondev/auraforge/internal/model"
)

// Weight — вес одного тира в распределении.
type Weight struct {
	Rarity model.Rarity
	Weight int
}

// Curve computes weight tables from config.RarityCurve.
// Immutable, safe for concurrent use.
type Curve struct {
	cfg config.RarityCurve
}

// NewCurve creates a Curve from config.
func NewCurve(cfg config.RarityCurve) *Curve {
	return &Curve{cfg: cfg}
}

var defaultCurve = NewCurve(config.DefaultRarityCurve())

// DefaultCurve returns the shipped curve.
func DefaultCurve() *Curve {
	return defaultCurve
}

// WeightsForLevel returns the default curve's weights for level.
func WeightsForLevel(level, maxLevel int) []Weight {
	return defaultCurve.Weights(level, maxLevel)
}

// Weights returns weights for level, ordered by tier, summing ≈ cfg.Total.
// Never empty: degenerate input falls back to a single ERank entry.
func (c *Curve) Weights(level, maxLevel int) []Weight {
	total := c.cfg.Total
	if total <= 0 {
		total = config.DefaultRarityCurve().Total
	}
	maxLevel = max(1, maxLevel)
	level = min(max(1, level), maxLevel)

	var mass [model.RarityCount]float64
	if fixed, ok := c.fixed(level); ok {
		for _, s := range fixed.Shares {
			if s.Rarity.Valid() {
				mass[s.Rarity] += s.Percent / 100
			}
		}
	} else {
		c.curveMass(level, maxLevel, &mass)
	}

	out := make([]Weight, 0, model.RarityCount)
	for i, m := range mass {
		w := int(math.Round(m * float64(total)))
		if w <= 0 {
			continue
		}
		out = append(out, Weight{Rarity: model.Rarity(i), Weight: w})
	}
	if len(out) == 0 {
		return []Weight{{Rarity: model.RarityERank, Weight: total}}
	}
	return out
}

func (c *Curve) fixed(level int) (config.FixedDistribution, bool) {
	for _, f := range c.cfg.Fixed {
		if f.Level == level {
			return f, true
		}
	}
	return config.FixedDistribution{}, false
}

// curveMass fills fractions (sum ≈ 1) for the general curve.
func (c *Curve) curveMass(level, maxLevel int, mass *[model.RarityCount]float64) {
	t := progress(level, c.cfg.CurveStartLevel, maxLevel)

	// Фокус сначала ползёт медленно, потом ускоряется к верхним тирам.
	focus := c.cfg.FocusStart + (c.cfg.FocusEnd-c.cfg.FocusStart)*math.Pow(t, c.cfg.FocusExponent)
	// Узко в начале, шире всего в середине, снова узко у капа.
	spread := c.cfg.SpreadBase + c.cfg.SpreadAmplitude*math.Sin(math.Pi*t)
	if spread <= 0 {
		spread = 1
	}

	tiers := min(max(1, c.cfg.CurveTiers), model.RarityCount)
	gauss := make([]float64, tiers)
	var gaussSum float64
	for i := range gauss {
		d := float64(i) - focus
		w := math.Exp(-(d * d) / (2 * spread * spread))
		if d > c.cfg.SuppressAbove {
			w *= c.cfg.SuppressFactor
		}
		gauss[i] = w
		gaussSum += w
	}

	var tailSum float64
	for _, tail := range c.cfg.Tails {
		if !tail.Rarity.Valid() || level <= tail.StartLevel {
			continue
		}
		f := tail.MaxFraction * progress(level, tail.StartLevel, maxLevel)
		mass[tail.Rarity] += f
		tailSum += f
	}

	remaining := math.Max(0, 1-tailSum)
	if gaussSum <= 0 {
		mass[model.RarityERank] += remaining
		return
	}
	for i, w := range gauss {
		mass[i] += w / gaussSum * remaining
	}
}

// progress returns (level-from)/(to-from) clamped to [0,1]; 1 when the range is empty.
func progress(level, from, to int) float64 {
	if to <= from {
		return 1
	}
	t := float64(level-from) / float64(to-from)
	return math.Max(0, math.Min(1, t))
}

// Roll draws a tier: uniform int in [1, total], first tier whose cumulative weight ≥ draw.
// Falls back to ERank for empty or non-positive tables.
func Roll(r *rand.Rand, weights []Weight) model.Rarity {
	total := Total(weights)
	if total <= 0 {
		return model.RarityERank
	}

	roll := 1 + r.IntN(total)
	acc := 0
	for _, w := range weights {
		if w.Weight <= 0 {
			continue
		}
		acc += w.Weight
		if roll <= acc {
			return w.Rarity
		}
	}
	return model.RarityERank
}

// Total returns the sum of positive weights.
func Total(weights []Weight) int {
	total := 0
	for _, w := range weights {
		if w.Weight > 0 {
			total += w.Weight
		}
	}
	return total
}

// WeightOf returns the weight of rarity in the table (0 if absent).
func WeightOf(weights []Weight, r model.Rarity) int {
	for _, w := range weights {
		if w.Rarity == r {
			return w.Weight
		}
	}
	return 0
}

// Probability returns the normalized probability of rarity in the table.
func Probability(weights []Weight, r model.Rarity) float64 {
	total := Total(weights)
	if total == 0 {
		return 0
	}
	return float64(max(0, WeightOf(weights, r))) / float64(total)
}
