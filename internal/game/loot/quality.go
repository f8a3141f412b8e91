package loot

import (
	"math/rand/v2"

	"github.com/udisondev/auraforge/internal/model"
)

// qualityOdds — веса Normal/Epic/Legendary/Mythic по диапазонам редкости.
// Mythic встречается только начиная с Monarch.
var qualityOdds = [...]struct {
	from    model.Rarity
	weights [4]int
}{
	{model.RarityERank, [4]int{85, 14, 1, 0}},
	{model.RarityRare, [4]int{70, 25, 5, 0}},
	{model.RarityARank, [4]int{55, 33, 12, 0}},
	{model.RarityMonarch, [4]int{45, 33, 17, 5}},
}

// RollQuality rolls a quality whose odds rise with rarity.
func RollQuality(rarity model.Rarity, r *rand.Rand) model.Quality {
	weights := qualityOdds[0].weights
	for _, o := range qualityOdds {
		if rarity >= o.from {
			weights = o.weights
		}
	}

	total := 0
	for _, w := range weights {
		total += w
	}
	roll := 1 + r.IntN(total)
	acc := 0
	for q, w := range weights {
		acc += w
		if roll <= acc {
			return model.Quality(q)
		}
	}
	return model.QualityNormal
}

// FilterQuality maps a rolled quality onto a template's allowed list:
// the highest permitted quality not above rolled, otherwise the lowest permitted.
// Empty list leaves rolled unchanged.
func FilterQuality(allowed []model.Quality, rolled model.Quality) model.Quality {
	if len(allowed) == 0 {
		return rolled
	}

	best, lowest := model.Quality(-1), allowed[0]
	for _, q := range allowed {
		if q <= rolled && q > best {
			best = q
		}
		if q < lowest {
			lowest = q
		}
	}
	if best >= 0 {
		return best
	}
	return lowest
}
