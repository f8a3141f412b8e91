package loot

import (
	"math"
	"math/rand/v2"

	"github.com/udisondev/auraforge/internal/data"
	"github.com/udisondev/auraforge/internal/game/dice"
	"github.com/udisondev/auraforge/internal/model"
)

// Attribute jitter (inclusive) added to every rounded attribute share.
const (
	attributeJitterMin = -2
	attributeJitterMax = 2

	// Сумма primary+secondary долей у focused-сплита не превышает 90%.
	maxFocusedShare = 0.90
	// Остаток делится между двумя прочими атрибутами в пропорции 30..70%.
	restSplitMin = 0.3
	restSplitMax = 0.7

	weaponSpreadMin = 0.15
	weaponSpreadMax = 0.30

	// Minimum rolled value before log in the exponential split.
	minUniform = 0.001

	maxSellValue = 999999
)

// Request describes one item roll.
type Request struct {
	Level   int
	Rarity  model.Rarity
	Quality model.Quality
	Class   model.Class
	Slot    model.Slot
}

// Budget returns round(level × 2.2 × rarityMult × qualityMult).
func Budget(level int, r model.Rarity, q model.Quality) int {
	b := float64(max(1, level)) * data.BudgetPerLevel *
		data.RarityMultiplier(r) * data.GetQualityInfo(q).BudgetMultiplier
	return int(math.Round(b))
}

// RollStats rolls every value of an item for req.
// ID, TemplateID and Name stay empty: they come from the template (see Generator).
func RollStats(req Request, r *rand.Rand) model.Item {
	level := max(1, req.Level)
	budget := Budget(level, req.Rarity, req.Quality)

	it := model.Item{
		Slot:    req.Slot,
		Rarity:  req.Rarity,
		Quality: req.Quality,
		Level:   level,
	}

	shares := splitShares(req.Quality, req.Class, r)
	var bonus model.Attributes
	for i, share := range shares {
		v := int(math.Round(float64(budget)*share)) + dice.IntRange(r, attributeJitterMin, attributeJitterMax)
		bonus = bonus.With(model.StatType(i), max(0, v))
	}
	it.Bonus = bonus

	rollSubstats(&it, budget, r)
	it.AuraBonusPercent = rollAuraBonus(req.Rarity, req.Quality, r)
	it.Power = Power(it)
	it.SellValue = SellValue(it.Power)

	return it
}

// Power returns the item power score.
func Power(it model.Item) int64 {
	combat := it.WeaponDamageAverage()*2 +
		float64(it.Armor)*0.5 +
		it.CritRate*100 +
		it.CritDamage*50 +
		it.Speed*30
	raw := (float64(it.Bonus.Sum())*100 + combat) * (1 + it.AuraBonusPercent/100)
	return max(0, int64(math.Round(raw)))
}

// SellValue returns clamp(round(power×0.006 + 5), 1, 999999).
func SellValue(power int64) int64 {
	v := int64(math.Round(float64(power)*0.006 + 5))
	return min(max(v, 1), maxSellValue)
}

// splitShares returns budget shares indexed by model.StatType (sum = 1).
func splitShares(q model.Quality, class model.Class, r *rand.Rand) [4]float64 {
	split := data.GetQualityInfo(q).Split
	info := data.GetClassInfo(class)
	if !split.Focused() || info.MainStat == info.SecondaryStat {
		return randomShares(r)
	}

	primary := dice.Range(r, split.Primary[0], split.Primary[1])
	secondary := dice.Range(r, split.Secondary[0], split.Secondary[1])
	if primary+secondary > maxFocusedShare {
		secondary = maxFocusedShare - primary
	}
	rest := 1 - primary - secondary

	var shares [4]float64
	shares[info.MainStat] = primary
	shares[info.SecondaryStat] = secondary

	k := dice.Range(r, restSplitMin, restSplitMax)
	first := true
	for i := range shares {
		s := model.StatType(i)
		if s == info.MainStat || s == info.SecondaryStat {
			continue
		}
		if first {
			shares[i] = rest * k
			first = false
			continue
		}
		shares[i] = rest * (1 - k)
	}
	return shares
}

// randomShares — Dirichlet(1,1,1,1)-подобный сплит через экспоненциальные доли.
func randomShares(r *rand.Rand) [4]float64 {
	var shares [4]float64
	var total float64
	for i := range shares {
		shares[i] = -math.Log(math.Max(minUniform, r.Float64()))
		total += shares[i]
	}
	for i := range shares {
		shares[i] /= total
	}
	return shares
}

func rollSubstats(it *model.Item, budget int, r *rand.Rand) {
	p := data.GetSlotPolicy(it.Slot)
	cb := float64(budget)

	switch p.Weapon {
	case data.WeaponRange:
		base := max(1, int(math.Round(cb*p.WeaponFactor)))
		spread := max(1, int(math.Round(float64(base)*dice.Range(r, weaponSpreadMin, weaponSpreadMax))))
		it.WeaponDamageMin = max(1, base-spread+dice.IntRange(r, p.WeaponJitter[0], p.WeaponJitter[1]))
		it.WeaponDamageMax = max(it.WeaponDamageMin+1, base+spread+dice.IntRange(r, p.WeaponJitter[0], p.WeaponJitter[1]))
	case data.WeaponFlat:
		flat := max(1, int(math.Round(cb*p.WeaponFactor))+dice.IntRange(r, p.WeaponJitter[0], p.WeaponJitter[1]))
		it.WeaponDamageMin = flat
		it.WeaponDamageMax = flat
	}

	if p.ArmorFactor > 0 {
		it.Armor = max(1, int(math.Round(cb*p.ArmorFactor))+dice.IntRange(r, p.ArmorJitter[0], p.ArmorJitter[1]))
	}

	if dice.Chance(r, p.CritRate.Chance) {
		it.CritRate = rollCritRate(cb, p.CritRate.Intensity, r)
	}
	if dice.Chance(r, p.CritDamage.Chance) {
		it.CritDamage = rollCritDamage(cb, p.CritDamage.Intensity, r)
	}
	if dice.Chance(r, p.Speed.Chance) {
		it.Speed = rollSpeed(cb, p.Speed.Intensity, r)
	}
}

// Substat caps grow with budget but stay bounded.
func rollCritRate(budget, intensity float64, r *rand.Rand) float64 {
	raw := budget*0.012*intensity + dice.Range(r, 0, 0.5)
	limit := clamp(3+budget*0.008, 3, 8)
	return clamp(roundTenth(raw), 0.1, limit)
}

func rollCritDamage(budget, intensity float64, r *rand.Rand) float64 {
	raw := budget*0.05*intensity + dice.Range(r, 0, 2)
	limit := clamp(15+budget*0.03, 15, 35)
	return clamp(roundTenth(raw), 0.5, limit)
}

func rollSpeed(budget, intensity float64, r *rand.Rand) float64 {
	raw := budget*0.035*intensity + dice.Range(r, 0, 1.5)
	limit := clamp(10+budget*0.02, 10, 25)
	return clamp(roundTenth(raw), 0.5, limit)
}

// rollAuraBonus: Legendary/Mythic always; otherwise gated by rarity.
func rollAuraBonus(rarity model.Rarity, q model.Quality, r *rand.Rand) float64 {
	if ar := data.GetQualityInfo(q).AuraRange; ar[1] > 0 {
		return dice.Range(r, ar[0], ar[1])
	}
	switch {
	case rarity >= model.RarityARank:
		return dice.Range(r, 5, 15)
	case rarity >= model.RarityHero && dice.Chance(r, 0.15):
		return dice.Range(r, 1, 6)
	default:
		return 0
	}
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
