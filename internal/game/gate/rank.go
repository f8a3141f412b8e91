package gate

import "math/rand/v2"

// Rank — ранг гейта, определяет награды, силу врага и шансы дропа.
type Rank int32

const (
	RankE Rank = iota
	RankD
	RankC
	RankB
	RankA
	RankS
)

// RankCount is the number of gate ranks.
const RankCount = 6

// String returns human-readable rank name.
func (r Rank) String() string {
	switch r {
	case RankE:
		return "E"
	case RankD:
		return "D"
	case RankC:
		return "C"
	case RankB:
		return "B"
	case RankA:
		return "A"
	case RankS:
		return "S"
	default:
		return "Unknown"
	}
}

// RankInfo — параметры одного ранга.
type RankInfo struct {
	Rank Rank

	// Weight of the rank in the offer roll, out of 100.
	Weight int
	// RewardMultiplier scales XP, gold and essence.
	RewardMultiplier float64

	// Enemy mirrors the player's stats scaled by U(EnemyMin, EnemyMax).
	EnemyMin float64
	EnemyMax float64

	// Drop chances, %.
	RandomItemChance float64
	EpicItemChance   float64
}

// rankTable indexed by Rank ordinal. Epic drops only from S.
var rankTable = [...]RankInfo{
	{Rank: RankE, Weight: 30, RewardMultiplier: 0.90, EnemyMin: 0.80, EnemyMax: 0.95, RandomItemChance: 3},
	{Rank: RankD, Weight: 25, RewardMultiplier: 1.00, EnemyMin: 0.95, EnemyMax: 1.05, RandomItemChance: 5},
	{Rank: RankC, Weight: 18, RewardMultiplier: 1.15, EnemyMin: 1.05, EnemyMax: 1.20, RandomItemChance: 8},
	{Rank: RankB, Weight: 12, RewardMultiplier: 1.35, EnemyMin: 1.20, EnemyMax: 1.40, RandomItemChance: 12},
	{Rank: RankA, Weight: 10, RewardMultiplier: 1.60, EnemyMin: 1.40, EnemyMax: 1.65, RandomItemChance: 16},
	{Rank: RankS, Weight: 5, RewardMultiplier: 2.10, EnemyMin: 1.65, EnemyMax: 2.05, RandomItemChance: 40, EpicItemChance: 20},
}

// GetRankInfo returns the rank record; unknown ranks map to E.
func GetRankInfo(r Rank) RankInfo {
	if r < 0 || int(r) >= len(rankTable) {
		return rankTable[RankE]
	}
	return rankTable[r]
}

// RollRank draws a rank by table weights.
func RollRank(r *rand.Rand) Rank {
	total := 0
	for _, ri := range rankTable {
		total += ri.Weight
	}
	roll := 1 + r.IntN(total)
	acc := 0
	for _, ri := range rankTable {
		acc += ri.Weight
		if roll <= acc {
			return ri.Rank
		}
	}
	return RankE
}
