package data

import "github.com/udisondev/auraforge/internal/model"

// BudgetPerLevel — базовый множитель бюджета статов на уровень предмета.
const BudgetPerLevel = 2.2

// rarityMultipliers — крутой рост к верхним тирам (0.8x → 18x).
var rarityMultipliers = [model.RarityCount]float64{
	model.RarityERank:       0.8,
	model.RarityCommon:      1.0,
	model.RarityDRank:       1.3,
	model.RarityCRank:       1.7,
	model.RarityRare:        2.2,
	model.RarityBRank:       3.0,
	model.RarityHero:        4.0,
	model.RarityARank:       5.5,
	model.RaritySRank:       7.5,
	model.RarityMonarch:     10.0,
	model.RarityGodlike:     13.0,
	model.RarityAuraFarming: 18.0,
}

// RarityMultiplier returns budget multiplier for rarity (1.0 for unknown).
func RarityMultiplier(r model.Rarity) float64 {
	if !r.Valid() {
		return 1
	}
	return rarityMultipliers[r]
}

// QualitySplit — диапазоны долей primary/secondary атрибута для
// class-focused сплита. Zero value = случайный сплит без фокуса.
type QualitySplit struct {
	Primary   [2]float64
	Secondary [2]float64
}

// Focused reports whether quality uses a class-focused split.
func (s QualitySplit) Focused() bool {
	return s.Primary[1] > 0
}

// QualityInfo — параметры качества.
type QualityInfo struct {
	Quality          model.Quality
	BudgetMultiplier float64
	Split            QualitySplit
	// AuraRange > 0 guarantees an aura bonus in [min, max).
	AuraRange [2]float64
}

var qualityTable = [...]QualityInfo{
	model.QualityNormal: {
		Quality: model.QualityNormal, BudgetMultiplier: 1.0,
	},
	model.QualityEpic: {
		Quality: model.QualityEpic, BudgetMultiplier: 1.2,
		Split: QualitySplit{Primary: [2]float64{0.50, 0.60}, Secondary: [2]float64{0.20, 0.30}},
	},
	model.QualityLegendary: {
		Quality: model.QualityLegendary, BudgetMultiplier: 1.5,
		Split:     QualitySplit{Primary: [2]float64{0.60, 0.70}, Secondary: [2]float64{0.15, 0.25}},
		AuraRange: [2]float64{10, 20},
	},
	model.QualityMythic: {
		Quality: model.QualityMythic, BudgetMultiplier: 1.8,
		Split:     QualitySplit{Primary: [2]float64{0.70, 0.80}, Secondary: [2]float64{0.10, 0.15}},
		AuraRange: [2]float64{15, 25},
	},
}

// GetQualityInfo returns quality record (Normal for unknown values).
func GetQualityInfo(q model.Quality) QualityInfo {
	if q < 0 || int(q) >= len(qualityTable) {
		return qualityTable[model.QualityNormal]
	}
	return qualityTable[q]
}
