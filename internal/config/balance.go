package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/udisondev/auraforge/internal/model"
)

// Balance validation errors.
var (
	ErrInvalidMaxLevel = errors.New("max level must be > 4")
	ErrInvalidCombat   = errors.New("invalid combat rules")
	ErrInvalidCurve    = errors.New("invalid rarity curve")
)

// Balance — игровые константы, которые можно крутить без пересборки.
type Balance struct {
	MaxLevel          int         `yaml:"max_level" env:"MAX_LEVEL"`
	InventoryCapacity int         `yaml:"inventory_capacity" env:"INVENTORY_CAPACITY"`
	Combat            CombatRules `yaml:"combat"`
	Rarity            RarityCurve `yaml:"rarity"`
	Anvil             AnvilRules  `yaml:"anvil"`
}

// DefaultBalance returns the shipped balance values.
func DefaultBalance() Balance {
	return Balance{
		MaxLevel:          100,
		InventoryCapacity: 10,
		Combat:            DefaultCombatRules(),
		Rarity:            DefaultRarityCurve(),
		Anvil:             DefaultAnvilRules(),
	}
}

// Validate checks ranges that would break the formulas.
func (b Balance) Validate() error {
	if b.MaxLevel <= 4 {
		return fmt.Errorf("%w: %d", ErrInvalidMaxLevel, b.MaxLevel)
	}
	if err := b.Combat.Validate(); err != nil {
		return err
	}
	return b.Rarity.Validate()
}

// CombatRules — константы боевого резолвера.
type CombatRules struct {
	MaxTurns           int     `yaml:"max_turns"`
	MaxAttacksPerRound int     `yaml:"max_attacks_per_round"`
	ArmorConstant      float64 `yaml:"armor_constant"`      // armor / (armor + K)
	CrossStatConstant  float64 `yaml:"cross_stat_constant"` // main / (main + K)
	CrossStatFactor    float64 `yaml:"cross_stat_factor"`   // множитель cross-type части
	CrossStatCap       float64 `yaml:"cross_stat_cap"`      // потолок cross-type части
	MitigationCap      float64 `yaml:"mitigation_cap"`      // потолок суммарной митигации
	Variance           float64 `yaml:"variance"`            // ±доля случайного разброса
}

// DefaultCombatRules returns CombatRules with shipped values.
func DefaultCombatRules() CombatRules {
	return CombatRules{
		MaxTurns:           200,
		MaxAttacksPerRound: 5,
		ArmorConstant:      300,
		CrossStatConstant:  500,
		CrossStatFactor:    0.40,
		CrossStatCap:       0.35,
		MitigationCap:      0.70,
		Variance:           0.05,
	}
}

// Validate checks that the rules guarantee termination and a damage floor.
func (c CombatRules) Validate() error {
	switch {
	case c.MaxTurns <= 0:
		return fmt.Errorf("%w: max_turns %d", ErrInvalidCombat, c.MaxTurns)
	case c.MaxAttacksPerRound <= 0:
		return fmt.Errorf("%w: max_attacks_per_round %d", ErrInvalidCombat, c.MaxAttacksPerRound)
	case c.ArmorConstant <= 0 || c.CrossStatConstant <= 0:
		return fmt.Errorf("%w: constants must be positive", ErrInvalidCombat)
	case c.MitigationCap < 0 || c.MitigationCap >= 1:
		return fmt.Errorf("%w: mitigation_cap %.2f not in [0,1)", ErrInvalidCombat, c.MitigationCap)
	case c.Variance < 0 || c.Variance >= 1:
		return fmt.Errorf("%w: variance %.2f not in [0,1)", ErrInvalidCombat, c.Variance)
	}
	return nil
}

// TierShare — доля одного тира в фиксированном распределении (проценты).
type TierShare struct {
	Rarity  model.Rarity `yaml:"rarity"`
	Percent float64      `yaml:"percent"`
}

// FixedDistribution — ручное распределение для раннего уровня.
type FixedDistribution struct {
	Level  int         `yaml:"level"`
	Shares []TierShare `yaml:"shares"`
}

// TailTier — верхний тир с собственным весом вне гауссовой кривой.
// Доля растёт линейно от 0 на StartLevel до MaxFraction на max level.
type TailTier struct {
	Rarity      model.Rarity `yaml:"rarity"`
	StartLevel  int          `yaml:"start_level"`
	MaxFraction float64      `yaml:"max_fraction"`
}

// RarityCurve — параметры скользящего окна редкости.
type RarityCurve struct {
	Total int `yaml:"total"` // нормировочная база весов

	Fixed []FixedDistribution `yaml:"fixed"`

	CurveStartLevel int     `yaml:"curve_start_level"`
	CurveTiers      int     `yaml:"curve_tiers"` // тиры 0..CurveTiers-1 под гауссом
	FocusStart      float64 `yaml:"focus_start"`
	FocusEnd        float64 `yaml:"focus_end"`
	FocusExponent   float64 `yaml:"focus_exponent"`
	SpreadBase      float64 `yaml:"spread_base"`
	SpreadAmplitude float64 `yaml:"spread_amplitude"`
	SuppressAbove   float64 `yaml:"suppress_above"`
	SuppressFactor  float64 `yaml:"suppress_factor"`

	Tails []TailTier `yaml:"tails"`
}

// DefaultRarityCurve returns the shipped curve.
func DefaultRarityCurve() RarityCurve {
	return RarityCurve{
		Total: 10000,
		Fixed: []FixedDistribution{
			{Level: 1, Shares: []TierShare{{model.RarityERank, 100}}},
			{Level: 2, Shares: []TierShare{{model.RarityERank, 85}, {model.RarityCommon, 15}}},
			{Level: 3, Shares: []TierShare{{model.RarityERank, 70}, {model.RarityCommon, 25}, {model.RarityDRank, 5}}},
		},
		CurveStartLevel: 4,
		CurveTiers:      10,
		FocusStart:      0.5,
		FocusEnd:        9.0,
		FocusExponent:   0.75,
		SpreadBase:      0.8,
		SpreadAmplitude: 1.4,
		SuppressAbove:   2.5,
		SuppressFactor:  0.1,
		Tails: []TailTier{
			{Rarity: model.RarityGodlike, StartLevel: 40, MaxFraction: 0.08},
			{Rarity: model.RarityAuraFarming, StartLevel: 60, MaxFraction: 0.05},
		},
	}
}

// Validate checks the curve parameters.
func (c RarityCurve) Validate() error {
	if c.Total <= 0 {
		return fmt.Errorf("%w: total %d", ErrInvalidCurve, c.Total)
	}
	if c.CurveTiers <= 0 || c.CurveTiers > model.RarityCount {
		return fmt.Errorf("%w: curve_tiers %d", ErrInvalidCurve, c.CurveTiers)
	}
	if c.SpreadBase <= 0 {
		return fmt.Errorf("%w: spread_base %.2f", ErrInvalidCurve, c.SpreadBase)
	}
	var tails float64
	for _, t := range c.Tails {
		if !t.Rarity.Valid() || t.MaxFraction < 0 {
			return fmt.Errorf("%w: tail %s", ErrInvalidCurve, t.Rarity)
		}
		tails += t.MaxFraction
	}
	if tails >= 1 {
		return fmt.Errorf("%w: tail fractions sum to %.2f", ErrInvalidCurve, tails)
	}
	return nil
}

// AnvilRules — кривые апгрейда наковальни и стоимость крафта.
type AnvilRules struct {
	EssencePerCraft int64         `yaml:"essence_per_craft"`
	UpgradeBaseCost float64       `yaml:"upgrade_base_cost"`
	UpgradeCostRate float64       `yaml:"upgrade_cost_rate"`
	UpgradeBaseTime time.Duration `yaml:"upgrade_base_time"`
	UpgradeTimeRate float64       `yaml:"upgrade_time_rate"`
	SkipStep        time.Duration `yaml:"skip_step"` // 1 mana crystal за каждый начатый шаг
}

// DefaultAnvilRules returns AnvilRules with shipped values.
func DefaultAnvilRules() AnvilRules {
	return AnvilRules{
		EssencePerCraft: 1,
		UpgradeBaseCost: 50,
		UpgradeCostRate: 1.095,
		UpgradeBaseTime: 60 * time.Second,
		UpgradeTimeRate: 1.058,
		SkipStep:        5 * time.Minute,
	}
}
