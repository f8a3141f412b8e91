package model

// StatType identifies one of the four spendable base attributes.
// Used as the "main stat type" of a class for cross-type mitigation.
type StatType int32

const (
	StatStrength StatType = iota
	StatDexterity
	StatIntellect
	StatVitality
)

// String returns short attribute name.
func (s StatType) String() string {
	switch s {
	case StatStrength:
		return "STR"
	case StatDexterity:
		return "DEX"
	case StatIntellect:
		return "INT"
	case StatVitality:
		return "VIT"
	default:
		return "Unknown"
	}
}

// Attributes — четыре базовых атрибута персонажа (или бонусы предмета к ним).
type Attributes struct {
	Strength  int `yaml:"str" json:"str"`
	Dexterity int `yaml:"dex" json:"dex"`
	Intellect int `yaml:"int" json:"int"`
	Vitality  int `yaml:"vit" json:"vit"`
}

// Get returns value of the given attribute.
func (a Attributes) Get(s StatType) int {
	switch s {
	case StatStrength:
		return a.Strength
	case StatDexterity:
		return a.Dexterity
	case StatIntellect:
		return a.Intellect
	case StatVitality:
		return a.Vitality
	default:
		return 0
	}
}

// With returns a copy with the given attribute replaced.
func (a Attributes) With(s StatType, v int) Attributes {
	switch s {
	case StatStrength:
		a.Strength = v
	case StatDexterity:
		a.Dexterity = v
	case StatIntellect:
		a.Intellect = v
	case StatVitality:
		a.Vitality = v
	}
	return a
}

// Add returns per-attribute sum.
func (a Attributes) Add(b Attributes) Attributes {
	return Attributes{
		Strength:  a.Strength + b.Strength,
		Dexterity: a.Dexterity + b.Dexterity,
		Intellect: a.Intellect + b.Intellect,
		Vitality:  a.Vitality + b.Vitality,
	}
}

// NonNegative clamps every attribute at 0.
func (a Attributes) NonNegative() Attributes {
	return Attributes{
		Strength:  max(0, a.Strength),
		Dexterity: max(0, a.Dexterity),
		Intellect: max(0, a.Intellect),
		Vitality:  max(0, a.Vitality),
	}
}

// Sum returns STR+DEX+INT+VIT.
func (a Attributes) Sum() int {
	return a.Strength + a.Dexterity + a.Intellect + a.Vitality
}
