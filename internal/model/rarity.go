package model

import "strings"

// Rarity — тир редкости предмета. Порядок строгий: правила вида
// "rarity >= Hero" сравнивают ordinal, поэтому значения нельзя переставлять.
type Rarity int32

const (
	RarityERank Rarity = iota
	RarityCommon
	RarityDRank
	RarityCRank
	RarityRare
	RarityBRank
	RarityHero
	RarityARank
	RaritySRank
	RarityMonarch
	RarityGodlike
	RarityAuraFarming
)

// RarityCount is the number of rarity tiers.
const RarityCount = 12

// AllRarities lists every tier from lowest to highest.
var AllRarities = []Rarity{
	RarityERank,
	RarityCommon,
	RarityDRank,
	RarityCRank,
	RarityRare,
	RarityBRank,
	RarityHero,
	RarityARank,
	RaritySRank,
	RarityMonarch,
	RarityGodlike,
	RarityAuraFarming,
}

// String returns human-readable rarity name.
func (r Rarity) String() string {
	switch r {
	case RarityERank:
		return "E-Rank"
	case RarityCommon:
		return "Common"
	case RarityDRank:
		return "D-Rank"
	case RarityCRank:
		return "C-Rank"
	case RarityRare:
		return "Rare"
	case RarityBRank:
		return "B-Rank"
	case RarityHero:
		return "Hero"
	case RarityARank:
		return "A-Rank"
	case RaritySRank:
		return "S-Rank"
	case RarityMonarch:
		return "Monarch"
	case RarityGodlike:
		return "Godlike"
	case RarityAuraFarming:
		return "Aura Farming"
	default:
		return "Unknown"
	}
}

// Valid reports whether r is one of the defined tiers.
func (r Rarity) Valid() bool {
	return r >= RarityERank && r <= RarityAuraFarming
}

// ParseRarity parses rarity name (case-insensitive, "E-Rank" or "erank").
func ParseRarity(s string) (Rarity, bool) {
	norm := normalizeEnumName(s)
	for _, r := range AllRarities {
		if normalizeEnumName(r.String()) == norm {
			return r, true
		}
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler.
func (r Rarity) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rarity) UnmarshalText(b []byte) error {
	v, ok := ParseRarity(string(b))
	if !ok {
		return &UnknownEnumError{Kind: "rarity", Value: string(b)}
	}
	*r = v
	return nil
}

// Quality — вторая ось, независимая от rarity. Влияет на бюджет
// и на то, насколько сплит атрибутов сфокусирован на классе.
type Quality int32

const (
	QualityNormal Quality = iota
	QualityEpic
	QualityLegendary
	QualityMythic
)

// AllQualities lists every quality from lowest to highest.
var AllQualities = []Quality{QualityNormal, QualityEpic, QualityLegendary, QualityMythic}

// String returns human-readable quality name.
func (q Quality) String() string {
	switch q {
	case QualityNormal:
		return "Normal"
	case QualityEpic:
		return "Epic"
	case QualityLegendary:
		return "Legendary"
	case QualityMythic:
		return "Mythic"
	default:
		return "Unknown"
	}
}

// ParseQuality parses quality name (case-insensitive).
func ParseQuality(s string) (Quality, bool) {
	for _, q := range AllQualities {
		if strings.EqualFold(q.String(), s) {
			return q, true
		}
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler.
func (q Quality) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (q *Quality) UnmarshalText(b []byte) error {
	v, ok := ParseQuality(string(b))
	if !ok {
		return &UnknownEnumError{Kind: "quality", Value: string(b)}
	}
	*q = v
	return nil
}

func normalizeEnumName(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}
