package model

import "strings"

// Class — класс персонажа. Определяет main stat, множители урона/HP
// и пассивки (см. data.Classes).
type Class int32

const (
	ClassWarrior Class = iota
	ClassTank
	ClassAssassin
	ClassArcher
	ClassMage
	ClassNecromancer
)

// AllClasses lists every playable class in ordinal order.
var AllClasses = []Class{
	ClassWarrior,
	ClassTank,
	ClassAssassin,
	ClassArcher,
	ClassMage,
	ClassNecromancer,
}

// String returns human-readable class name.
func (c Class) String() string {
	switch c {
	case ClassWarrior:
		return "Warrior"
	case ClassTank:
		return "Tank"
	case ClassAssassin:
		return "Assassin"
	case ClassArcher:
		return "Archer"
	case ClassMage:
		return "Mage"
	case ClassNecromancer:
		return "Necromancer"
	default:
		return "Unknown"
	}
}

// ParseClass parses class name (case-insensitive).
func ParseClass(s string) (Class, bool) {
	for _, c := range AllClasses {
		if strings.EqualFold(c.String(), s) {
			return c, true
		}
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler (YAML/JSON use the name).
func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Class) UnmarshalText(b []byte) error {
	v, ok := ParseClass(string(b))
	if !ok {
		return &UnknownEnumError{Kind: "class", Value: string(b)}
	}
	*c = v
	return nil
}

// UnknownEnumError is returned when a textual enum value can't be parsed.
type UnknownEnumError struct {
	Kind  string
	Value string
}

func (e *UnknownEnumError) Error() string {
	return "unknown " + e.Kind + " " + `"` + e.Value + `"`
}
