package model

import "slices"

// ItemTemplate — шаблон предмета из каталога (data/templates.yaml).
// Rarity на шаблоне нет: она роллится при крафте/дропе.
type ItemTemplate struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Slot Slot   `yaml:"slot"`

	// AllowedClasses restricts weapon slots. Empty = nobody for weapons,
	// ignored for every other slot (armor/accessories fit all classes).
	AllowedClasses []Class `yaml:"allowed_classes"`

	// AllowedQualities is required; the generator never rolls a quality
	// outside this list.
	AllowedQualities []Quality `yaml:"allowed_qualities"`
}

// AllowsClass reports whether class c may receive this template.
func (t *ItemTemplate) AllowsClass(c Class) bool {
	if !t.Slot.IsWeapon() {
		return true
	}
	return slices.Contains(t.AllowedClasses, c)
}

// AllowsQuality reports whether q is in the allowed list.
func (t *ItemTemplate) AllowsQuality(q Quality) bool {
	return slices.Contains(t.AllowedQualities, q)
}
