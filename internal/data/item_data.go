package data

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/auraforge/internal/model"
)

// Catalog — registry шаблонов предметов.
// Read-only после создания, безопасен для конкурентного чтения.
type Catalog struct {
	templates []*model.ItemTemplate
	byID      map[string]*model.ItemTemplate
}

// NewCatalog validates templates and builds a Catalog.
func NewCatalog(templates []model.ItemTemplate) (*Catalog, error) {
	c := &Catalog{
		templates: make([]*model.ItemTemplate, 0, len(templates)),
		byID:      make(map[string]*model.ItemTemplate, len(templates)),
	}

	for i := range templates {
		t := templates[i]
		if t.ID == "" {
			return nil, fmt.Errorf("template #%d: %w", i, ErrEmptyTemplateID)
		}
		if _, ok := c.byID[t.ID]; ok {
			return nil, fmt.Errorf("template %q: %w", t.ID, ErrDuplicateTemplateID)
		}
		if len(t.AllowedQualities) == 0 {
			return nil, fmt.Errorf("template %q: %w", t.ID, ErrNoAllowedQualities)
		}
		if t.Slot.IsWeapon() && len(t.AllowedClasses) == 0 {
			// Валидно, но такой шаблон никогда не выпадет.
			slog.Warn("weapon template without allowed classes", "id", t.ID)
		}
		c.templates = append(c.templates, &t)
		c.byID[t.ID] = &t
	}

	return c, nil
}

// Len returns number of templates.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.templates)
}

// Get returns template by id or nil.
func (c *Catalog) Get(id string) *model.ItemTemplate {
	if c == nil {
		return nil
	}
	return c.byID[id]
}

// For returns templates the class may receive in the given slot.
// slot == model.SlotAny returns the whole class pool.
// Returns nil when nothing matches.
func (c *Catalog) For(class model.Class, slot model.Slot) []*model.ItemTemplate {
	if c == nil {
		return nil
	}
	var pool []*model.ItemTemplate
	for _, t := range c.templates {
		if slot != model.SlotAny && t.Slot != slot {
			continue
		}
		if !t.AllowsClass(class) {
			continue
		}
		pool = append(pool, t)
	}
	return pool
}
