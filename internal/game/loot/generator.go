// Package loot генерирует предметы: бюджет статов по уровню, редкости и
// качеству, сплит по атрибутам, боевые сабстаты по слоту, item power и
// цену продажи.
package loot

import (
	"math/rand/v2"

	"github.com/udisondev/auraforge/internal/data"
	"github.com/udisondev/auraforge/internal/game/dice"
	"github.com/udisondev/auraforge/internal/model"
)

// Generator rolls items from a template catalog.
// Stateless besides the read-only catalog; safe for concurrent use
// as long as every goroutine passes its own *rand.Rand.
type Generator struct {
	catalog *data.Catalog
}

// NewGenerator creates a Generator over catalog.
func NewGenerator(catalog *data.Catalog) *Generator {
	return &Generator{catalog: catalog}
}

// Generate picks a template for req.Class/req.Slot (model.SlotAny = any slot),
// filters req.Quality through the template's allowed list and rolls stats.
// Returns false when no template fits (soft failure).
func (g *Generator) Generate(req Request, r *rand.Rand) (model.Item, bool) {
	pool := g.catalog.For(req.Class, req.Slot)
	if len(pool) == 0 {
		return model.Item{}, false
	}
	tmpl := pool[r.IntN(len(pool))]

	req.Slot = tmpl.Slot
	req.Quality = FilterQuality(tmpl.AllowedQualities, req.Quality)

	it := RollStats(req, r)
	it.ID = dice.NewUUID(r)
	it.TemplateID = tmpl.ID
	it.Name = tmpl.Name
	return it, true
}
