package data

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/auraforge/internal/model"
)

//go:embed templates.yaml
var defaultTemplatesYAML []byte

// Catalog validation errors.
var (
	ErrEmptyTemplateID     = errors.New("template id is empty")
	ErrDuplicateTemplateID = errors.New("duplicate template id")
	ErrNoAllowedQualities  = errors.New("template has no allowed qualities")
)

type catalogFile struct {
	Templates []model.ItemTemplate `yaml:"templates"`
}

// LoadItemTemplates parses the embedded template catalog.
func LoadItemTemplates() (*Catalog, error) {
	c, err := ParseCatalog(defaultTemplatesYAML)
	if err != nil {
		return nil, fmt.Errorf("loading embedded item templates: %w", err)
	}
	slog.Info("loaded item templates", "count", c.Len())
	return c, nil
}

// ParseCatalog builds a Catalog from YAML (same schema as templates.yaml).
func ParseCatalog(raw []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing item templates: %w", err)
	}
	return NewCatalog(f.Templates)
}
