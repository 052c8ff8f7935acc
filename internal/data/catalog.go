// Package data loads the content catalog the engine runs on: classes,
// base items, skills, monster templates, affix pools and the balancing
// rules around them.
package data

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/wavecrawl/internal/model"
)

//go:embed content/default.yaml
var defaultContent []byte

// catalogFile is the on-disk layout of a catalog. Lists keep the file
// readable; LoadCatalog indexes them into a model.Catalog.
type catalogFile struct {
	Classes  []model.ClassTemplate       `yaml:"classes"`
	Items    []model.BaseItem            `yaml:"items"`
	Skills   []model.Skill               `yaml:"skills"`
	Monsters []model.MonsterTemplate     `yaml:"monsters"`
	Affixes  model.AffixPool             `yaml:"affixes"`
	Rarities map[string]model.RarityRule `yaml:"rarities"`
	Tiers    map[string]model.TierRule   `yaml:"tiers"`
	Levels   model.LevelTable            `yaml:"levels"`
	LevelUp  model.LevelUpPolicy         `yaml:"level_up"`
	Spawn    model.SpawnRules            `yaml:"spawn"`
}

// DefaultCatalog parses the embedded default content.
func DefaultCatalog() (*model.Catalog, error) {
	c, err := ParseCatalog(defaultContent)
	if err != nil {
		return nil, fmt.Errorf("default catalog: %w", err)
	}
	return c, nil
}

// LoadCatalog reads and validates a catalog file. An empty path loads the
// embedded default content.
func LoadCatalog(path string) (*model.Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	c, err := ParseCatalog(raw)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog decodes YAML content, indexes it and validates it.
func ParseCatalog(raw []byte) (*model.Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	c, err := f.build()
	if err != nil {
		return nil, err
	}
	if err := Validate(c); err != nil {
		return nil, err
	}

	slog.Debug("loaded catalog",
		"classes", len(c.Classes),
		"items", len(c.BaseItems),
		"skills", len(c.Skills),
		"monsters", len(c.Monsters),
		"prefixes", len(c.Affixes.Prefixes),
		"suffixes", len(c.Affixes.Suffixes))

	return c, nil
}

// build indexes the file lists. Duplicate ids and unknown rarity or tier
// names are reported together.
func (f *catalogFile) build() (*model.Catalog, error) {
	var errs []error
	c := &model.Catalog{
		Classes:   make(map[string]model.ClassTemplate, len(f.Classes)),
		BaseItems: make(map[model.BaseItemID]model.BaseItem, len(f.Items)),
		Skills:    make(map[model.SkillID]model.Skill, len(f.Skills)),
		Monsters:  f.Monsters,
		Affixes:   f.Affixes,
		Rarities:  make(map[model.Rarity]model.RarityRule, len(f.Rarities)),
		Tiers:     make(map[model.Tier]model.TierRule, len(f.Tiers)),
		Levels:    f.Levels,
		LevelUp:   f.LevelUp,
		Spawn:     f.Spawn,
	}

	for _, cls := range f.Classes {
		if _, dup := c.Classes[cls.Name]; dup {
			errs = append(errs, fmt.Errorf("class %q: duplicate", cls.Name))
		}
		c.Classes[cls.Name] = cls
	}
	for _, it := range f.Items {
		if _, dup := c.BaseItems[it.ID]; dup {
			errs = append(errs, fmt.Errorf("item %q: duplicate", it.ID))
		}
		c.BaseItems[it.ID] = it
	}
	for _, s := range f.Skills {
		if _, dup := c.Skills[s.ID]; dup {
			errs = append(errs, fmt.Errorf("skill %q: duplicate", s.ID))
		}
		c.Skills[s.ID] = s
	}

	// position is implied by the list an affix sits in
	for i := range c.Affixes.Prefixes {
		c.Affixes.Prefixes[i].Position = model.AffixPrefix
	}
	for i := range c.Affixes.Suffixes {
		c.Affixes.Suffixes[i].Position = model.AffixSuffix
	}

	for name, rule := range f.Rarities {
		var r model.Rarity
		if err := r.UnmarshalText([]byte(name)); err != nil {
			errs = append(errs, fmt.Errorf("rarities: %w", err))
			continue
		}
		c.Rarities[r] = rule
	}
	for name, rule := range f.Tiers {
		var t model.Tier
		if err := t.UnmarshalText([]byte(name)); err != nil {
			errs = append(errs, fmt.Errorf("tiers: %w", err))
			continue
		}
		c.Tiers[t] = rule
	}

	if len(c.Levels.Thresholds) == 0 {
		c.Levels = DefaultLevelTable()
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return c, nil
}
