package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Tuning holds the game data the fixers compare against. Values change with
// game releases, so they live in YAML rather than code.
type Tuning struct {
	Bitcoin BitcoinTuning `yaml:"bitcoin"`
	Stash   StashTuning   `yaml:"stash"`

	CurrencyTemplate string `yaml:"currency_template"`

	// Hideout area type -> highest valid level.
	AreaMaxLevels map[int]int `yaml:"area_max_levels"`

	LockedTraders []string `yaml:"locked_traders"`

	CustomizationContainers []ContainerTuning `yaml:"customization_containers"`

	VersionRules []VersionRule `yaml:"version_rules"`
}

type BitcoinTuning struct {
	RecipeID       string `yaml:"recipe_id"`
	ProductionTime int    `yaml:"production_time"`
}

type StashTuning struct {
	AreaType int            `yaml:"area_type"`
	ByLevel  map[int]string `yaml:"by_level"`
	// Editions whose stash template does not follow the area level.
	ByEdition map[string]string `yaml:"by_edition"`
}

// ContainerTuning names an inventory container field and the template used
// when it has to be synthesized.
type ContainerTuning struct {
	Field    string `yaml:"field"`
	Template string `yaml:"template"`
}

// VersionRule lists the fixers that apply to profiles whose format version
// starts with Prefix.
type VersionRule struct {
	Prefix string   `yaml:"prefix"`
	Fixers []string `yaml:"fixers"`
}

// Default returns the embedded tuning.
func Default() Tuning {
	var t Tuning
	if err := yaml.Unmarshal(defaultYAML, &t); err != nil {
		panic(fmt.Sprintf("embedded default.yaml: %v", err))
	}
	return t
}

// override mirrors Tuning with pointer scalars so a file can set a value
// to zero.
type override struct {
	Bitcoin struct {
		RecipeID       *string `yaml:"recipe_id"`
		ProductionTime *int    `yaml:"production_time"`
	} `yaml:"bitcoin"`
	Stash struct {
		AreaType  *int              `yaml:"area_type"`
		ByLevel   map[int]string    `yaml:"by_level"`
		ByEdition map[string]string `yaml:"by_edition"`
	} `yaml:"stash"`
	CurrencyTemplate        *string           `yaml:"currency_template"`
	AreaMaxLevels           map[int]int       `yaml:"area_max_levels"`
	LockedTraders           []string          `yaml:"locked_traders"`
	CustomizationContainers []ContainerTuning `yaml:"customization_containers"`
	VersionRules            []VersionRule     `yaml:"version_rules"`
}

// Load reads a tuning override. Keys absent from the file keep their
// embedded defaults; maps and lists present in the file replace the default
// wholesale.
func Load(path string) (Tuning, error) {
	t := Default()
	if path == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	var over override
	if err := yaml.Unmarshal(raw, &over); err != nil {
		return t, fmt.Errorf("%s: %w", path, err)
	}
	t.merge(over)
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func (t *Tuning) merge(o override) {
	if o.Bitcoin.RecipeID != nil {
		t.Bitcoin.RecipeID = *o.Bitcoin.RecipeID
	}
	if o.Bitcoin.ProductionTime != nil {
		t.Bitcoin.ProductionTime = *o.Bitcoin.ProductionTime
	}
	if o.Stash.AreaType != nil {
		t.Stash.AreaType = *o.Stash.AreaType
	}
	if o.Stash.ByLevel != nil {
		t.Stash.ByLevel = o.Stash.ByLevel
	}
	if o.Stash.ByEdition != nil {
		t.Stash.ByEdition = o.Stash.ByEdition
	}
	if o.CurrencyTemplate != nil {
		t.CurrencyTemplate = *o.CurrencyTemplate
	}
	if o.AreaMaxLevels != nil {
		t.AreaMaxLevels = o.AreaMaxLevels
	}
	if o.LockedTraders != nil {
		t.LockedTraders = o.LockedTraders
	}
	if o.CustomizationContainers != nil {
		t.CustomizationContainers = o.CustomizationContainers
	}
	if o.VersionRules != nil {
		t.VersionRules = o.VersionRules
	}
}

func (t Tuning) Validate() error {
	if t.Bitcoin.ProductionTime <= 0 {
		return fmt.Errorf("bitcoin.production_time must be positive")
	}
	for typ, limit := range t.AreaMaxLevels {
		if limit < 0 {
			return fmt.Errorf("area_max_levels[%d] is negative", typ)
		}
	}
	for i, c := range t.CustomizationContainers {
		if c.Field == "" || c.Template == "" {
			return fmt.Errorf("customization_containers[%d] needs field and template", i)
		}
	}
	seen := map[string]bool{}
	for i, r := range t.VersionRules {
		if r.Prefix == "" {
			return fmt.Errorf("version_rules[%d] has empty prefix", i)
		}
		if seen[r.Prefix] {
			return fmt.Errorf("version_rules: duplicate prefix %q", r.Prefix)
		}
		seen[r.Prefix] = true
	}
	return nil
}
