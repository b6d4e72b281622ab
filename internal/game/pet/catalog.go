// Package pet implements the companion catalog and the rules that govern
// owning, acquiring, and fighting with companions.
package pet

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/bruto/internal/game/character"
	"github.com/cory-johannsen/bruto/internal/game/stats"
)

// Known companion types.
const (
	Perro   character.PetType = "perro"
	Pantera character.PetType = "pantera"
	Oso     character.PetType = "oso"
)

// Skills that change what a companion costs in resistance.
const (
	SkillA = "vitality"
	SkillB = "immortality"
)

// AbilityDisarm lets a companion knock the weapon out of its target's hands.
const AbilityDisarm = "disarm"

// DamageTier buckets a companion's damage range.
type DamageTier string

const (
	TierLow    DamageTier = "low"
	TierMedium DamageTier = "medium"
	TierHigh   DamageTier = "high"
)

// CombatStats is a companion's fixed fighting profile.
type CombatStats struct {
	HP             int        `yaml:"hp"`
	DamageTier     DamageTier `yaml:"damage_tier"`
	Agility        int        `yaml:"agility"`
	Speed          int        `yaml:"speed"`
	MultiHitChance float64    `yaml:"multi_hit_chance"`
	EvasionChance  float64    `yaml:"evasion_chance"`
	// Initiative is the per-type turn-order modifier; lower acts earlier.
	Initiative int `yaml:"initiative"`
}

// CostTable holds the four precomputed resistance costs of a companion.
// The relation between skills and cost is not linear, so every entry is explicit.
type CostTable struct {
	None   float64 `yaml:"none"`
	SkillA float64 `yaml:"skill_a"`
	SkillB float64 `yaml:"skill_b"`
	Both   float64 `yaml:"both"`
}

// OwnerBonus is a flat stat bonus a companion grants its owner.
type OwnerBonus struct {
	Stat   character.Stat `yaml:"stat"`
	Amount float64        `yaml:"amount"`
}

// Definition is one catalog entry.
type Definition struct {
	ID             character.PetType   `yaml:"id"`
	Name           string              `yaml:"name"`
	Stats          CombatStats         `yaml:"stats"`
	Stackable      bool                `yaml:"stackable"`
	MaxStacks      int                 `yaml:"max_stacks"`
	UsesSlots      bool                `yaml:"uses_slots"`
	ExclusiveWith  []character.PetType `yaml:"exclusive_with"`
	ResistanceCost CostTable           `yaml:"resistance_cost"`
	Abilities      []string            `yaml:"abilities"`
	OwnerBonuses   []OwnerBonus        `yaml:"owner_bonuses"`
}

// Excludes reports whether d lists t as mutually exclusive.
func (d *Definition) Excludes(t character.PetType) bool {
	for _, x := range d.ExclusiveWith {
		if x == t {
			return true
		}
	}
	return false
}

// HasAbility reports whether d carries the named special ability.
func (d *Definition) HasAbility(name string) bool {
	for _, a := range d.Abilities {
		if a == name {
			return true
		}
	}
	return false
}

// Catalog holds companion definitions keyed by type, in declaration order.
// It is read-only after construction and safe to share.
type Catalog struct {
	defs  map[character.PetType]*Definition
	order []character.PetType
}

// NewCatalog validates defs and builds a Catalog preserving their order.
//
// Postcondition: Returns a Catalog or an error naming the first invalid definition.
func NewCatalog(defs []*Definition) (*Catalog, error) {
	c := &Catalog{defs: make(map[character.PetType]*Definition, len(defs))}
	for _, d := range defs {
		if d == nil || d.ID == "" {
			return nil, fmt.Errorf("companion must have a non-empty id")
		}
		if _, dup := c.defs[d.ID]; dup {
			return nil, fmt.Errorf("duplicate companion id %q", d.ID)
		}
		if err := validateDefinition(d); err != nil {
			return nil, fmt.Errorf("companion %q: %w", d.ID, err)
		}
		c.defs[d.ID] = d
		c.order = append(c.order, d.ID)
	}
	for _, d := range defs {
		for _, x := range d.ExclusiveWith {
			if _, ok := c.defs[x]; !ok {
				return nil, fmt.Errorf("companion %q: exclusive_with references unknown companion %q", d.ID, x)
			}
		}
	}
	return c, nil
}

func validateDefinition(d *Definition) error {
	if _, _, err := DamageRange(d.Stats.DamageTier); err != nil {
		return err
	}
	if d.Stats.HP <= 0 {
		return fmt.Errorf("hp must be > 0, got %d", d.Stats.HP)
	}
	if d.MaxStacks < 1 {
		return fmt.Errorf("max_stacks must be >= 1, got %d", d.MaxStacks)
	}
	if !d.Stackable && d.MaxStacks > 1 {
		return fmt.Errorf("max_stacks %d requires stackable", d.MaxStacks)
	}
	if d.UsesSlots && d.MaxStacks > len(character.Slots) {
		return fmt.Errorf("max_stacks %d exceeds the %d available slots", d.MaxStacks, len(character.Slots))
	}
	rc := d.ResistanceCost
	if rc.None < 0 || rc.SkillA < 0 || rc.SkillB < 0 || rc.Both < 0 {
		return fmt.Errorf("resistance costs must be >= 0")
	}
	for _, b := range d.OwnerBonuses {
		if !b.Stat.Valid() {
			return fmt.Errorf("owner bonus references unknown stat %q", b.Stat)
		}
	}
	return nil
}

// LoadFile parses the YAML companion list at path.
//
// Precondition: path must be a readable YAML file.
// Postcondition: Returns a validated Catalog or a non-nil error.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	var defs []*Definition
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&defs); err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	return NewCatalog(defs)
}

// Get returns the definition for t, or nil if t is unknown.
func (c *Catalog) Get(t character.PetType) *Definition {
	return c.defs[t]
}

// Types returns every companion type in declaration order.
func (c *Catalog) Types() []character.PetType {
	out := make([]character.PetType, len(c.order))
	copy(out, c.order)
	return out
}

// Contributions returns the flat owner bonuses granted by the owned roster,
// in roster order. Records of unknown type contribute nothing.
func (c *Catalog) Contributions(owned []character.OwnedPet) []stats.Contribution {
	var out []stats.Contribution
	for _, o := range owned {
		d := c.Get(o.Type)
		if d == nil {
			continue
		}
		for _, b := range d.OwnerBonuses {
			out = append(out, stats.Contribution{
				Stat:        b.Stat,
				Amount:      b.Amount,
				Source:      stats.SourceCompanion,
				Description: d.Name,
			})
		}
	}
	return out
}
