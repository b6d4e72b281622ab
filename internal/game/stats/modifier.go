// Package stats resolves a character's base stats and modifiers into an
// effective-stats summary.
package stats

import "github.com/cory-johannsen/bruto/internal/game/character"

// SourceKind names where a modifier came from.
type SourceKind string

const (
	SourceSkill       SourceKind = "skill"
	SourceCompanion   SourceKind = "companion"
	SourceProgression SourceKind = "progression"
	SourceEquipment   SourceKind = "equipment"
	SourceOther       SourceKind = "other"
)

// Contribution is a flat bonus applied to one stat.
type Contribution struct {
	Stat        character.Stat
	Amount      float64
	Source      SourceKind
	Description string
}

// Multiplier is a percentage bonus applied to one stat; Factor 0.5 means +50%.
type Multiplier struct {
	Stat        character.Stat
	Factor      float64
	Source      SourceKind
	Description string
}

// Context carries every modifier to apply. Order within each list is significant.
type Context struct {
	Contributions []Contribution
	Multipliers   []Multiplier
}

// Merge returns a Context holding c's modifiers followed by other's.
func (c Context) Merge(other Context) Context {
	out := Context{
		Contributions: make([]Contribution, 0, len(c.Contributions)+len(other.Contributions)),
		Multipliers:   make([]Multiplier, 0, len(c.Multipliers)+len(other.Multipliers)),
	}
	out.Contributions = append(append(out.Contributions, c.Contributions...), other.Contributions...)
	out.Multipliers = append(append(out.Multipliers, c.Multipliers...), other.Multipliers...)
	return out
}
