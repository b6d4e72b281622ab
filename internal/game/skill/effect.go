// Package skill defines the skill catalog and the effect engine that turns
// acquired skills into stat modifiers, combat modifiers, limited-use abilities,
// and one-off stat changes.
package skill

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/bruto/internal/game/character"
)

// Kind tags the variant of an Effect.
type Kind string

const (
	KindStatBoost       Kind = "stat-boost"
	KindArmorBonus      Kind = "armor-bonus"
	KindEvasionModifier Kind = "evasion-modifier"
	KindCriticalBonus   Kind = "critical-bonus"
	KindDamageModifier  Kind = "damage-modifier"
	KindMultiHitBonus   Kind = "multi-hit-bonus"
	KindSpecialAbility  Kind = "special-ability"
	KindLevelUpBonus    Kind = "level-up-bonus"
)

var kinds = map[Kind]bool{
	KindStatBoost: true, KindArmorBonus: true, KindEvasionModifier: true,
	KindCriticalBonus: true, KindDamageModifier: true, KindMultiHitBonus: true,
	KindSpecialAbility: true, KindLevelUpBonus: true,
}

// Timing says when an Effect applies.
type Timing string

const (
	TimingImmediate     Timing = "immediate"
	TimingPassive       Timing = "passive"
	TimingOnLevelUp     Timing = "on-level-up"
	TimingPerTurn       Timing = "per-turn"
	TimingOnHit         Timing = "on-hit"
	TimingConditional   Timing = "conditional"
	TimingOnCombatStart Timing = "on-combat-start"
)

var timings = map[Timing]bool{
	TimingImmediate: true, TimingPassive: true, TimingOnLevelUp: true, TimingPerTurn: true,
	TimingOnHit: true, TimingConditional: true, TimingOnCombatStart: true,
}

// Mode says how a numeric value modifies its target.
type Mode string

const (
	ModeFlat       Mode = "flat"
	ModePercentage Mode = "percentage"
	// ModeBoth combines flat and percentage modification. It has no defined
	// ordering and is rejected by Validate.
	ModeBoth Mode = "both"
)

// Target selects which side an effect acts on.
type Target string

const (
	TargetSelf     Target = "self"
	TargetOpponent Target = "opponent"
)

// WeaponType tags weapon-specific damage modifiers.
type WeaponType string

const (
	WeaponBlunt  WeaponType = "blunt"
	WeaponSlash  WeaponType = "slash"
	WeaponPierce WeaponType = "pierce"
)

// ErrUnsupportedModifierMode is returned by Validate for ModeBoth.
var ErrUnsupportedModifierMode = errors.New("combined flat and percentage modifier mode is not supported")

// Effect is one immutable effect of a skill. Optional fields are zero when absent.
type Effect struct {
	Kind        Kind           `yaml:"kind"`
	Timing      Timing         `yaml:"timing"`
	Stat        character.Stat `yaml:"stat"`
	Value       *float64       `yaml:"value"`
	Mode        Mode           `yaml:"mode"`
	Target      Target         `yaml:"target"`
	WeaponType  WeaponType     `yaml:"weapon_type"`
	Description string         `yaml:"description"`

	// UsesPerCombat is the base use count of a limited-use ability.
	UsesPerCombat int `yaml:"uses_per_combat"`
	// ScalingStat grants one extra use per ScalingThreshold points of the stat.
	ScalingStat      character.Stat `yaml:"scaling_stat"`
	ScalingThreshold float64        `yaml:"scaling_threshold"`
}

// HasValue reports whether the effect carries a numeric value.
func (e Effect) HasValue() bool {
	return e.Value != nil
}

// ValueOr returns the effect's value or def when absent.
func (e Effect) ValueOr(def float64) float64 {
	if e.Value == nil {
		return def
	}
	return *e.Value
}

// Validate checks the effect's tags. Missing optional fields are not errors;
// consumers skip effects that lack what they need.
//
// Postcondition: Returns ErrUnsupportedModifierMode (wrapped) for ModeBoth.
func (e Effect) Validate() error {
	if !kinds[e.Kind] {
		return fmt.Errorf("unknown effect kind %q", e.Kind)
	}
	if !timings[e.Timing] {
		return fmt.Errorf("unknown effect timing %q", e.Timing)
	}
	switch e.Mode {
	case "", ModeFlat, ModePercentage:
	case ModeBoth:
		return fmt.Errorf("effect %s: %w", e.Kind, ErrUnsupportedModifierMode)
	default:
		return fmt.Errorf("unknown modifier mode %q", e.Mode)
	}
	if e.Stat != "" && !e.Stat.Valid() {
		return fmt.Errorf("unknown stat %q", e.Stat)
	}
	if e.ScalingStat != "" {
		if !e.ScalingStat.Valid() {
			return fmt.Errorf("unknown scaling stat %q", e.ScalingStat)
		}
		if e.ScalingThreshold <= 0 {
			return fmt.Errorf("scaling threshold must be > 0, got %v", e.ScalingThreshold)
		}
	}
	if e.UsesPerCombat < 0 {
		return fmt.Errorf("uses_per_combat must be >= 0, got %d", e.UsesPerCombat)
	}
	return nil
}

// Skill is a catalog entry.
type Skill struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Effects     []Effect `yaml:"effects"`
}
