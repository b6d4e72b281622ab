// Package combat holds the per-battle projections and rolls the turn
// orchestrator consumes: fighters built from effective stats, and the
// extra-turn processor.
package combat

import (
	"github.com/cory-johannsen/bruto/internal/game/character"
	"github.com/cory-johannsen/bruto/internal/game/skill"
	"github.com/cory-johannsen/bruto/internal/game/stats"
)

// Fighter is a character's battle copy. Base stats are never touched by combat.
type Fighter struct {
	ID         int64
	Name       string
	HP         float64
	MaxHP      float64
	Strength   float64
	Speed      float64
	Agility    float64
	Resistance float64
	Modifiers  skill.CombatModifiers
	// Uses maps skill ID to remaining uses of its limited-use ability.
	Uses map[string]int
}

// NewFighter builds a Fighter from c's base stats, the passive skill modifiers
// engine yields for c, and extra (companion owner bonuses, progression).
// Immediate skill effects are assumed already applied to c's base stats.
//
// Precondition: c and engine must not be nil.
func NewFighter(c *character.Character, engine *skill.Engine, extra stats.Context) *Fighter {
	sum := stats.BuildSummary(c, engine.CombatStatModifiers(c).Merge(extra))
	eff := func(k character.Stat) float64 {
		if l, ok := sum.Stat(k); ok {
			return l.Effective
		}
		return c.Stats.Get(k)
	}
	abilities := engine.ActiveAbilities(c)
	uses := make(map[string]int, len(abilities))
	for _, a := range abilities {
		uses[a.SkillID] += a.Uses
	}
	return &Fighter{
		ID:         c.ID,
		Name:       c.Name,
		HP:         eff(character.StatHP),
		MaxHP:      eff(character.StatMaxHP),
		Strength:   eff(character.StatStrength),
		Speed:      eff(character.StatSpeed),
		Agility:    eff(character.StatAgility),
		Resistance: eff(character.StatResistance),
		Modifiers:  engine.CombatModifiers(c),
		Uses:       uses,
	}
}

// CombatSpeed returns the fighter's effective speed.
func (f *Fighter) CombatSpeed() float64 { return f.Speed }

// UseAbility consumes one use of skill id's ability.
//
// Postcondition: Returns false, consuming nothing, when no uses remain.
func (f *Fighter) UseAbility(id string) bool {
	if f.Uses[id] <= 0 {
		return false
	}
	f.Uses[id]--
	return true
}
