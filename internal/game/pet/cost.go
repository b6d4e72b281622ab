package pet

import (
	"errors"
	"fmt"
	"math"

	"github.com/cory-johannsen/bruto/internal/game/character"
)

// ErrUnknownPetType is returned when a cost is requested for a type the catalog lacks.
var ErrUnknownPetType = errors.New("unknown companion type")

// ResistanceCost looks up what acquiring t costs given which cost-modifying
// skills the owner holds.
//
// Postcondition: Returns a wrapped ErrUnknownPetType when t is not in the catalog.
func (c *Catalog) ResistanceCost(t character.PetType, hasSkillA, hasSkillB bool) (float64, error) {
	def := c.Get(t)
	if def == nil {
		return 0, fmt.Errorf("resistance cost for %q: %w", t, ErrUnknownPetType)
	}
	rc := def.ResistanceCost
	switch {
	case hasSkillA && hasSkillB:
		return rc.Both, nil
	case hasSkillA:
		return rc.SkillA, nil
	case hasSkillB:
		return rc.SkillB, nil
	default:
		return rc.None, nil
	}
}

// CalculateNewResistance subtracts cost from current, clamping at zero.
func CalculateNewResistance(current, cost float64) float64 {
	return math.Max(0, current-cost)
}
