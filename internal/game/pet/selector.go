package pet

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/bruto/internal/game/character"
)

// Source is the subset of the seeded RNG the companion rules draw from.
type Source interface {
	Next() float64
	NextInt(min, max int) int
	Roll(probability float64) bool
}

// Selector picks a post-victory companion reward by weighted odds.
type Selector struct {
	catalog *Catalog
	odds    map[character.PetType]float64
	logger  *zap.Logger
}

// NewSelector creates a Selector with base odds keyed by companion type ID.
// Types absent from odds have zero weight and are never selected.
//
// Precondition: catalog must not be nil.
func NewSelector(catalog *Catalog, odds map[string]float64, logger *zap.Logger) *Selector {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := make(map[character.PetType]float64, len(odds))
	for id, v := range odds {
		w[character.PetType(id)] = v
	}
	return &Selector{catalog: catalog, odds: w, logger: logger}
}

// SelectRandomPet draws one companion type among those owned allows.
//
// Base odds are renormalized over the acquirable types only; one src.Next()
// draw is walked against the cumulative shares in catalog order.
//
// Postcondition: Returns nil without drawing when nothing is acquirable.
func (s *Selector) SelectRandomPet(owned []character.OwnedPet, src Source) *Definition {
	var eligible []character.PetType
	total := 0.0
	for _, t := range s.catalog.Acquirable(owned) {
		if w := s.odds[t]; w > 0 {
			eligible = append(eligible, t)
			total += w
		}
	}
	if len(eligible) == 0 {
		s.logger.Debug("no acquirable companion", zap.Int("owned", len(owned)))
		return nil
	}

	draw := src.Next()
	chosen := eligible[len(eligible)-1]
	cumulative := 0.0
	for _, t := range eligible {
		cumulative += s.odds[t] / total
		if cumulative >= draw {
			chosen = t
			break
		}
	}
	s.logger.Debug("companion selected",
		zap.String("type", string(chosen)),
		zap.Float64("draw", draw),
		zap.Int("eligible", len(eligible)),
	)
	return s.catalog.Get(chosen)
}
