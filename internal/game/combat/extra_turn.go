package combat

import "math"

const (
	extraTurnPerSpeed  = 0.05
	maxExtraTurnChance = 0.60
)

// Roller is the subset of the battle RNG the processor needs.
type Roller interface {
	Roll(probability float64) bool
}

// Combatant is anything that can be granted an extra turn.
type Combatant interface {
	CombatSpeed() float64
}

// ExtraTurnProcessor decides whether a combatant acts again.
type ExtraTurnProcessor struct {
	rng Roller
}

// NewExtraTurnProcessor creates a processor drawing from the battle's RNG.
func NewExtraTurnProcessor(rng Roller) *ExtraTurnProcessor {
	return &ExtraTurnProcessor{rng: rng}
}

// ExtraTurnProbability returns min(0.60, speed*0.05).
func ExtraTurnProbability(speed float64) float64 {
	return math.Min(maxExtraTurnChance, speed*extraTurnPerSpeed)
}

// RollExtraTurn makes one draw against c's extra-turn probability.
func (p *ExtraTurnProcessor) RollExtraTurn(c Combatant) bool {
	return p.rng.Roll(ExtraTurnProbability(c.CombatSpeed()))
}
