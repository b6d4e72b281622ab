package stats

import "math"

const (
	maxDodgeChance     = 95.0
	dodgePerAgility    = 10.0
	maxExtraTurnChance = 60.0
	extraTurnPerSpeed  = 5.0
)

// DerivedStat is a capped combat percentage computed from a base stat.
type DerivedStat struct {
	Key         string
	Value       float64
	Unit        string
	Description string
}

// DodgeChance returns min(95, agility*10) percent, to one decimal.
func DodgeChance(agility float64) float64 {
	return round1(math.Min(maxDodgeChance, agility*dodgePerAgility))
}

// ExtraTurnChance returns min(60, speed*5) percent, to one decimal.
func ExtraTurnChance(speed float64) float64 {
	return round1(math.Min(maxExtraTurnChance, speed*extraTurnPerSpeed))
}

// Derived computes the derived stats for the given effective agility and speed.
func Derived(agility, speed float64) []DerivedStat {
	return []DerivedStat{
		{
			Key:         "dodgeChance",
			Value:       DodgeChance(agility),
			Unit:        "%",
			Description: "Chance to dodge an incoming attack",
		},
		{
			Key:         "extraTurnChance",
			Value:       ExtraTurnChance(speed),
			Unit:        "%",
			Description: "Chance to act again after a turn",
		},
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
