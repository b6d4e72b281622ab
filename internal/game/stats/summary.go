package stats

import (
	"fmt"
	"math"
	"strconv"

	"github.com/cory-johannsen/bruto/internal/game/character"
)

var labels = map[character.Stat]string{
	character.StatHP:         "HP",
	character.StatMaxHP:      "Max HP",
	character.StatStrength:   "Strength",
	character.StatSpeed:      "Speed",
	character.StatAgility:    "Agility",
	character.StatResistance: "Resistance",
}

// StatLine is the resolved view of one stat.
type StatLine struct {
	Key       character.Stat
	Label     string
	Base      float64
	Effective float64
	Delta     float64
	Breakdown []string
}

// Summary is the effective-stats view of a character. It is recomputed on
// demand and must not be cached across changes to base stats or modifiers.
type Summary struct {
	Stats   []StatLine
	Derived []DerivedStat
}

// Stat returns the line for key, or false if absent.
func (s Summary) Stat(key character.Stat) (StatLine, bool) {
	for _, l := range s.Stats {
		if l.Key == key {
			return l, true
		}
	}
	return StatLine{}, false
}

// BuildSummary resolves c's base stats against ctx.
//
// Per stat, flat contributions apply first in supplied order, then each
// multiplier applies against the running effective value in supplied order.
//
// Precondition: c must not be nil.
// Postcondition: Returns one StatLine per character.Stats entry, in that order.
func BuildSummary(c *character.Character, ctx Context) Summary {
	lines := make([]StatLine, 0, len(character.Stats))
	for _, key := range character.Stats {
		lines = append(lines, resolve(key, c.Stats.Get(key), ctx))
	}
	sum := Summary{Stats: lines}
	agility, _ := sum.Stat(character.StatAgility)
	speed, _ := sum.Stat(character.StatSpeed)
	sum.Derived = Derived(agility.Effective, speed.Effective)
	return sum
}

func resolve(key character.Stat, base float64, ctx Context) StatLine {
	effective := base
	breakdown := []string{}
	for _, c := range ctx.Contributions {
		if c.Stat != key {
			continue
		}
		effective += c.Amount
		breakdown = append(breakdown, fmt.Sprintf("%s (%s)", signed(c.Amount), sourceLabel(c.Source, c.Description)))
	}
	for _, m := range ctx.Multipliers {
		if m.Stat != key {
			continue
		}
		effective += effective * m.Factor
		breakdown = append(breakdown, fmt.Sprintf("%s%% (%s)", signed(m.Factor*100), sourceLabel(m.Source, m.Description)))
	}
	effective = Round(key, effective)
	return StatLine{
		Key:       key,
		Label:     labels[key],
		Base:      base,
		Effective: effective,
		Delta:     Round(key, effective-base),
		Breakdown: breakdown,
	}
}

// Round applies the per-stat rounding rule: two decimals, collapsing to an
// integer within 0.001 of a whole number, except resistance which never collapses.
func Round(key character.Stat, v float64) float64 {
	r := math.Round(v*100) / 100
	if key == character.StatResistance {
		return r
	}
	if whole := math.Round(v); math.Abs(v-whole) < 0.001 {
		return whole
	}
	return r
}

func signed(v float64) string {
	n := strconv.FormatFloat(math.Round(math.Abs(v)*100)/100, 'f', -1, 64)
	if v < 0 {
		return "-" + n
	}
	return "+" + n
}

func sourceLabel(kind SourceKind, description string) string {
	if description == "" {
		return string(kind)
	}
	return string(kind) + " - " + description
}
