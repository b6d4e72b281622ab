// Package character defines the Bruto character snapshot and its owned-pet records.
package character

import "time"

// Stat names one of the six base stats.
type Stat string

const (
	StatHP         Stat = "hp"
	StatMaxHP      Stat = "maxHp"
	StatStrength   Stat = "strength"
	StatSpeed      Stat = "speed"
	StatAgility    Stat = "agility"
	StatResistance Stat = "resistance"
)

// Stats lists every base stat in display order.
var Stats = []Stat{StatHP, StatMaxHP, StatStrength, StatSpeed, StatAgility, StatResistance}

// Valid reports whether s names a known stat.
func (s Stat) Valid() bool {
	for _, k := range Stats {
		if k == s {
			return true
		}
	}
	return false
}

// BaseStats holds the stored, pre-modifier stat values.
// Combat never mutates these; it operates on derived copies.
type BaseStats struct {
	HP         float64
	MaxHP      float64
	Strength   float64
	Speed      float64
	Agility    float64
	Resistance float64
}

// Get returns the value of stat s, or 0 for an unknown stat.
func (b BaseStats) Get(s Stat) float64 {
	switch s {
	case StatHP:
		return b.HP
	case StatMaxHP:
		return b.MaxHP
	case StatStrength:
		return b.Strength
	case StatSpeed:
		return b.Speed
	case StatAgility:
		return b.Agility
	case StatResistance:
		return b.Resistance
	}
	return 0
}

// Set assigns v to stat s. Unknown stats are ignored.
func (b *BaseStats) Set(s Stat, v float64) {
	switch s {
	case StatHP:
		b.HP = v
	case StatMaxHP:
		b.MaxHP = v
	case StatStrength:
		b.Strength = v
	case StatSpeed:
		b.Speed = v
	case StatAgility:
		b.Agility = v
	case StatResistance:
		b.Resistance = v
	}
}

// PetType identifies a companion catalog entry.
type PetType string

// Slot is a named ownership bucket for the stackable companion type.
type Slot string

const (
	SlotNone Slot = ""
	SlotA    Slot = "A"
	SlotB    Slot = "B"
	SlotC    Slot = "C"
)

// Slots lists the slot labels in assignment order.
var Slots = []Slot{SlotA, SlotB, SlotC}

// OwnedPet is one persisted companion ownership record.
type OwnedPet struct {
	ID              string
	OwnerID         int64
	Type            PetType
	Slot            Slot
	AcquiredAt      time.Time
	AcquiredAtLevel int
}

// Character is a Bruto's persistent state.
//
// ID is set by the persistence layer; zero indicates an unsaved character.
type Character struct {
	ID int64

	Name       string
	Level      int
	Experience int
	Stats      BaseStats

	// Skills holds acquired skill IDs in acquisition order.
	Skills []string
	// Pets is the owned-companion roster.
	Pets []OwnedPet

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasSkill reports whether the character has acquired skill id.
func (c *Character) HasSkill(id string) bool {
	for _, s := range c.Skills {
		if s == id {
			return true
		}
	}
	return false
}
