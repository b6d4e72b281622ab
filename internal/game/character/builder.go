package character

import (
	"errors"
	"fmt"
	"strings"
)

// StartingStats are the base stats every new Bruto begins with.
var StartingStats = BaseStats{
	HP:         60,
	MaxHP:      60,
	Strength:   3,
	Speed:      3,
	Agility:    3,
	Resistance: 10,
}

// Build constructs a new level 1 Character from a name and its base stats.
// Current HP is reset to MaxHP.
//
// Precondition: name must be non-blank; stats.MaxHP must be > 0 and no stat may be negative.
// Postcondition: Returns a Character ready for persistence, or a non-nil error.
func Build(name string, stats BaseStats) (*Character, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("character name must not be empty")
	}
	if stats.MaxHP <= 0 {
		return nil, fmt.Errorf("max hp must be > 0, got %v", stats.MaxHP)
	}
	for _, s := range Stats {
		if v := stats.Get(s); v < 0 {
			return nil, fmt.Errorf("stat %s must not be negative, got %v", s, v)
		}
	}
	stats.HP = stats.MaxHP
	return &Character{
		Name:   name,
		Level:  1,
		Stats:  stats,
		Skills: []string{},
		Pets:   []OwnedPet{},
	}, nil
}
