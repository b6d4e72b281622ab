package pet

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/bruto/internal/game/character"
)

// Validation is a soft rule check result. Reason is user-facing when Valid is false.
type Validation struct {
	Valid  bool
	Reason string
}

func ok() Validation { return Validation{Valid: true} }

func reject(format string, args ...any) Validation {
	return Validation{Reason: fmt.Sprintf(format, args...)}
}

// CanAcquire checks whether an owner holding owned may acquire t.
// Mutual exclusion is checked first, symmetrically; then the stack limit.
func (c *Catalog) CanAcquire(owned []character.OwnedPet, t character.PetType) Validation {
	def := c.Get(t)
	if def == nil {
		return reject("Unknown companion type %q", t)
	}
	for _, o := range owned {
		other := c.Get(o.Type)
		if other == nil {
			continue
		}
		if def.Excludes(o.Type) || other.Excludes(t) {
			return reject("Cannot acquire %s while owning %s", def.Name, other.Name)
		}
	}
	if n := Count(owned, t); n >= def.MaxStacks {
		return reject("Already own the maximum of %d %s", def.MaxStacks, def.Name)
	}
	return ok()
}

// Acquirable returns, in catalog order, every type CanAcquire accepts.
func (c *Catalog) Acquirable(owned []character.OwnedPet) []character.PetType {
	var out []character.PetType
	for _, t := range c.order {
		if c.CanAcquire(owned, t).Valid {
			out = append(out, t)
		}
	}
	return out
}

// Count returns how many records in owned have type t.
func Count(owned []character.OwnedPet, t character.PetType) int {
	n := 0
	for _, o := range owned {
		if o.Type == t {
			n++
		}
	}
	return n
}

// NextFreeSlot returns the first slot label, in A, B, C order, not held by an
// owned record of type t. It returns SlotNone when every slot is taken or when
// t does not use slots.
func (c *Catalog) NextFreeSlot(owned []character.OwnedPet, t character.PetType) character.Slot {
	def := c.Get(t)
	if def == nil || !def.UsesSlots {
		return character.SlotNone
	}
	used := make(map[character.Slot]bool, len(character.Slots))
	for _, o := range owned {
		if o.Type == t {
			used[o.Slot] = true
		}
	}
	for _, s := range character.Slots {
		if !used[s] {
			return s
		}
	}
	return character.SlotNone
}

// ValidateRoster checks a persisted roster for integrity: duplicate slots,
// exclusion violations, and stack overflows. It is not part of the normal
// acquisition flow.
func (c *Catalog) ValidateRoster(owned []character.OwnedPet) Validation {
	var problems []string

	type slotKey struct {
		t character.PetType
		s character.Slot
	}
	seen := make(map[slotKey]bool)
	for _, o := range owned {
		if o.Slot == character.SlotNone {
			continue
		}
		k := slotKey{o.Type, o.Slot}
		if seen[k] {
			problems = append(problems, fmt.Sprintf("slot %s assigned twice for %s", o.Slot, o.Type))
		}
		seen[k] = true
	}

	reported := make(map[[2]character.PetType]bool)
	for i, a := range owned {
		da := c.Get(a.Type)
		if da == nil {
			problems = append(problems, fmt.Sprintf("unknown companion type %q", a.Type))
			continue
		}
		for _, b := range owned[i+1:] {
			db := c.Get(b.Type)
			if db == nil || !(da.Excludes(b.Type) || db.Excludes(a.Type)) {
				continue
			}
			pair := [2]character.PetType{a.Type, b.Type}
			if pair[1] < pair[0] {
				pair[0], pair[1] = pair[1], pair[0]
			}
			if !reported[pair] {
				problems = append(problems, fmt.Sprintf("%s and %s are mutually exclusive", da.Name, db.Name))
				reported[pair] = true
			}
		}
	}

	for _, t := range c.order {
		if n, limit := Count(owned, t), c.defs[t].MaxStacks; n > limit {
			problems = append(problems, fmt.Sprintf("%d %s exceeds the limit of %d", n, c.defs[t].Name, limit))
		}
	}

	if len(problems) > 0 {
		return Validation{Reason: strings.Join(problems, "; ")}
	}
	return ok()
}
