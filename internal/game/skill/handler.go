package skill

import (
	"strings"

	"github.com/cory-johannsen/bruto/internal/game/character"
)

// damageCapPhrase marks a damage-modifier that caps incoming damage per hit.
const damageCapPhrase = "per hit"

// damageCapRatio is the share of max HP a capped hit may deal.
const damageCapRatio = 0.2

// CombatModifiers is the aggregate of every combat-relevant skill effect,
// read by the combat orchestrator each turn. Percent values are in points (25 = 25%).
type CombatModifiers struct {
	DamageBonus          float64
	DamageReduction      float64
	EvasionBonus         float64
	CriticalBonus        float64
	ArmorBonus           float64
	MultiHitBonus        float64
	WeaponBonuses        map[WeaponType]float64
	BluntDamageReduction float64
	// MaxDamagePerHit caps a single incoming hit when non-nil.
	MaxDamagePerHit *float64
}

// Handler applies one effect kind to CombatModifiers.
//
// Apply must tolerate effects missing optional fields by leaving mods unchanged.
type Handler interface {
	CanHandle(e Effect) bool
	Apply(e Effect, owner *character.Character, mods *CombatModifiers)
}

// DefaultHandlers returns one handler per combat effect kind.
func DefaultHandlers() []Handler {
	return []Handler{
		armorHandler{},
		evasionHandler{},
		criticalHandler{},
		damageHandler{},
		multiHitHandler{},
	}
}

type armorHandler struct{}

func (armorHandler) CanHandle(e Effect) bool { return e.Kind == KindArmorBonus }

func (armorHandler) Apply(e Effect, _ *character.Character, mods *CombatModifiers) {
	if e.HasValue() {
		mods.ArmorBonus += *e.Value
	}
}

type evasionHandler struct{}

func (evasionHandler) CanHandle(e Effect) bool { return e.Kind == KindEvasionModifier }

func (evasionHandler) Apply(e Effect, _ *character.Character, mods *CombatModifiers) {
	if e.HasValue() {
		mods.EvasionBonus += *e.Value
	}
}

type criticalHandler struct{}

func (criticalHandler) CanHandle(e Effect) bool { return e.Kind == KindCriticalBonus }

func (criticalHandler) Apply(e Effect, _ *character.Character, mods *CombatModifiers) {
	if e.HasValue() {
		mods.CriticalBonus += *e.Value
	}
}

type multiHitHandler struct{}

func (multiHitHandler) CanHandle(e Effect) bool { return e.Kind == KindMultiHitBonus }

func (multiHitHandler) Apply(e Effect, _ *character.Character, mods *CombatModifiers) {
	if e.HasValue() {
		mods.MultiHitBonus += *e.Value
	}
}

// damageHandler branches on weapon type and target:
//   - blunt on self reduces incoming blunt damage
//   - any other weapon type adds a weapon-specific outgoing bonus
//   - untyped on self reduces all incoming damage, otherwise boosts outgoing damage
//
// A description naming the cap phrase sets MaxDamagePerHit regardless of value.
type damageHandler struct{}

func (damageHandler) CanHandle(e Effect) bool { return e.Kind == KindDamageModifier }

func (damageHandler) Apply(e Effect, owner *character.Character, mods *CombatModifiers) {
	if owner != nil && strings.Contains(strings.ToLower(e.Description), damageCapPhrase) {
		limit := owner.Stats.MaxHP * damageCapRatio
		mods.MaxDamagePerHit = &limit
	}
	if !e.HasValue() {
		return
	}
	v := *e.Value
	switch {
	case e.WeaponType == WeaponBlunt && e.Target == TargetSelf:
		mods.BluntDamageReduction += v
	case e.WeaponType != "":
		if mods.WeaponBonuses == nil {
			mods.WeaponBonuses = make(map[WeaponType]float64)
		}
		mods.WeaponBonuses[e.WeaponType] += v
	case e.Target == TargetSelf:
		mods.DamageReduction += v
	default:
		mods.DamageBonus += v
	}
}
