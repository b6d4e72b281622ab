package pet

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/cory-johannsen/bruto/internal/game/character"
)

const (
	baseHitChance     = 0.70
	hitPerAgilityDiff = 0.02
	minHitChance      = 0.05
	maxHitChance      = 0.95
	critMultiplier    = 1.5
	disarmChance      = 0.15

	baseInitiative     = 1000
	initiativePerSpeed = -10
)

// Side identifies which team a combatant fights for.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// DamageRange returns the inclusive damage bounds for tier.
func DamageRange(tier DamageTier) (int, int, error) {
	switch tier {
	case TierLow:
		return 3, 7, nil
	case TierMedium:
		return 8, 15, nil
	case TierHigh:
		return 18, 30, nil
	}
	return 0, 0, fmt.Errorf("unknown damage tier %q", tier)
}

// Combatant is the per-battle projection of an owned companion. It is created
// at battle start and mutated only by this package.
type Combatant struct {
	Type      character.PetType
	Name      string
	Slot      character.Slot
	OwnerSide Side
	OwnerID   int64
	Stats     CombatStats
	Abilities []string
	CurrentHP int
	Defeated  bool
}

// NewCombatant projects owned onto side using its catalog definition.
//
// Precondition: def must be the definition of owned.Type.
// Postcondition: CurrentHP == def.Stats.HP; Defeated is false.
func NewCombatant(def *Definition, owned character.OwnedPet, side Side) *Combatant {
	abilities := make([]string, len(def.Abilities))
	copy(abilities, def.Abilities)
	return &Combatant{
		Type:      def.ID,
		Name:      def.Name,
		Slot:      owned.Slot,
		OwnerSide: side,
		OwnerID:   owned.OwnerID,
		Stats:     def.Stats,
		Abilities: abilities,
		CurrentHP: def.Stats.HP,
	}
}

func (c *Combatant) hasAbility(name string) bool {
	for _, a := range c.Abilities {
		if a == name {
			return true
		}
	}
	return false
}

// AttackResult is the outcome of one companion attack.
type AttackResult struct {
	Attacker   character.PetType
	TargetSide Side
	HitChance  float64
	Hit        bool
	Damage     int
	Critical   bool
	Disarmed   bool
}

// Resolver resolves companion attacks against a shared battle RNG.
type Resolver struct {
	src    Source
	logger *zap.Logger
}

// NewResolver creates a Resolver drawing from src.
//
// Precondition: src must be the battle's single RNG instance.
func NewResolver(src Source, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{src: src, logger: logger}
}

// HitChance returns clamp(0.70 + 0.02*(attacker-target), 0.05, 0.95).
func HitChance(attackerAgility, targetAgility float64) float64 {
	p := baseHitChance + hitPerAgilityDiff*(attackerAgility-targetAgility)
	return math.Min(maxHitChance, math.Max(minHitChance, p))
}

// ExecutePetAttack resolves attacker striking targetSide.
//
// Draw order: hit roll; on hit, damage then critical roll; then, when the
// target is armed and the attacker can disarm, the disarm roll.
//
// Precondition: attacker must not be defeated.
func (r *Resolver) ExecutePetAttack(attacker *Combatant, targetSide Side, targetAgility float64, targetHasWeapon bool) AttackResult {
	res := AttackResult{
		Attacker:   attacker.Type,
		TargetSide: targetSide,
		HitChance:  HitChance(float64(attacker.Stats.Agility), targetAgility),
	}
	res.Hit = r.src.Roll(res.HitChance)
	if res.Hit {
		lo, hi, err := DamageRange(attacker.Stats.DamageTier)
		if err != nil {
			r.logger.Error("companion has no damage range", zap.String("type", string(attacker.Type)), zap.Error(err))
		} else {
			res.Damage = r.src.NextInt(lo, hi)
			if r.src.Roll(math.Max(0, attacker.Stats.MultiHitChance) / 100) {
				res.Critical = true
				res.Damage = int(math.Floor(float64(res.Damage) * critMultiplier))
			}
		}
	}
	if targetHasWeapon && attacker.hasAbility(AbilityDisarm) {
		res.Disarmed = r.src.Roll(disarmChance)
	}
	r.logger.Debug("companion attack",
		zap.String("attacker", string(attacker.Type)),
		zap.String("target_side", string(targetSide)),
		zap.Bool("hit", res.Hit),
		zap.Int("damage", res.Damage),
		zap.Bool("critical", res.Critical),
		zap.Bool("disarmed", res.Disarmed),
	)
	return res
}

// ApplyDamageToPet subtracts damage from c, clamping at zero, and marks c
// defeated when its HP reaches exactly zero.
//
// Postcondition: c.CurrentHP >= 0; c.Defeated == (c.CurrentHP == 0).
func ApplyDamageToPet(c *Combatant, damage int) int {
	c.CurrentHP -= damage
	if c.CurrentHP < 0 {
		c.CurrentHP = 0
	}
	c.Defeated = c.CurrentHP == 0
	return c.CurrentHP
}

// CalculatePetInitiative returns 1000 - 10*baseSpeed plus the catalog's
// per-type modifier. Lower values act earlier. Unknown types get no modifier.
func (c *Catalog) CalculatePetInitiative(t character.PetType, baseSpeed float64) float64 {
	mod := 0
	if d := c.Get(t); d != nil {
		mod = d.Stats.Initiative
	}
	return baseInitiative + baseSpeed*initiativePerSpeed + float64(mod)
}

// CombatSpeed returns the companion's speed for extra-turn rolls.
func (c *Combatant) CombatSpeed() float64 { return float64(c.Stats.Speed) }
