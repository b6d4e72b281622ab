package skill

import (
	"math"

	"go.uber.org/zap"

	"github.com/cory-johannsen/bruto/internal/game/character"
	"github.com/cory-johannsen/bruto/internal/game/stats"
)

const (
	// DefaultArmorCap bounds the aggregated armor bonus.
	DefaultArmorCap = 75.0
	// ResistanceToHPRatio converts immediate resistance gains into HP and max HP.
	ResistanceToHPRatio = 6.0
)

// Engine dispatches skill effects to registered handlers. It holds no
// per-character state and may be shared.
type Engine struct {
	catalog  *Catalog
	handlers []Handler
	armorCap float64
	logger   *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithArmorCap overrides DefaultArmorCap.
func WithArmorCap(limit float64) Option {
	return func(e *Engine) { e.armorCap = limit }
}

// WithHandler registers h after the existing handlers.
func WithHandler(h Handler) Option {
	return func(e *Engine) { e.handlers = append(e.handlers, h) }
}

// NewEngine creates an Engine over catalog with the default handlers.
//
// Precondition: catalog must not be nil.
func NewEngine(catalog *Catalog, logger *zap.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		catalog:  catalog,
		handlers: DefaultHandlers(),
		armorCap: DefaultArmorCap,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the engine's skill catalog.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// StatModifiers builds flat and percentage stat modifiers from the passive and
// immediate stat-boost effects of c's skills, in acquisition order, for display.
// Effects missing a stat or value are skipped.
func (e *Engine) StatModifiers(c *character.Character) stats.Context {
	return e.statModifiers(c, true)
}

// CombatStatModifiers is StatModifiers without immediate effects, which
// ApplyImmediate has already written into the base stats. Battle copies are
// built from it.
func (e *Engine) CombatStatModifiers(c *character.Character) stats.Context {
	return e.statModifiers(c, false)
}

func (e *Engine) statModifiers(c *character.Character, withImmediate bool) stats.Context {
	var ctx stats.Context
	for _, s := range e.catalog.Resolve(c.Skills) {
		for _, eff := range s.Effects {
			if eff.Kind != KindStatBoost {
				continue
			}
			if eff.Timing != TimingPassive && !(withImmediate && eff.Timing == TimingImmediate) {
				continue
			}
			if eff.Stat == "" || !eff.HasValue() {
				continue
			}
			switch eff.Mode {
			case ModePercentage:
				ctx.Multipliers = append(ctx.Multipliers, stats.Multiplier{
					Stat:        eff.Stat,
					Factor:      *eff.Value / 100,
					Source:      stats.SourceSkill,
					Description: s.Name,
				})
			case ModeFlat, "":
				ctx.Contributions = append(ctx.Contributions, stats.Contribution{
					Stat:        eff.Stat,
					Amount:      *eff.Value,
					Source:      stats.SourceSkill,
					Description: s.Name,
				})
			default:
				e.logger.Error("unsupported stat-boost mode",
					zap.String("skill", s.ID),
					zap.String("mode", string(eff.Mode)),
				)
			}
		}
	}
	return ctx
}

// CombatModifiers aggregates every combat effect of c's skills through the
// first handler accepting each effect. Immediate and level-up effects are
// excluded; effects no handler accepts are ignored.
//
// Postcondition: ArmorBonus <= the configured cap.
func (e *Engine) CombatModifiers(c *character.Character) CombatModifiers {
	var mods CombatModifiers
	for _, s := range e.catalog.Resolve(c.Skills) {
		for _, eff := range s.Effects {
			if eff.Timing == TimingImmediate || eff.Timing == TimingOnLevelUp {
				continue
			}
			if h := e.handlerFor(eff); h != nil {
				h.Apply(eff, c, &mods)
			}
		}
	}
	if mods.ArmorBonus > e.armorCap {
		e.logger.Warn("armor bonus clamped",
			zap.Int64("character_id", c.ID),
			zap.Float64("armor", mods.ArmorBonus),
			zap.Float64("cap", e.armorCap),
		)
		mods.ArmorBonus = e.armorCap
	}
	return mods
}

func (e *Engine) handlerFor(eff Effect) Handler {
	for _, h := range e.handlers {
		if h.CanHandle(eff) {
			return h
		}
	}
	return nil
}

// ActiveAbility is a limited-use combat ability granted by a skill.
type ActiveAbility struct {
	SkillID     string
	Name        string
	Description string
	Uses        int
}

// ActiveAbilities lists c's limited-use abilities with their per-combat use
// counts: base uses plus floor(scalingStat / threshold) when the effect scales.
// Scaling reads c's base stats.
func (e *Engine) ActiveAbilities(c *character.Character) []ActiveAbility {
	var out []ActiveAbility
	for _, s := range e.catalog.Resolve(c.Skills) {
		for _, eff := range s.Effects {
			if eff.Kind != KindSpecialAbility || eff.UsesPerCombat <= 0 {
				continue
			}
			uses := eff.UsesPerCombat
			if eff.ScalingStat != "" && eff.ScalingThreshold > 0 {
				uses += int(math.Floor(c.Stats.Get(eff.ScalingStat) / eff.ScalingThreshold))
			}
			out = append(out, ActiveAbility{
				SkillID:     s.ID,
				Name:        s.Name,
				Description: eff.Description,
				Uses:        uses,
			})
		}
	}
	return out
}

// StatChange records one stat mutation made by ApplyImmediate.
type StatChange struct {
	Stat   character.Stat
	Before float64
	After  float64
}

// ApplyImmediate mutates c's base stats with the immediate stat-boost effects
// of skill id. Flat effects add; percentage effects scale by 1+value/100.
// Every point of resistance gained adds ResistanceToHPRatio to HP and max HP.
// It must be called once, when the skill is acquired.
//
// Precondition: c must not be nil.
// Postcondition: Returns the changes made and true, or false if id is unknown.
func (e *Engine) ApplyImmediate(c *character.Character, id string) ([]StatChange, bool) {
	s, ok := e.catalog.Get(id)
	if !ok {
		return nil, false
	}
	var changes []StatChange
	for _, eff := range s.Effects {
		if eff.Kind != KindStatBoost || eff.Timing != TimingImmediate {
			continue
		}
		if eff.Stat == "" || !eff.HasValue() {
			continue
		}
		before := c.Stats.Get(eff.Stat)
		after := before
		switch eff.Mode {
		case ModePercentage:
			after = before * (1 + *eff.Value/100)
		case ModeFlat, "":
			after = before + *eff.Value
		default:
			e.logger.Error("unsupported immediate mode",
				zap.String("skill", s.ID),
				zap.String("mode", string(eff.Mode)),
			)
			continue
		}
		c.Stats.Set(eff.Stat, after)
		changes = append(changes, StatChange{Stat: eff.Stat, Before: before, After: after})

		if eff.Stat == character.StatResistance && after > before {
			hpGain := (after - before) * ResistanceToHPRatio
			changes = append(changes,
				StatChange{Stat: character.StatHP, Before: c.Stats.HP, After: c.Stats.HP + hpGain},
				StatChange{Stat: character.StatMaxHP, Before: c.Stats.MaxHP, After: c.Stats.MaxHP + hpGain},
			)
			c.Stats.HP += hpGain
			c.Stats.MaxHP += hpGain
		}
	}
	e.logger.Debug("immediate skill effects applied",
		zap.Int64("character_id", c.ID),
		zap.String("skill", id),
		zap.Int("changes", len(changes)),
	)
	return changes, true
}

// LevelUpMultiplier returns 1 + Σ value/100 over c's level-up-bonus effects
// targeting stat.
func (e *Engine) LevelUpMultiplier(c *character.Character, stat character.Stat) float64 {
	m := 1.0
	for _, s := range e.catalog.Resolve(c.Skills) {
		for _, eff := range s.Effects {
			if eff.Kind == KindLevelUpBonus && eff.Stat == stat && eff.HasValue() {
				m += *eff.Value / 100
			}
		}
	}
	return m
}

// LevelUpContribution scales a level-up gain of baseGain points in stat by
// LevelUpMultiplier and renders it as a progression contribution.
func (e *Engine) LevelUpContribution(c *character.Character, stat character.Stat, baseGain float64, description string) stats.Contribution {
	return stats.Contribution{
		Stat:        stat,
		Amount:      stats.Round(stat, baseGain*e.LevelUpMultiplier(c, stat)),
		Source:      stats.SourceProgression,
		Description: description,
	}
}
