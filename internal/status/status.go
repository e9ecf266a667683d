// Package status implements timed status effects: application with
// immunity and resistance, periodic ticks and expiry hooks.
package status

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/udisondev/elderdeep/internal/event"
	"github.com/udisondev/elderdeep/internal/model"
)

// minDuration is the floor for resisted durations.
const minDuration = 0.1

// Env is the battle context a status is applied in.
type Env interface {
	Log(text string, tag event.Tag)
	// DurationScale returns an extra duration multiplier for id (zone
	// stagger resistance). 1 means unchanged.
	DurationScale(id model.StatusID) float64
}

// Definition describes one status effect.
type Definition struct {
	ID           model.StatusID
	Name         string
	Duration     float64 // seconds
	TickInterval float64 // seconds, 0 = no periodic effect

	OnApply  func(c *model.Combatant)
	OnTick   func(c *model.Combatant)
	OnExpire func(c *model.Combatant)

	// OnRefresh runs when the status is re-applied to a carrier.
	OnRefresh func(c *model.Combatant)
	// Rearm keeps an expiring instance alive with a fresh duration.
	Rearm func(c *model.Combatant) bool
}

var registry = map[model.StatusID]*Definition{}

// Register adds a definition to the catalog. Called from init().
func Register(def *Definition) {
	registry[def.ID] = def
}

// Lookup returns the definition for id.
func Lookup(id model.StatusID) (*Definition, bool) {
	def, ok := registry[id]
	return def, ok
}

// Name returns the display name of id, or the id itself when unknown.
func Name(id model.StatusID) string {
	if def, ok := registry[id]; ok {
		return def.Name
	}
	return string(id)
}

// EffectiveDuration computes the duration of id on c after resistances and
// the env scale. Returns false when c is immune.
func EffectiveDuration(env Env, c *model.Combatant, def *Definition) (float64, bool) {
	if c.Resistances.IsImmune(def.ID) {
		return 0, false
	}
	d := def.Duration
	if coef, ok := c.Resistances.Coefficient(def.ID); ok {
		d = max(minDuration, d*coef)
	}
	if env != nil {
		if scale := env.DurationScale(def.ID); scale > 0 && scale != 1 {
			d = max(minDuration, d*scale)
		}
	}
	return d, true
}

// Apply puts status id on c. Returns false when id is unknown or c is immune.
// An existing instance is refreshed rather than duplicated.
func Apply(env Env, c *model.Combatant, id model.StatusID) bool {
	def, ok := registry[id]
	if !ok {
		slog.Debug("unknown status", "status", id)
		return false
	}

	duration, ok := EffectiveDuration(env, c, def)
	if !ok {
		logf(env, event.TagStatus, "%s is immune to %s.", c.Name, def.Name)
		return false
	}

	if inst := c.Status(id); inst != nil {
		inst.Remaining = duration
		inst.NextTick = def.TickInterval
		if def.OnRefresh != nil {
			def.OnRefresh(c)
		}
		logf(env, event.TagStatus, "%s refreshed on %s.", def.Name, c.Name)
		return true
	}

	c.Statuses = append(c.Statuses, &model.StatusInstance{
		ID:        id,
		Remaining: duration,
		NextTick:  def.TickInterval,
	})
	if def.OnApply != nil {
		def.OnApply(c)
	}
	logf(env, event.TagStatus, "%s is afflicted with %s.", c.Name, def.Name)
	return true
}

// Tick advances every instance on c by dt, fires periodic effects and
// removes expired instances.
func Tick(env Env, c *model.Combatant, dt float64) {
	if len(c.Statuses) == 0 {
		return
	}

	// Snapshot: hooks may append new statuses during iteration.
	active := slices.Clone(c.Statuses)
	expired := make([]*model.StatusInstance, 0, 2)

	for _, inst := range active {
		def, ok := registry[inst.ID]
		if !ok {
			expired = append(expired, inst)
			continue
		}

		inst.Remaining -= dt
		if def.TickInterval > 0 {
			inst.NextTick -= dt
			if inst.NextTick <= 0 {
				if def.OnTick != nil {
					def.OnTick(c)
				}
				logf(env, event.TagStatus, "%s deals its effect to %s.", def.Name, c.Name)
				inst.NextTick += def.TickInterval
			}
		}

		if inst.Remaining > 0 {
			continue
		}

		if def.OnExpire != nil {
			def.OnExpire(c)
		}
		if def.Rearm != nil && def.Rearm(c) {
			d, _ := EffectiveDuration(env, c, def)
			inst.Remaining = d
			inst.NextTick = def.TickInterval
			continue
		}
		expired = append(expired, inst)
		logf(env, event.TagStatus, "%s fades from %s.", def.Name, c.Name)
	}

	if len(expired) > 0 {
		c.Statuses = slices.DeleteFunc(c.Statuses, func(s *model.StatusInstance) bool {
			return slices.Contains(expired, s)
		})
	}
}

// Clear removes every instance from c, firing expiry hooks.
func Clear(c *model.Combatant) {
	for _, inst := range c.Statuses {
		if def, ok := registry[inst.ID]; ok && def.OnExpire != nil {
			def.OnExpire(c)
		}
	}
	c.Statuses = nil
	c.BleedStacks = 0
}

func logf(env Env, tag event.Tag, format string, args ...any) {
	if env == nil {
		return
	}
	env.Log(fmt.Sprintf(format, args...), tag)
}
