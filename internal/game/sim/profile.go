package sim

import (
	"math"

	"github.com/kobayashi-sim/kobayashi/internal/game/stacking"
)

// StatModifyKind is the effect kind whose stacked totals fold into combatant
// stats.
const StatModifyKind = "stat_modify"

// Combatant stat keys recognized by ApplyStaticBuffs.
const (
	StatAttack           = "attack"
	StatMitigation       = "mitigation"
	StatPierce           = "pierce"
	StatCritChance       = "crit_chance"
	StatCritMultiplier   = "crit_multiplier"
	StatProcChance       = "proc_chance"
	StatProcMultiplier   = "proc_multiplier"
	StatEndOfRoundDamage = "end_of_round_damage"
)

// clamp01 clamps v to [0, 1].
func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// buffFor composes the stacked adjustment for one stat key, treating the
// combatant's current value as the base term when the stack has no base of
// its own.
func buffFor(totals map[stacking.GroupKey]stacking.StackBreakdown, statKey string, current float64) float64 {
	breakdown, ok := totals[stacking.GroupKey{EffectKind: StatModifyKind, StatKey: statKey}]
	if !ok {
		return current
	}
	breakdown.BaseTotal += current
	return breakdown.Total()
}

// ApplyStaticBuffs folds composed stat_modify stack totals into a copy of c.
// Each recognized stat's current value enters its group as an extra base
// contribution, so modifiers scale the combatant's existing stat and flat
// contributions add on top. Chance and mitigation stats are clamped back to
// [0, 1]; unrecognized stat keys are ignored.
func ApplyStaticBuffs(c Combatant, totals map[stacking.GroupKey]stacking.StackBreakdown) Combatant {
	c.Attack = buffFor(totals, StatAttack, c.Attack)
	c.Mitigation = clamp01(buffFor(totals, StatMitigation, c.Mitigation))
	c.Pierce = buffFor(totals, StatPierce, c.Pierce)
	c.CritChance = clamp01(buffFor(totals, StatCritChance, c.CritChance))
	c.CritMultiplier = buffFor(totals, StatCritMultiplier, c.CritMultiplier)
	c.ProcChance = clamp01(buffFor(totals, StatProcChance, c.ProcChance))
	c.ProcMultiplier = buffFor(totals, StatProcMultiplier, c.ProcMultiplier)
	c.EndOfRoundDamage = buffFor(totals, StatEndOfRoundDamage, c.EndOfRoundDamage)
	return c
}
