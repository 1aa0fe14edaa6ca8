package sim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kobayashi-sim/kobayashi/internal/game/sim"
	"github.com/kobayashi-sim/kobayashi/internal/game/stacking"
)

// TestApplyStaticBuffs verifies stacked stat_modify totals fold into the
// combatant with the current stat as the base term.
func TestApplyStaticBuffs(t *testing.T) {
	totals := stacking.StackEffects([]stacking.EffectContribution{
		{EffectKind: sim.StatModifyKind, StatKey: sim.StatAttack, Category: stacking.Modifier, Value: 0.25},
		{EffectKind: sim.StatModifyKind, StatKey: sim.StatAttack, Category: stacking.Flat, Value: 10},
		{EffectKind: sim.StatModifyKind, StatKey: sim.StatCritChance, Category: stacking.Flat, Value: 0.05},
		{EffectKind: sim.StatModifyKind, StatKey: sim.StatEndOfRoundDamage, Category: stacking.Base, Value: 3},
	})

	buffed := sim.ApplyStaticBuffs(fixtureAttacker(), totals)

	assert.InDelta(t, 100*1.25+10, buffed.Attack, 1e-9)
	assert.InDelta(t, 0.25, buffed.CritChance, 1e-12)
	assert.InDelta(t, 8.0, buffed.EndOfRoundDamage, 1e-12)
	// Untouched stats pass through.
	assert.Equal(t, fixtureAttacker().Pierce, buffed.Pierce)
	assert.Equal(t, fixtureAttacker().ProcChance, buffed.ProcChance)
}

// TestApplyStaticBuffs_ClampsFractions verifies chance and mitigation stats
// clamp back into [0, 1] after buffing.
func TestApplyStaticBuffs_ClampsFractions(t *testing.T) {
	totals := stacking.StackEffects([]stacking.EffectContribution{
		{EffectKind: sim.StatModifyKind, StatKey: sim.StatCritChance, Category: stacking.Flat, Value: 2.0},
		{EffectKind: sim.StatModifyKind, StatKey: sim.StatMitigation, Category: stacking.Flat, Value: -5.0},
	})

	buffed := sim.ApplyStaticBuffs(fixtureAttacker(), totals)
	assert.Equal(t, 1.0, buffed.CritChance)
	assert.Equal(t, 0.0, buffed.Mitigation)
}

// TestApplyStaticBuffs_IgnoresOtherKindsAndKeys verifies only stat_modify
// groups with recognized stat keys affect the combatant.
func TestApplyStaticBuffs_IgnoresOtherKindsAndKeys(t *testing.T) {
	totals := stacking.StackEffects([]stacking.EffectContribution{
		{EffectKind: "forbidden_tech", StatKey: sim.StatAttack, Category: stacking.Flat, Value: 1000},
		{EffectKind: sim.StatModifyKind, StatKey: "shield_health", Category: stacking.Flat, Value: 1000},
	})

	assert.Equal(t, fixtureAttacker(), sim.ApplyStaticBuffs(fixtureAttacker(), totals))
}

// TestApplyStaticBuffs_EmptyTotalsIsIdentity verifies a combatant passes
// through an empty stack unchanged.
func TestApplyStaticBuffs_EmptyTotalsIsIdentity(t *testing.T) {
	assert.Equal(t, fixtureDefender(), sim.ApplyStaticBuffs(fixtureDefender(), nil))
}
