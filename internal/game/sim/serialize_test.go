package sim_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kobayashi-sim/kobayashi/internal/game/sim"
)

// TestSerializeEventsJSON verifies the structured form: an ordered array with
// a source object carrying only the set attribution fields.
func TestSerializeEventsJSON(t *testing.T) {
	events := []sim.CombatEvent{
		{
			EventType:  sim.EventAttackRoll,
			RoundIndex: 1,
			Phase:      sim.PhaseAttack,
			Source:     sim.EventSource{OfficerID: "nero"},
			Values:     map[string]any{"roll": 0.617753},
		},
	}

	payload, err := sim.SerializeEventsJSON(events)
	require.NoError(t, err)

	var parsed []map[string]any
	require.NoError(t, json.Unmarshal([]byte(payload), &parsed))
	require.Len(t, parsed, 1)

	assert.Equal(t, "attack_roll", parsed[0]["event_type"])
	assert.Equal(t, float64(1), parsed[0]["round_index"])
	assert.Equal(t, "attack", parsed[0]["phase"])

	source, ok := parsed[0]["source"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"officer_id": "nero"}, source,
		"unset attribution fields must be omitted")

	values, ok := parsed[0]["values"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 0.617753, values["roll"].(float64), 1e-12)
}

// TestSerializeEventsJSON_Empty verifies nil and empty slices both render an
// empty JSON array.
func TestSerializeEventsJSON_Empty(t *testing.T) {
	payload, err := sim.SerializeEventsJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", payload)
}

// TestFormatEventsHuman verifies the line-per-event shape, including the
// 2-digit round prefix and sorted value keys.
func TestFormatEventsHuman(t *testing.T) {
	events := []sim.CombatEvent{
		{
			EventType:  sim.EventCritResolution,
			RoundIndex: 2,
			Phase:      sim.PhaseAttack,
			Source:     sim.EventSource{OfficerID: "khan", ShipAbilityID: "crit_matrix"},
			Values:     map[string]any{"roll": 0.452442, "is_crit": false, "multiplier": 1.0},
		},
	}

	out := sim.FormatEventsHuman(events)
	assert.Equal(t,
		"R02 [attack] crit_resolution (officer_id=khan, ship_ability_id=crit_matrix) -> is_crit=false, multiplier=1, roll=0.452442",
		out)
}

// TestFormatEventsHuman_NoSource verifies events without attribution render
// source=n/a.
func TestFormatEventsHuman_NoSource(t *testing.T) {
	events := []sim.CombatEvent{
		{
			EventType:  sim.EventRoundStart,
			RoundIndex: 11,
			Phase:      sim.PhaseRound,
			Values:     map[string]any{"attacker": "a", "defender": "b"},
		},
	}

	out := sim.FormatEventsHuman(events)
	assert.Equal(t, "R11 [round] round_start (source=n/a) -> attacker=a, defender=b", out)
}

// TestFormatEventsHuman_FullTrace smoke-checks a real trace renders one line
// per event and mentions both combatants.
func TestFormatEventsHuman_FullTrace(t *testing.T) {
	cfg := sim.Config{Rounds: 2, Seed: 7, TraceMode: sim.TraceEvents}
	result, err := sim.SimulateCombat(fixtureAttacker(), fixtureDefender(), cfg)
	require.NoError(t, err)

	out := sim.FormatEventsHuman(result.Events)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 16)
	assert.Contains(t, out, "officer_khan")
	assert.Contains(t, out, "hostile_interceptor")
	for _, line := range lines {
		assert.Regexp(t, `^R\d{2} \[\w+\] \w+ \(.+\) -> .+$`, line)
	}
}
