package sim

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// SerializeEventsJSON renders events as an indented JSON array. The source
// object carries only the attribution fields that are set.
func SerializeEventsJSON(events []CombatEvent) (string, error) {
	if events == nil {
		events = []CombatEvent{}
	}
	payload, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing combat events: %w", err)
	}
	return string(payload), nil
}

// sourcePairs renders the set attribution fields as k=v pairs in declaration
// order.
func sourcePairs(s EventSource) []string {
	var pairs []string
	if s.OfficerID != "" {
		pairs = append(pairs, "officer_id="+s.OfficerID)
	}
	if s.ShipAbilityID != "" {
		pairs = append(pairs, "ship_ability_id="+s.ShipAbilityID)
	}
	if s.HostileAbilityID != "" {
		pairs = append(pairs, "hostile_ability_id="+s.HostileAbilityID)
	}
	if s.PlayerBonusSource != "" {
		pairs = append(pairs, "player_bonus_source="+s.PlayerBonusSource)
	}
	return pairs
}

// FormatEventsHuman renders one line per event:
//
//	R01 [attack] attack_roll (officer_id=khan) -> base_attack=100, roll=0.617753
//
// Source renders as "source=n/a" when no attribution field is set. Values are
// rendered in sorted key order so output is deterministic.
func FormatEventsHuman(events []CombatEvent) string {
	lines := make([]string, 0, len(events))
	for _, event := range events {
		source := "source=n/a"
		if !event.Source.IsZero() {
			source = strings.Join(sourcePairs(event.Source), ", ")
		}

		keys := make([]string, 0, len(event.Values))
		for k := range event.Values {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		values := make([]string, 0, len(keys))
		for _, k := range keys {
			values = append(values, fmt.Sprintf("%s=%v", k, event.Values[k]))
		}

		lines = append(lines, fmt.Sprintf("R%02d [%s] %s (%s) -> %s",
			event.RoundIndex, event.Phase, event.EventType, source, strings.Join(values, ", ")))
	}
	return strings.Join(lines, "\n")
}
