package sim

// Phase labels the step of a combat round an event belongs to.
const (
	PhaseRound   = "round"
	PhaseAttack  = "attack"
	PhaseDefense = "defense"
	PhaseProc    = "proc"
	PhaseDamage  = "damage"
	PhaseEnd     = "end"
)

// Event types emitted once per round, in this order.
const (
	EventRoundStart        = "round_start"
	EventAttackRoll        = "attack_roll"
	EventMitigationCalc    = "mitigation_calc"
	EventPierceCalc        = "pierce_calc"
	EventCritResolution    = "crit_resolution"
	EventProcTriggers      = "proc_triggers"
	EventDamageApplication = "damage_application"
	EventEndOfRoundEffects = "end_of_round_effects"
)

// EventTypesPerRound is the fixed per-round event-type sequence. A traced
// simulation of r rounds emits exactly len(EventTypesPerRound) * r events.
var EventTypesPerRound = []string{
	EventRoundStart,
	EventAttackRoll,
	EventMitigationCalc,
	EventPierceCalc,
	EventCritResolution,
	EventProcTriggers,
	EventDamageApplication,
	EventEndOfRoundEffects,
}

// EventSource attributes an event to the game entity that caused it. Each
// field is independently optional; only set fields are meaningful. Attribution
// is audit data only and never drives control flow.
type EventSource struct {
	OfficerID         string `json:"officer_id,omitempty"`
	ShipAbilityID     string `json:"ship_ability_id,omitempty"`
	HostileAbilityID  string `json:"hostile_ability_id,omitempty"`
	PlayerBonusSource string `json:"player_bonus_source,omitempty"`
}

// IsZero reports whether no attribution field is set.
func (s EventSource) IsZero() bool {
	return s == EventSource{}
}

// CombatEvent is one immutable trace record of an intermediate computation
// step inside a simulated round. Events are produced only by the simulator
// and only when tracing is enabled.
type CombatEvent struct {
	EventType  string         `json:"event_type"`
	RoundIndex int            `json:"round_index"` // 1-based
	Phase      string         `json:"phase"`
	Source     EventSource    `json:"source"`
	Values     map[string]any `json:"values"`
}
