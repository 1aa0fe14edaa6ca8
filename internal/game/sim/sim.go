// Package sim implements the deterministic round simulator for the Kobayashi
// fleet-combat core. A simulation resolves a fixed number of rounds between
// two fully resolved combatants, drawing exactly three values per round from
// a seeded source, and optionally emits an ordered trace of every
// intermediate computation.
package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/kobayashi-sim/kobayashi/internal/game/rng"
)

// ErrInvalidConfig is returned when a simulation config violates the caller
// contract.
var ErrInvalidConfig = errors.New("invalid simulation config")

// TraceMode controls whether a simulation records trace events.
type TraceMode int

const (
	// TraceOff disables the trace entirely; no event is ever constructed.
	TraceOff TraceMode = iota
	// TraceEvents records every per-round event.
	TraceEvents
)

// String returns the lowercase trace-mode label.
func (m TraceMode) String() string {
	switch m {
	case TraceOff:
		return "off"
	case TraceEvents:
		return "events"
	default:
		return "unknown"
	}
}

// ParseTraceMode converts a trace-mode label to a TraceMode.
func ParseTraceMode(label string) (TraceMode, error) {
	switch label {
	case "off":
		return TraceOff, nil
	case "events":
		return TraceEvents, nil
	default:
		return 0, fmt.Errorf("unknown trace mode %q", label)
	}
}

// Combatant is the fully resolved combat-ready state of one side. Officer,
// ship, and research bonuses are folded in upstream; in particular Mitigation
// is already a single fraction in [0, 1], derived once from raw defense and
// piercing stats before the simulator runs.
type Combatant struct {
	ID               string
	Attack           float64
	Mitigation       float64
	Pierce           float64
	CritChance       float64
	CritMultiplier   float64
	ProcChance       float64
	ProcMultiplier   float64
	EndOfRoundDamage float64
}

// Config holds the simulation parameters.
type Config struct {
	// Rounds is the number of rounds to resolve. Must be >= 1.
	Rounds int
	// Seed fully determines the random stream for this run.
	Seed uint64
	// TraceMode controls trace event collection.
	TraceMode TraceMode
}

// DefaultConfig returns the standard three-round seeded configuration with
// tracing off.
func DefaultConfig() Config {
	return Config{Rounds: 3, Seed: 7, TraceMode: TraceOff}
}

// Validate checks the caller contract. A zero-round simulation is not a
// meaningful combat and is rejected rather than silently producing an empty
// result.
func (c Config) Validate() error {
	if c.Rounds < 1 {
		return fmt.Errorf("%w: rounds must be >= 1, got %d", ErrInvalidConfig, c.Rounds)
	}
	return nil
}

// Result is the outcome of one simulation run.
type Result struct {
	// TotalDamage is the accumulated damage, rounded to 6 decimal places.
	TotalDamage float64
	// Events is the ordered trace; empty when the trace mode is off.
	Events []CombatEvent
}

// round6 rounds v to 6 decimal places. Trace values are rounded at the point
// of recording so the trace and the returned total stay mutually consistent.
func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

// SimulateCombat resolves cfg.Rounds rounds of attacker striking defender
// with a fresh source seeded from cfg.Seed. Identical inputs always produce
// an identical Result, independent of machine or prior calls.
func SimulateCombat(attacker, defender Combatant, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	return simulate(attacker, defender, cfg, rng.NewSplitMix64(cfg.Seed)), nil
}

// SimulateCombatWithSource is SimulateCombat drawing from a caller-supplied
// source, for callers that wrap the stream (e.g. draw logging). Determinism
// then rests on the caller seeding src itself.
func SimulateCombatWithSource(attacker, defender Combatant, cfg Config, src rng.Source) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	return simulate(attacker, defender, cfg, src), nil
}

// simulate runs the eight-phase round loop. Three draws per round, always in
// the order attack, crit, proc; the draw order is load-bearing for
// reproducibility.
func simulate(attacker, defender Combatant, cfg Config, src rng.Source) Result {
	trace := NewTraceCollector(cfg.TraceMode == TraceEvents)
	totalDamage := 0.0

	for roundIndex := 1; roundIndex <= cfg.Rounds; roundIndex++ {
		if trace.Enabled() {
			trace.Record(CombatEvent{
				EventType:  EventRoundStart,
				RoundIndex: roundIndex,
				Phase:      PhaseRound,
				Source:     EventSource{ShipAbilityID: "baseline_round"},
				Values:     map[string]any{"attacker": attacker.ID, "defender": defender.ID},
			})
		}

		// Hit confirmation happens upstream; the roll is recorded for audit
		// but does not gate damage.
		roll := src.Float64()
		if trace.Enabled() {
			trace.Record(CombatEvent{
				EventType:  EventAttackRoll,
				RoundIndex: roundIndex,
				Phase:      PhaseAttack,
				Source:     EventSource{OfficerID: attacker.ID},
				Values:     map[string]any{"roll": round6(roll), "base_attack": attacker.Attack},
			})
		}

		mitigationMultiplier := math.Max(0, 1.0-defender.Mitigation)
		if trace.Enabled() {
			trace.Record(CombatEvent{
				EventType:  EventMitigationCalc,
				RoundIndex: roundIndex,
				Phase:      PhaseDefense,
				Source:     EventSource{HostileAbilityID: defender.ID + "_mitigation"},
				Values:     map[string]any{"mitigation": defender.Mitigation, "multiplier": round6(mitigationMultiplier)},
			})
		}

		// Pierce is a flat bonus on top of the already-resolved mitigation,
		// not another multiplicative channel.
		effectiveMitigation := math.Max(0, mitigationMultiplier+attacker.Pierce)
		if trace.Enabled() {
			trace.Record(CombatEvent{
				EventType:  EventPierceCalc,
				RoundIndex: roundIndex,
				Phase:      PhaseAttack,
				Source:     EventSource{OfficerID: attacker.ID, PlayerBonusSource: "research:weapon_tech"},
				Values:     map[string]any{"pierce": attacker.Pierce, "effective_mitigation": round6(effectiveMitigation)},
			})
		}

		critRoll := src.Float64()
		isCrit := critRoll < attacker.CritChance
		critMultiplier := 1.0
		if isCrit {
			critMultiplier = attacker.CritMultiplier
		}
		if trace.Enabled() {
			trace.Record(CombatEvent{
				EventType:  EventCritResolution,
				RoundIndex: roundIndex,
				Phase:      PhaseAttack,
				Source:     EventSource{OfficerID: attacker.ID, ShipAbilityID: "crit_matrix"},
				Values:     map[string]any{"roll": round6(critRoll), "is_crit": isCrit, "multiplier": critMultiplier},
			})
		}

		procRoll := src.Float64()
		didProc := procRoll < attacker.ProcChance
		procMultiplier := 1.0
		if didProc {
			procMultiplier = attacker.ProcMultiplier
		}
		if trace.Enabled() {
			trace.Record(CombatEvent{
				EventType:  EventProcTriggers,
				RoundIndex: roundIndex,
				Phase:      PhaseProc,
				Source:     EventSource{OfficerID: attacker.ID, ShipAbilityID: "officer_proc"},
				Values:     map[string]any{"roll": round6(procRoll), "triggered": didProc, "multiplier": procMultiplier},
			})
		}

		damage := attacker.Attack * effectiveMitigation * critMultiplier * procMultiplier
		totalDamage += damage
		if trace.Enabled() {
			trace.Record(CombatEvent{
				EventType:  EventDamageApplication,
				RoundIndex: roundIndex,
				Phase:      PhaseDamage,
				Source:     EventSource{OfficerID: attacker.ID, HostileAbilityID: defender.ID + "_hull"},
				Values:     map[string]any{"final_damage": round6(damage), "running_total": round6(totalDamage)},
			})
		}

		totalDamage += attacker.EndOfRoundDamage
		if trace.Enabled() {
			trace.Record(CombatEvent{
				EventType:  EventEndOfRoundEffects,
				RoundIndex: roundIndex,
				Phase:      PhaseEnd,
				Source:     EventSource{PlayerBonusSource: "artifact:radiation_array"},
				Values:     map[string]any{"bonus_damage": attacker.EndOfRoundDamage, "running_total": round6(totalDamage)},
			})
		}
	}

	return Result{TotalDamage: round6(totalDamage), Events: trace.Events()}
}
