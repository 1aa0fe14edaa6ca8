// Package scenario loads combat scenarios from YAML and resolves them into
// simulator-ready combatants. This is the seam to the upstream data
// collaborators: raw per-channel defense and piercing stats are folded into a
// single mitigation fraction here, once, before the simulator ever runs, and
// stacked buff contributions are composed and applied the same way.
package scenario

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kobayashi-sim/kobayashi/internal/game/mitigation"
	"github.com/kobayashi-sim/kobayashi/internal/game/sim"
	"github.com/kobayashi-sim/kobayashi/internal/game/stacking"
)

// yamlScenarioFile is the top-level YAML structure for scenario files.
type yamlScenarioFile struct {
	Scenario yamlScenario `yaml:"scenario"`
}

// yamlScenario is the YAML representation of one fight setup.
type yamlScenario struct {
	Name     string        `yaml:"name"`
	Attacker yamlCombatant `yaml:"attacker"`
	Defender yamlCombatant `yaml:"defender"`
}

// yamlCombatant is the YAML representation of one side. Mitigation may be
// given directly, or derived from the defense block against the opponent's
// piercing block.
type yamlCombatant struct {
	ID               string        `yaml:"id"`
	ShipType         string        `yaml:"ship_type"`
	Attack           float64       `yaml:"attack"`
	Mitigation       float64       `yaml:"mitigation"`
	Pierce           float64       `yaml:"pierce"`
	CritChance       float64       `yaml:"crit_chance"`
	CritMultiplier   float64       `yaml:"crit_multiplier"`
	ProcChance       float64       `yaml:"proc_chance"`
	ProcMultiplier   float64       `yaml:"proc_multiplier"`
	EndOfRoundDamage float64       `yaml:"end_of_round_damage"`
	Morale           bool          `yaml:"morale"`
	Defense          *yamlDefense  `yaml:"defense"`
	Piercing         *yamlPiercing `yaml:"piercing"`
	Effects          []yamlEffect  `yaml:"effects"`
}

// yamlDefense holds the raw per-channel defense stats.
type yamlDefense struct {
	Armor            float64 `yaml:"armor"`
	ShieldDeflection float64 `yaml:"shield_deflection"`
	Dodge            float64 `yaml:"dodge"`
}

// yamlPiercing holds the raw per-channel piercing stats.
type yamlPiercing struct {
	ArmorPiercing  float64 `yaml:"armor_piercing"`
	ShieldPiercing float64 `yaml:"shield_piercing"`
	Accuracy       float64 `yaml:"accuracy"`
}

// yamlEffect is one buff/debuff contribution.
type yamlEffect struct {
	EffectKind string  `yaml:"effect_kind"`
	StatKey    string  `yaml:"stat_key"`
	Category   string  `yaml:"category"`
	Value      float64 `yaml:"value"`
}

// Scenario is a validated fight setup ready for resolution.
type Scenario struct {
	Name     string
	Attacker Side
	Defender Side
}

// Side is one validated combatant definition before resolution.
type Side struct {
	Combatant sim.Combatant
	ShipType  mitigation.ShipType
	Morale    bool
	Defense   *mitigation.DefenderStats
	Piercing  *mitigation.AttackerStats
	Effects   []stacking.EffectContribution
}

// LoadFromFile reads and validates a single scenario YAML file.
//
// Precondition: path must point to a valid YAML scenario file.
// Postcondition: Returns a validated Scenario or a non-nil error.
func LoadFromFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file %s: %w", path, err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses and validates a scenario from YAML bytes.
//
// Postcondition: Returns a validated Scenario or a non-nil error.
func LoadFromBytes(data []byte) (*Scenario, error) {
	var file yamlScenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}

	attacker, err := convertSide(file.Scenario.Attacker)
	if err != nil {
		return nil, fmt.Errorf("scenario attacker: %w", err)
	}
	defender, err := convertSide(file.Scenario.Defender)
	if err != nil {
		return nil, fmt.Errorf("scenario defender: %w", err)
	}

	s := &Scenario{Name: file.Scenario.Name, Attacker: attacker, Defender: defender}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("validating scenario: %w", err)
	}
	return s, nil
}

func convertSide(y yamlCombatant) (Side, error) {
	side := Side{
		Combatant: sim.Combatant{
			ID:               y.ID,
			Attack:           y.Attack,
			Mitigation:       y.Mitigation,
			Pierce:           y.Pierce,
			CritChance:       y.CritChance,
			CritMultiplier:   y.CritMultiplier,
			ProcChance:       y.ProcChance,
			ProcMultiplier:   y.ProcMultiplier,
			EndOfRoundDamage: y.EndOfRoundDamage,
		},
		Morale: y.Morale,
	}

	if y.ShipType != "" {
		shipType, err := mitigation.ParseShipType(y.ShipType)
		if err != nil {
			return Side{}, err
		}
		side.ShipType = shipType
	}

	if y.Defense != nil {
		side.Defense = &mitigation.DefenderStats{
			Armor:            y.Defense.Armor,
			ShieldDeflection: y.Defense.ShieldDeflection,
			Dodge:            y.Defense.Dodge,
		}
	}
	if y.Piercing != nil {
		side.Piercing = &mitigation.AttackerStats{
			ArmorPiercing:  y.Piercing.ArmorPiercing,
			ShieldPiercing: y.Piercing.ShieldPiercing,
			Accuracy:       y.Piercing.Accuracy,
		}
	}

	for _, effect := range y.Effects {
		category, err := stacking.ParseCategory(effect.Category)
		if err != nil {
			return Side{}, fmt.Errorf("effect for %q: %w", effect.StatKey, err)
		}
		side.Effects = append(side.Effects, stacking.EffectContribution{
			EffectKind: effect.EffectKind,
			StatKey:    effect.StatKey,
			Category:   category,
			Value:      effect.Value,
		})
	}

	return side, nil
}

// Validate checks all scenario invariants.
//
// Postcondition: Returns nil if the scenario is valid, or an error describing
// all violations.
func (s *Scenario) Validate() error {
	var errs []string

	if s.Name == "" {
		errs = append(errs, "scenario.name must not be empty")
	}
	if err := validateSide("attacker", s.Attacker); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateSide("defender", s.Defender); err != nil {
		errs = append(errs, err.Error())
	}
	if s.Attacker.Combatant.ID != "" && s.Attacker.Combatant.ID == s.Defender.Combatant.ID {
		errs = append(errs, "attacker and defender must have distinct ids")
	}

	if len(errs) > 0 {
		return fmt.Errorf("scenario validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateSide(label string, side Side) error {
	var errs []string

	if side.Combatant.ID == "" {
		errs = append(errs, fmt.Sprintf("%s.id must not be empty", label))
	}
	if side.Combatant.Attack < 0 {
		errs = append(errs, fmt.Sprintf("%s.attack must not be negative", label))
	}
	if side.Combatant.Mitigation < 0 || side.Combatant.Mitigation > 1 {
		errs = append(errs, fmt.Sprintf("%s.mitigation must be in [0, 1], got %v", label, side.Combatant.Mitigation))
	}
	if side.Combatant.CritChance < 0 || side.Combatant.CritChance > 1 {
		errs = append(errs, fmt.Sprintf("%s.crit_chance must be in [0, 1], got %v", label, side.Combatant.CritChance))
	}
	if side.Combatant.ProcChance < 0 || side.Combatant.ProcChance > 1 {
		errs = append(errs, fmt.Sprintf("%s.proc_chance must be in [0, 1], got %v", label, side.Combatant.ProcChance))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Resolve turns the scenario into two simulator-ready combatants. For a side
// carrying a defense block, its mitigation fraction is derived here from the
// opponent's piercing block (morale on the opponent boosts their primary
// piercing first); a side without a defense block keeps its explicit
// mitigation value. Stacked effects fold in last.
func (s *Scenario) Resolve() (attacker, defender sim.Combatant) {
	attacker = resolveSide(s.Attacker, s.Defender)
	defender = resolveSide(s.Defender, s.Attacker)
	return attacker, defender
}

func resolveSide(side, opponent Side) sim.Combatant {
	combatant := side.Combatant

	if side.Defense != nil {
		var piercing mitigation.AttackerStats
		if opponent.Piercing != nil {
			piercing = *opponent.Piercing
		}
		combatant.Mitigation = mitigation.MitigationWithMorale(*side.Defense, piercing, side.ShipType, opponent.Morale)
	}

	if len(side.Effects) > 0 {
		combatant = sim.ApplyStaticBuffs(combatant, stacking.StackEffects(side.Effects))
	}
	return combatant
}
