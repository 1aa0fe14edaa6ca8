// Package mitigation implements the damage-mitigation model for the Kobayashi
// fleet-combat core: per-channel logistic mitigation curves, ship-type-weighted
// composition, and the standalone isolytic and apex barrier mechanics.
package mitigation

import (
	"fmt"
	"math"
)

// Epsilon is the floor applied to non-positive piercing values so the
// defense/piercing ratio stays finite.
const Epsilon = 1e-9

// PierceCap bounds the damage-through bonus derived from mitigation.
const PierceCap = 0.3

// MoralePrimaryPiercingBonus is the fractional boost morale applies to a ship
// type's primary piercing stat.
const MoralePrimaryPiercingBonus = 0.10

// ShipType identifies a hull class. Each class weights the three defense
// channels differently when composing total mitigation.
type ShipType int

const (
	Survey ShipType = iota
	Battleship
	Explorer
	Interceptor
	// Armada hostiles use the flat survey weighting.
	Armada
)

// String returns the lowercase hull-class label.
func (s ShipType) String() string {
	switch s {
	case Survey:
		return "survey"
	case Battleship:
		return "battleship"
	case Explorer:
		return "explorer"
	case Interceptor:
		return "interceptor"
	case Armada:
		return "armada"
	default:
		return "unknown"
	}
}

// ParseShipType converts a hull-class label to a ShipType.
func ParseShipType(label string) (ShipType, error) {
	switch label {
	case "survey":
		return Survey, nil
	case "battleship":
		return Battleship, nil
	case "explorer":
		return Explorer, nil
	case "interceptor":
		return Interceptor, nil
	case "armada":
		return Armada, nil
	default:
		return 0, fmt.Errorf("unknown ship type %q", label)
	}
}

// Weights is the (armor, shield, dodge) channel weighting for one ship type.
// Weights are not required to sum to 1.
type Weights struct {
	Armor  float64
	Shield float64
	Dodge  float64
}

// shipTypeWeights maps each ship type to its channel weighting. Adding a ship
// type means one table entry plus a String case.
var shipTypeWeights = map[ShipType]Weights{
	Survey:      {0.3, 0.3, 0.3},
	Battleship:  {0.55, 0.2, 0.2},
	Explorer:    {0.2, 0.55, 0.2},
	Interceptor: {0.2, 0.2, 0.55},
	Armada:      {0.3, 0.3, 0.3},
}

// Coefficients returns the channel weighting for the given ship type.
// Unknown ship types fall back to the survey weighting.
func (s ShipType) Coefficients() Weights {
	if w, ok := shipTypeWeights[s]; ok {
		return w
	}
	return shipTypeWeights[Survey]
}

// DefenderStats holds the defender's raw per-channel defense values.
type DefenderStats struct {
	Armor            float64
	ShieldDeflection float64
	Dodge            float64
}

// AttackerStats holds the attacker's raw per-channel piercing values.
type AttackerStats struct {
	ArmorPiercing  float64
	ShieldPiercing float64
	Accuracy       float64
}

// ComponentMitigation computes the single-channel mitigation curve
// f(x) = 1 / (1 + 4^(1.1 - x)) where x = defense / piercing.
// Negative defense clamps to zero; non-positive piercing clamps to Epsilon.
//
// Postcondition: result is in the open interval (0, 1); non-decreasing in
// defense and non-increasing in piercing.
func ComponentMitigation(defense, piercing float64) float64 {
	safeDefense := math.Max(0, defense)
	safePiercing := math.Max(Epsilon, piercing)
	x := safeDefense / safePiercing
	return 1.0 / (1.0 + math.Pow(4.0, 1.1-x))
}

// IsolyticMitigation computes the mitigated portion of isolytic damage as
// 1 / (1 + defense). Isolytic damage ignores piercing stats entirely.
//
// Postcondition: result is in (0, 1].
func IsolyticMitigation(defense float64) float64 {
	return 1.0 / (1.0 + math.Max(0, defense))
}

// ApexBarrierDamageFactor computes the fraction of damage that passes an apex
// barrier: 1 / (1 + (barrier/10000) / (1 + shred)). A zero barrier passes all
// damage; shred attenuates the barrier's effect.
//
// Postcondition: result is in (0, 1].
func ApexBarrierDamageFactor(barrier, shred float64) float64 {
	safeBarrier := math.Max(0, barrier)
	safeShred := math.Max(0, shred)
	return 1.0 / (1.0 + (safeBarrier/10000.0)/(1.0+safeShred))
}

// Mitigation composes the three weighted channel mitigations into a single
// damage-reduction fraction. Each weighted channel acts as an independent
// chance to reduce damage, so the channels combine over their complements:
//
//	total = 1 - (1 - cA*fA)(1 - cS*fS)(1 - cD*fD)
//
// Postcondition: result is clamped to [0, 1].
func Mitigation(defender DefenderStats, attacker AttackerStats, shipType ShipType) float64 {
	w := shipType.Coefficients()

	fArmor := ComponentMitigation(defender.Armor, attacker.ArmorPiercing)
	fShield := ComponentMitigation(defender.ShieldDeflection, attacker.ShieldPiercing)
	fDodge := ComponentMitigation(defender.Dodge, attacker.Accuracy)

	total := 1.0 - (1.0-w.Armor*fArmor)*(1.0-w.Shield*fShield)*(1.0-w.Dodge*fDodge)
	return math.Max(0, math.Min(1, total))
}

// PierceDamageThroughBonus derives the flat damage-through bonus granted by
// piercing: PierceCap * (1 - mitigation).
//
// Postcondition: result is in [0, PierceCap].
func PierceDamageThroughBonus(defender DefenderStats, attacker AttackerStats, shipType ShipType) float64 {
	return PierceCap * (1.0 - Mitigation(defender, attacker, shipType))
}

// ApplyMoralePrimaryPiercing returns a copy of attacker with the ship type's
// primary piercing stat boosted by MoralePrimaryPiercingBonus. Battleships
// pierce shields, interceptors pierce armor, explorers rely on accuracy;
// survey and armada hulls have no primary and are returned unchanged.
func ApplyMoralePrimaryPiercing(attacker AttackerStats, shipType ShipType) AttackerStats {
	switch shipType {
	case Battleship:
		attacker.ShieldPiercing *= 1.0 + MoralePrimaryPiercingBonus
	case Interceptor:
		attacker.ArmorPiercing *= 1.0 + MoralePrimaryPiercingBonus
	case Explorer:
		attacker.Accuracy *= 1.0 + MoralePrimaryPiercingBonus
	}
	return attacker
}

// MitigationWithMorale computes total mitigation, first applying the morale
// primary-piercing boost to the attacker when moraleActive is true. Morale
// lowers the defender's mitigation and so raises final damage.
func MitigationWithMorale(defender DefenderStats, attacker AttackerStats, shipType ShipType, moraleActive bool) float64 {
	if moraleActive {
		attacker = ApplyMoralePrimaryPiercing(attacker, shipType)
	}
	return Mitigation(defender, attacker, shipType)
}

// IsolyticDamage computes bonus isolytic damage from a base damage figure, the
// isolytic damage bonus, and the cascade bonus. Cascade scales with the damage
// bonus already applied: base * (bonus + cascade*(1+bonus)).
func IsolyticDamage(base, bonus, cascade float64) float64 {
	return base * (bonus + cascade*(1.0+bonus))
}
