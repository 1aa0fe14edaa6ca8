// Package stacking reduces heterogeneous buff/debuff contributions into one
// net value per stat using the canonical base/modifier/flat composition:
//
//	total = base * (1 + modifier) + flat
package stacking

import "fmt"

// EffectCategory classifies how a contribution enters the canonical formula.
type EffectCategory int

const (
	// Base contributions sum into the A term.
	Base EffectCategory = iota
	// Modifier contributions sum into the multiplicative B term.
	Modifier
	// Flat contributions sum into the additive C term.
	Flat
)

// String returns the lowercase category label.
func (c EffectCategory) String() string {
	switch c {
	case Base:
		return "base"
	case Modifier:
		return "modifier"
	case Flat:
		return "flat"
	default:
		return "unknown"
	}
}

// ParseCategory converts a category label to an EffectCategory.
//
// Postcondition: Returns an error for any label other than "base", "modifier",
// or "flat".
func ParseCategory(label string) (EffectCategory, error) {
	switch label {
	case "base":
		return Base, nil
	case "modifier":
		return Modifier, nil
	case "flat":
		return Flat, nil
	default:
		return 0, fmt.Errorf("unknown effect category %q", label)
	}
}

// EffectContribution is one buff/debuff contribution to a single stat.
// Collections of contributions are unordered; the stacking result never
// depends on input order.
type EffectContribution struct {
	EffectKind string
	StatKey    string
	Category   EffectCategory
	Value      float64
}

// GroupKey identifies one isolated stack group.
type GroupKey struct {
	EffectKind string
	StatKey    string
}

// StackBreakdown holds the per-category running sums for one group.
// The composed total is derived on demand, never stored.
type StackBreakdown struct {
	BaseTotal     float64
	ModifierTotal float64
	FlatTotal     float64
}

// Total composes the breakdown with the canonical formula
// base * (1 + modifier) + flat. A group with no base contribution composes to
// its flat total alone: modifiers scale a base, they do not create value.
func (b StackBreakdown) Total() float64 {
	return b.BaseTotal*(1.0+b.ModifierTotal) + b.FlatTotal
}

// add accumulates one contribution value into the matching category sum.
func (b *StackBreakdown) add(category EffectCategory, value float64) {
	switch category {
	case Base:
		b.BaseTotal += value
	case Modifier:
		b.ModifierTotal += value
	case Flat:
		b.FlatTotal += value
	}
}

// StackEffects groups contributions by (effect kind, stat key) and sums each
// group's categories in a single pass.
//
// Postcondition: The result is independent of input order; groups are fully
// isolated; an empty input yields an empty map.
func StackEffects(effects []EffectContribution) map[GroupKey]StackBreakdown {
	grouped := make(map[GroupKey]StackBreakdown, len(effects))
	for _, effect := range effects {
		key := GroupKey{EffectKind: effect.EffectKind, StatKey: effect.StatKey}
		breakdown := grouped[key]
		breakdown.add(effect.Category, effect.Value)
		grouped[key] = breakdown
	}
	return grouped
}

// Stacker is the incremental form of StackEffects, for call sites where
// contributions arrive over time rather than as one slice.
type Stacker struct {
	totals map[GroupKey]StackBreakdown
}

// NewStacker returns an empty accumulator.
func NewStacker() *Stacker {
	return &Stacker{totals: make(map[GroupKey]StackBreakdown)}
}

// Add accumulates a single contribution.
func (s *Stacker) Add(effect EffectContribution) {
	key := GroupKey{EffectKind: effect.EffectKind, StatKey: effect.StatKey}
	breakdown := s.totals[key]
	breakdown.add(effect.Category, effect.Value)
	s.totals[key] = breakdown
}

// AddMany accumulates each contribution in order.
func (s *Stacker) AddMany(effects []EffectContribution) {
	for _, effect := range effects {
		s.Add(effect)
	}
}

// TotalsFor returns the breakdown for the given group, and whether the group
// has received any contribution.
func (s *Stacker) TotalsFor(key GroupKey) (StackBreakdown, bool) {
	breakdown, ok := s.totals[key]
	return breakdown, ok
}

// ComposedFor returns the composed total for the given group, and whether the
// group has received any contribution.
func (s *Stacker) ComposedFor(key GroupKey) (float64, bool) {
	breakdown, ok := s.totals[key]
	if !ok {
		return 0, false
	}
	return breakdown.Total(), true
}

// Totals returns a copy of all accumulated breakdowns.
func (s *Stacker) Totals() map[GroupKey]StackBreakdown {
	out := make(map[GroupKey]StackBreakdown, len(s.totals))
	for key, breakdown := range s.totals {
		out[key] = breakdown
	}
	return out
}

// Merge adds every breakdown from other into this accumulator. Used to restore
// a round's base state without rebuilding from the raw contribution list.
func (s *Stacker) Merge(other *Stacker) {
	for key, breakdown := range other.totals {
		combined := s.totals[key]
		combined.BaseTotal += breakdown.BaseTotal
		combined.ModifierTotal += breakdown.ModifierTotal
		combined.FlatTotal += breakdown.FlatTotal
		s.totals[key] = combined
	}
}

// Clear empties the accumulator.
func (s *Stacker) Clear() {
	s.totals = make(map[GroupKey]StackBreakdown)
}
