package sim

// TraceCollector is a conditional event sink. When disabled it drops every
// record; callers check Enabled before building an event so a trace-off run
// never pays for event construction.
type TraceCollector struct {
	enabled bool
	events  []CombatEvent
}

// NewTraceCollector returns a collector that records iff enabled.
func NewTraceCollector(enabled bool) *TraceCollector {
	return &TraceCollector{enabled: enabled}
}

// Enabled reports whether this collector records events.
func (t *TraceCollector) Enabled() bool {
	return t.enabled
}

// Record appends event when the collector is enabled.
func (t *TraceCollector) Record(event CombatEvent) {
	if t.enabled {
		t.events = append(t.events, event)
	}
}

// Events returns the recorded events in append order.
func (t *TraceCollector) Events() []CombatEvent {
	return t.events
}
