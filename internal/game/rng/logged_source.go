package rng

import "go.uber.org/zap"

// LoggedSource wraps a Source and logs every draw at debug level, giving a
// full audit trail of the random stream a simulation consumed.
type LoggedSource struct {
	src    Source
	logger *zap.Logger
	draws  int
}

// NewLoggedSource creates a LoggedSource drawing from src and logging to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedSource(src Source, logger *zap.Logger) *LoggedSource {
	return &LoggedSource{src: src, logger: logger}
}

// Float64 draws from the wrapped source and logs the draw index and value.
func (l *LoggedSource) Float64() float64 {
	value := l.src.Float64()
	l.draws++
	l.logger.Debug("random draw",
		zap.Int("draw", l.draws),
		zap.Float64("value", value),
	)
	return value
}
