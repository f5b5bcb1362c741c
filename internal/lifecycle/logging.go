package lifecycle

import "github.com/rs/zerolog"

// LoggingListener logs every life-cycle event at debug level, grounded
// on the retrieved internal/services/gtfs.go zerolog usage pattern
// (log.Info().Str(...).Msg(...)). Never register it in a hot
// production path without a sampled/leveled logger — it fires once
// per iteration and round, not per stop.
type LoggingListener struct {
	log zerolog.Logger
}

func NewLoggingListener(log zerolog.Logger) *LoggingListener {
	return &LoggingListener{log: log}
}

func (l *LoggingListener) SetupIteration(departureTime int) {
	l.log.Debug().Int("departureTime", departureTime).Msg("setup iteration")
}

func (l *LoggingListener) PrepareForNextRound(round int) {
	l.log.Debug().Int("round", round).Msg("prepare for next round")
}

func (l *LoggingListener) RoundComplete(round int, destinationReached bool) {
	l.log.Debug().Int("round", round).Bool("destinationReached", destinationReached).Msg("round complete")
}

func (l *LoggingListener) IterationComplete() {
	l.log.Debug().Msg("iteration complete")
}
