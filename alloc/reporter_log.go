package alloc

import "go.uber.org/zap"

// NewLogReporter returns a Reporter that logs one structured line per
// collection episode at Debug level.
func NewLogReporter(log *zap.Logger) Reporter {
	return func(collected int) {
		log.Debug("garbage collected", zap.Int("blocks_collected", collected))
	}
}

func init() {
	Register("log", NewLogReporter(zap.NewNop()))
}
