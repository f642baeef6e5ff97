package indicators

import "go.uber.org/zap"

// nopLogger is shared by every Engine constructed without WithLogger, so
// callers never need a nil check before logging.
var nopLogger = zap.NewNop()

func defaultLogger(l *zap.Logger) *zap.Logger {
	if l == nil {
		return nopLogger
	}
	return l
}
