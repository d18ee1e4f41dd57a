package requests

import "go.uber.org/zap"

var logger *zap.Logger

// Logger returns the *zap.Logger currently in use by this library.
// Nothing is logged until SetLogger is called.
func Logger() *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

// SetLogger can be used to change the *zap.Logger used by this
// library.  A nil logger silences it again.
func SetLogger(newLogger *zap.Logger) {
	logger = newLogger
}
