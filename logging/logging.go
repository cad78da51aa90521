package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger instance
var Logger = zap.NewNop()

// New builds a logger writing to stderr. Without debug only warnings and
// errors are emitted, in the production JSON encoding.
func New(debug bool, appName, appVersion string) (*zap.Logger, error) {
	var cfg zap.Config

	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		cfg.Sampling = nil
	}

	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	// Add default fields
	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}

	return cfg.Build()
}

// Setup builds the global logger and replaces zap's globals with it. On
// failure the global logger falls back to a no-op logger.
func Setup(debug bool, appName, appVersion string) error {
	logger, err := New(debug, appName, appVersion)
	if err != nil {
		Logger = zap.NewNop()
		return err
	}

	Logger = logger
	zap.ReplaceGlobals(Logger)
	return nil
}
