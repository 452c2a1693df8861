package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// level is retained so the verbosity can be raised after the logger is
// built, once the command line has been parsed.
var level zap.AtomicLevel

// Setup builds the application logger. Development mode switches to the
// console encoder; production mode emits JSON. The returned logger is also
// installed as the zap global.
func Setup(development bool, appName, appVersion string) (*zap.Logger, error) {
	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	// Add default fields
	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}

	level = cfg.Level

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewExample(), err
	}

	zap.ReplaceGlobals(logger)
	return logger, nil
}

// SetDebugLevel lowers the threshold of the logger built by Setup to debug.
func SetDebugLevel() {
	if level != (zap.AtomicLevel{}) {
		level.SetLevel(zapcore.DebugLevel)
	}
}
