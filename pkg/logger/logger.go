package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.SugaredLogger

// Init sets up the global logger. Production environments log JSON at info,
// everything else gets the development console encoder at debug.
func Init(environment string) {
	var cfg zap.Config
	if environment == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.DisableStacktrace = true

	base, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		base = zap.NewNop()
	}
	log = base.Sugar()
}

func ensure() *zap.SugaredLogger {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return log
}

func Debug(msg string, keysAndValues ...any) {
	ensure().Debugw(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...any) {
	ensure().Infow(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...any) {
	ensure().Warnw(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...any) {
	ensure().Errorw(msg, keysAndValues...)
}

func Fatal(msg string, keysAndValues ...any) {
	ensure().Fatalw(msg, keysAndValues...)
}
