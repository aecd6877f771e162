package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// log is a no-op until Init runs, so packages can log from tests without
// any setup.
var log = zap.NewNop().Sugar()

// Init builds the process-wide logger. Development prints colored console
// lines at debug level; every other environment writes JSON at info level.
func Init(env string) {
	encCfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		MessageKey:     "msg",
		CallerKey:      "caller",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	level := zapcore.InfoLevel
	encoder := zapcore.NewJSONEncoder(withLevel(encCfg, zapcore.LowercaseLevelEncoder))
	if strings.EqualFold(env, "development") || strings.EqualFold(env, "dev") {
		level = zapcore.DebugLevel
		encoder = zapcore.NewConsoleEncoder(withLevel(encCfg, zapcore.CapitalColorLevelEncoder))
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level)
	base := zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.Fields(zap.String("service", "menu-reco"), zap.String("env", env)),
	)

	log = base.Sugar()
	zap.ReplaceGlobals(base)
}

func withLevel(cfg zapcore.EncoderConfig, enc zapcore.LevelEncoder) zapcore.EncoderConfig {
	cfg.EncodeLevel = enc
	return cfg
}

// Debug and friends take a message followed by alternating key/value pairs.
func Debug(msg string, keysAndValues ...any) {
	log.Debugw(msg, keysAndValues...)
}

func Info(msg string, keysAndValues ...any) {
	log.Infow(msg, keysAndValues...)
}

func Warn(msg string, keysAndValues ...any) {
	log.Warnw(msg, keysAndValues...)
}

func Error(msg string, keysAndValues ...any) {
	log.Errorw(msg, keysAndValues...)
}

func Fatal(msg string, keysAndValues ...any) {
	log.Fatalw(msg, keysAndValues...)
}

// Sync flushes buffered entries. Call it before the process exits.
func Sync() {
	_ = log.Sync()
}
