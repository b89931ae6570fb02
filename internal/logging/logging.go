package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger writing to stdout. Level is one of DEBUG,
// INFO, WARN, ERROR (case-insensitive, defaults to INFO); format is "json"
// (default) or "console". ERROR-level entries automatically include a stack
// trace.
func New(level, format string) *zap.Logger {
	return NewTo(zapcore.Lock(os.Stdout), level, format)
}

// NewTo is New with an explicit destination. The CLI logs to stderr so
// command output stays clean.
func NewTo(w zapcore.WriteSyncer, level, format string) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if strings.EqualFold(format, "console") {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, w, parseLevel(level))
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// Setup builds a logger from LOG_LEVEL / LOG_FORMAT and installs it as the
// zap global, for binaries that have not loaded config yet.
func Setup() *zap.Logger {
	logger := New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	zap.ReplaceGlobals(logger)
	return logger
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Fatal logs at Error level and exits with code 1.
func Fatal(logger *zap.Logger, msg string, fields ...zap.Field) {
	logger.Error(msg, fields...)
	_ = logger.Sync()
	os.Exit(1)
}
