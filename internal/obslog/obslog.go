// Package obslog constructs the zap logger used across the module's ambient
// stack (the buffered provider's refill/discard tracing, the demo CLI's
// evaluation summaries), grounded on packetd's logger package.
package obslog

import (
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects the logger's sink and verbosity.
type Config struct {
	// Stdout writes to standard out instead of LogFile. Takes precedence
	// over LogFile when true.
	Stdout bool `env:"STDOUT" yaml:"stdout"`
	// Level is one of "debug", "info", "warn", "error".
	Level string `env:"LEVEL" yaml:"level"`
	// LogFile is the lumberjack-rotated sink path, used when Stdout is false.
	LogFile    string `env:"LOG_FILE" yaml:"logFile"`
	MaxSizeMB  int    `env:"MAX_SIZE_MB" yaml:"maxSizeMB"`
	MaxAgeDays int    `env:"MAX_AGE_DAYS" yaml:"maxAgeDays"`
	MaxBackups int    `env:"MAX_BACKUPS" yaml:"maxBackups"`
}

func levelFor(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New builds a zap.Logger from cfg. An empty cfg (zero Config) logs at Info
// to stdout.
func New(cfg Config) (*zap.Logger, error) {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.UTC().Format("2006-01-02T15:04:05.000Z"))
	}
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewConsoleEncoder(encCfg)

	var sink zapcore.WriteSyncer
	switch {
	case cfg.Stdout || cfg.LogFile == "":
		sink = zapcore.AddSync(os.Stdout)
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.MaxSizeMB,
			MaxAge:     cfg.MaxAgeDays,
			MaxBackups: cfg.MaxBackups,
			LocalTime:  true,
		})
	}

	core := zapcore.NewCore(encoder, sink, levelFor(cfg.Level))
	return zap.New(core, zap.AddCaller()), nil
}
