package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the root logger. It is a no-op until Init is called.
var Log = zap.NewNop().Sugar()

// Config represents configuration options for logger initialization
type Config struct {
	Debug     bool   // Enable debug logging
	LogToFile bool   // Also write JSON lines to a file
	LogsDir   string // Directory for log files, relative to the working directory
}

// Init builds the root logger: colored console output plus an optional JSON file.
func Init(config Config) error {
	encoderConfig := zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "level",
		TimeKey:        "timestamp",
		NameKey:        "logger",
		CallerKey:      "caller",
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     timeEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	level := zapcore.InfoLevel
	if config.Debug {
		level = zapcore.DebugLevel
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(os.Stdout), level),
	}

	if config.LogToFile {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		dir := filepath.Join(wd, config.LogsDir)
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}

		path := filepath.Join(dir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}

		// File encoder without colors
		fileConfig := encoderConfig
		fileConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileConfig), zapcore.AddSync(f), level))
	}

	Log = zap.New(zapcore.NewTee(cores...), zap.AddCaller()).Named("main").Sugar()
	return nil
}

// Named returns a child logger ("raster", "compose", "http", ...).
func Named(name string) *zap.SugaredLogger {
	return Log.Named(name)
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05"))
}
