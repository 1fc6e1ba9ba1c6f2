package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logFileName = "wellnest.log"

type Options struct {
	Level       string
	Dir         string
	Development bool
}

// New builds a console logger and, when Dir is set, a rotating JSON file
// logger teed behind it.
func New(options Options) (*zap.Logger, error) {
	return build(options, zapcore.Lock(os.Stdout))
}

func build(options Options, console zapcore.WriteSyncer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(options.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleEncoder := zapcore.NewJSONEncoder(encoderConfig)
	if options.Development {
		developmentConfig := encoderConfig
		developmentConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		consoleEncoder = zapcore.NewConsoleEncoder(developmentConfig)
	}
	cores := []zapcore.Core{zapcore.NewCore(consoleEncoder, console, level)}

	if options.Dir != "" {
		if err := os.MkdirAll(options.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   filepath.Join(options.Dir, logFileName),
				MaxSize:    50, // MB
				MaxBackups: 10,
				MaxAge:     30, // days
				Compress:   true,
			}),
			level,
		)
		cores = append(cores, fileCore)
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)), nil
}
