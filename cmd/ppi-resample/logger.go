package main

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger builds the command logger: console output on w and, when
// LogFile is set, JSON records in a size-rotated file. The returned close
// function flushes and releases the file.
func newLogger(o options, w io.Writer) (*zap.Logger, func()) {
	level := zapcore.InfoLevel
	if o.Verbose {
		level = zapcore.DebugLevel
	}

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	consoleCfg.EncodeCaller = nil
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(zapcore.AddSync(w)), level),
	}

	var rotator *lumberjack.Logger
	if o.LogFile != "" {
		rotator = &lumberjack.Logger{
			Filename:   o.LogFile,
			MaxSize:    o.LogMaxSize,
			MaxBackups: o.LogMaxBackups,
			MaxAge:     o.LogMaxAge,
			LocalTime:  true,
		}
		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(rotator), zapcore.DebugLevel))
	}

	logger := zap.New(zapcore.NewTee(cores...)).Named(appName)
	return logger, func() {
		_ = logger.Sync()
		if rotator != nil {
			_ = rotator.Close()
		}
	}
}
