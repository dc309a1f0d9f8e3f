package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileOptions configures an additional rotated log file.
type FileOptions struct {
	Path      string
	MaxSizeMB int
	MaxAgeDay int
}

// New creates a new logger instance. Console output goes to stderr so it
// never mixes with generated data; when file.Path is set the same entries
// are also written as JSON to a rotated file.
func New(environment string, file FileOptions) (*zap.Logger, error) {
	var config zap.Config

	if environment == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	config.EncoderConfig.CallerKey = "caller"
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	config.OutputPaths = []string{"stderr"}

	log, err := config.Build(zap.AddCaller())
	if err != nil {
		return nil, err
	}
	if file.Path == "" {
		return log, nil
	}

	rotated := &lumberjack.Logger{
		Filename: file.Path,
		MaxSize:  file.MaxSizeMB,
		MaxAge:   file.MaxAgeDay,
		Compress: true,
	}
	fileEncoderConfig := zap.NewProductionEncoderConfig()
	fileEncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(fileEncoderConfig),
		zapcore.AddSync(rotated),
		config.Level,
	)

	return log.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
		return zapcore.NewTee(c, fileCore)
	})), nil
}
