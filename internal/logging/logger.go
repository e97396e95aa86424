package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the service logger: a JSON core tee'd to stdout and a rotating
// file in release mode, a development logger otherwise. LOG_FILE overrides
// the file location, LOG_LEVEL the threshold (debug/info/warn/error).
func New() (*zap.Logger, error) {
	if os.Getenv("GIN_MODE") == "release" {
		logFile := os.Getenv("LOG_FILE")
		if logFile == "" {
			logFile = "logs/casesync.log"
		}
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			return nil, err
		}

		level := zap.InfoLevel
		if v := os.Getenv("LOG_LEVEL"); v != "" {
			if parsed, err := zapcore.ParseLevel(v); err == nil {
				level = parsed
			}
		}

		encoderCfg := zap.NewProductionEncoderConfig()
		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.NewMultiWriteSyncer(
				zapcore.AddSync(os.Stdout),
				zapcore.AddSync(&lumberjack.Logger{
					Filename:   logFile,
					MaxSize:    50,
					MaxBackups: 5,
					MaxAge:     14,
					Compress:   true,
				}),
			),
			level,
		)
		return zap.New(core).Named("casesync"), nil
	}
	return zap.NewDevelopment()
}
