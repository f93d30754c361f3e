package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// NewLogger пишет одновременно в stdout и в файл логов доски.
func NewLogger(logPath string) *zap.Logger {
	outputs := []string{"stdout"}
	if logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err == nil {
			outputs = append(outputs, logPath)
		}
	}

	dualConfig := zap.Config{
		Encoding:         "console",
		Level:            zap.NewAtomicLevelAt(zap.DebugLevel),
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    zap.NewProductionEncoderConfig(),
	}

	dualLogger, err := dualConfig.Build()
	if err != nil {
		panic(err)
	}

	return dualLogger
}
