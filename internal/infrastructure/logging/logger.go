package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/andrescamacho/factoryplanner-go/internal/infrastructure/config"
)

// NewLogger builds a zap logger from the logging section of the configuration. The
// json format uses zap's production encoder; text uses the development console
// encoder.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var zc zap.Config
	switch cfg.Format {
	case "json":
		zc = zap.NewProductionConfig()
	case "text", "":
		zc = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unsupported log format: %s", cfg.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableCaller = !cfg.IncludeCaller
	zc.DisableStacktrace = !cfg.IncludeStacktrace

	output, err := outputPath(cfg)
	if err != nil {
		return nil, err
	}
	zc.OutputPaths = []string{output}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

func outputPath(cfg config.LoggingConfig) (string, error) {
	switch cfg.Output {
	case "stdout", "stderr":
		return cfg.Output, nil
	case "file":
		if cfg.FilePath == "" {
			return "", fmt.Errorf("logging output is file but file_path is empty")
		}
		return cfg.FilePath, nil
	case "":
		return "stderr", nil
	default:
		return "", fmt.Errorf("unsupported log output: %s", cfg.Output)
	}
}
