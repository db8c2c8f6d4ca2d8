package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/sanspareilsmyn/insightlens/internal/config"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
	FormatNone    = "none" // file output only
)

// NewLogger builds the process logger from cfg.
// Console output splits by level: below error goes to stdout, error and above to stderr.
// With file logging enabled a JSON core rotated by lumberjack is teed in.
func NewLogger(cfg config.LogConfig) (*zap.Logger, error) {
	return newLogger(cfg, os.Stdout, os.Stderr)
}

func newLogger(cfg config.LogConfig, stdout, stderr io.Writer) (*zap.Logger, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARN: %v, defaulting to INFO level\n", err)
		level = zapcore.InfoLevel
	}

	format := strings.ToLower(cfg.Format)
	isDevelopment := level == zapcore.DebugLevel || format == FormatConsole

	cores, err := buildCores(cfg, format, level, stdout, stderr)
	if err != nil {
		return nil, err
	}
	if len(cores) == 0 {
		return nil, fmt.Errorf("no logging outputs configured (format %q with file logging disabled)", cfg.Format)
	}

	loggerOptions := []zap.Option{zap.AddCaller()}
	if isDevelopment {
		loggerOptions = append(loggerOptions, zap.Development(), zap.AddStacktrace(zapcore.WarnLevel))
	} else {
		loggerOptions = append(loggerOptions, zap.AddStacktrace(zapcore.ErrorLevel))
	}

	logger := zap.New(zapcore.NewTee(cores...), loggerOptions...)

	logger.Debug("Zap logger constructed",
		zap.String("final_level", level.String()),
		zap.String("console_format", format),
		zap.Bool("file_logging_enabled", cfg.FileLoggingEnabled),
		zap.String("file_path", filepath.Join(cfg.Directory, cfg.Filename)),
		zap.Bool("development_mode", isDevelopment),
	)

	return logger, nil
}

func buildCores(cfg config.LogConfig, format string, level zapcore.Level, stdout, stderr io.Writer) ([]zapcore.Core, error) {
	var cores []zapcore.Core

	switch format {
	case FormatConsole, FormatJSON:
		encoder := buildEncoder(format == FormatConsole)
		belowError := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= level && lvl < zapcore.ErrorLevel
		})
		errorAndAbove := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= level && lvl >= zapcore.ErrorLevel
		})
		cores = append(cores,
			zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(stdout)), belowError),
			zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(stderr)), errorAndAbove),
		)
	case FormatNone:
	default:
		return nil, fmt.Errorf("unsupported log format '%s'", cfg.Format)
	}

	if cfg.FileLoggingEnabled {
		if err := os.MkdirAll(cfg.Directory, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory '%s': %w", cfg.Directory, err)
		}

		ljack := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Directory, cfg.Filename),
			MaxSize:    cfg.MaxSize,    // megabytes
			MaxBackups: cfg.MaxBackups, // files
			MaxAge:     cfg.MaxAge,     // days
			Compress:   cfg.Compress,
		}
		cores = append(cores, zapcore.NewCore(buildEncoder(false), zapcore.AddSync(ljack), level))
	}

	return cores, nil
}

func parseLevel(levelStr string) (zapcore.Level, error) {
	var level zapcore.Level
	err := level.UnmarshalText([]byte(strings.ToLower(levelStr)))
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level '%s'", levelStr)
	}
	return level, nil
}

func buildEncoder(useConsoleStyle bool) zapcore.Encoder {
	var encoderConfig zapcore.EncoderConfig
	if useConsoleStyle {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(encoderConfig)
	}
	encoderConfig = zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(encoderConfig)
}
