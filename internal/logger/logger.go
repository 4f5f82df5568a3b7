package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const EnvVar = "PORTFOLIORISK_ENV"

// New builds the run logger. Output goes to stderr so it never mixes with
// the prompts and results on stdout.
func New(level zapcore.Level) *zap.SugaredLogger {
	var (
		cfg  zap.Config
		opts = []zap.Option{
			zap.AddStacktrace(zap.ErrorLevel),
		}
	)

	if strings.ToLower(os.Getenv(EnvVar)) == "dev" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		opts = append(opts, zap.Fields(zap.String(EnvVar, os.Getenv(EnvVar))))
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build(opts...)
	if err != nil {
		panic(fmt.Errorf("failed to initialize logger: %w", err))
	}

	return logger.Sugar()
}

type contextKey struct{}

var ContextKey = contextKey{}

func WithLogger(ctx context.Context, log *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, ContextKey, log)
}

func FromContext(ctx context.Context) *zap.SugaredLogger {
	logger, ok := ctx.Value(ContextKey).(*zap.SugaredLogger)
	if !ok {
		logger = zap.NewNop().Sugar()
	}
	return logger
}
