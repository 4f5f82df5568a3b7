package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"portfoliorisk/internal/config"
	"portfoliorisk/internal/domain"
	"portfoliorisk/internal/logger"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

func NewRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	cfg := config.Default()
	provider := string(cfg.Provider)

	root := &cobra.Command{
		Use:           "portfoliorisk",
		Short:         "Annualized return and volatility of a weighted stock portfolio",
		Long:          "Prompts for tickers and percentage weights, downloads one year of daily closes and reports the portfolio's annualized return and volatility.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(c *cobra.Command, args []string) error {
			cfg.Provider = config.Provider(provider)
			return run(c.Context(), cfg, in, out)
		},
	}

	flags := root.Flags()
	flags.StringVar(&provider, "provider", provider, "price source: yahoo, alpaca or csv")
	flags.StringVar(&cfg.PricesFile, "prices-file", "", "csv of date,symbol,price rows, used with --provider csv")
	flags.StringVar(&cfg.EnvFile, "env-file", cfg.EnvFile, "file with provider credentials")
	flags.BoolVar(&cfg.AllowEmptyTickers, "allow-empty-tickers", false, "keep blank tickers from extra commas instead of asking again")
	flags.StringVar(&cfg.AbortInput, "abort-input", cfg.AbortInput, "entering this at any prompt stops the run; empty disables it")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "debug logging on stderr")

	return root
}

func run(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer) error {
	if err := cfg.LoadEnv(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := zapcore.WarnLevel
	if cfg.Verbose {
		level = zapcore.DebugLevel
	}
	log := logger.New(level).With("runID", uuid.New().String())
	defer log.Sync()

	profile, endProfile := domain.NewProfile()
	ctx = logger.WithLogger(ctx, log)
	ctx = domain.ContextWithProfile(ctx, profile)

	log.Debugw("starting run", "provider", cfg.Provider, "allowEmptyTickers", cfg.AllowEmptyTickers)

	analysisApp, err := InitializeDependencies(cfg, in, out)
	if err != nil {
		return err
	}

	err = analysisApp.Run(ctx)
	endProfile()
	if b, jsonErr := profile.ToJsonBytes(); jsonErr == nil {
		log.Debugw("run profile", "profile", string(b))
	}
	if err != nil {
		log.Debugw("run failed", "error", err)
	}

	return err
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := NewRootCmd(os.Stdin, os.Stdout).ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	// download failures were already explained on stdout
	if !errors.Is(err, domain.ErrPriceRetrieval) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return 1
}
