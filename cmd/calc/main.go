package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calc/repl"
)

// Set via -ldflags at build time.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "calc [expression...]",
	Short: "Evaluate arithmetic expressions",
	Long: `calc evaluates arithmetic expressions with + - * / ^, parentheses, and
variables. Each argument is handled as one input line; with no arguments,
lines are read from standard input until EOF or /exit.

Arguments starting with - look like flags, so put them after --:

	calc -- "-2 * 3"`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Version = version
	rootCmd.Flags().String("config", "", "TOML config file (env CALC_CONFIG)")
	rootCmd.Flags().Uint("prec", 0, "precision of calculations in bits (default from config, 64)")
	rootCmd.Flags().String("vars", "", "YAML file of variables to load first")
	rootCmd.Flags().String("log-level", "", "log level: debug, info, warn, error (env CALC_LOG_LEVEL)")
	rootCmd.Flags().Bool("no-color", false, "disable coloured diagnostics")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	path := os.Getenv("CALC_CONFIG")
	if v, _ := cmd.Flags().GetString("config"); v != "" {
		path = v
	}
	cfg, err := repl.LoadConfig(path)
	if err != nil {
		return err
	}
	if v := os.Getenv("CALC_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := cmd.Flags().GetUint("prec"); v != 0 {
		cfg.Precision = v
	}
	if v, _ := cmd.Flags().GetString("vars"); v != "" {
		cfg.Vars = v
	}
	if v, _ := cmd.Flags().GetBool("no-color"); v {
		cfg.Color = false
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Str("service", "calc").Logger().
		Level(cfg.Level())
	logger.Debug().Str("version", version).Uint("prec", cfg.Precision).Msg("starting")

	s := repl.NewSession(cfg.Options(cmd.OutOrStdout(), logger))
	if cfg.Vars != "" {
		v, err := repl.ReadVarsFile(cfg.Vars)
		if err != nil {
			return fmt.Errorf("loading variables: %w", err)
		}
		s.Load(v)
		logger.Info().Str("file", cfg.Vars).Int("count", len(v)).Msg("loaded variables")
	}

	if len(args) > 0 {
		for _, a := range args {
			if s.Handle(a) == repl.Exit {
				break
			}
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := s.Run(ctx, cmd.InOrStdin()); err != nil && ctx.Err() == nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}
