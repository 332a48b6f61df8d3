package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
	"github.com/andrescamacho/factoryplanner-go/internal/infrastructure/config"
)

var (
	// Global flags
	configPath   string
	planOverride string
	outputFormat string
	verbose      bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "factoryplanner",
		Short: "Factory planner - model production chains, power and logistics",
		Long: `Factory planner keeps a plan of factories, each with production units, raw
inputs and power generators, plus the logistics links that move items between
them. Every change is validated and the plan is saved after each mutation.

Examples:
  factoryplanner factory create --name "Iron Works"
  factoryplanner unit add-line <factory-id> --recipe iron_plate --groups 4@100
  factoryplanner extractor add <factory-id> --type miner_mk2 --item iron_ore --purity pure
  factoryplanner link create --from <id> --to <id> --flow iron_plate=30
  factoryplanner plan balance --transfer-adjusted
  factoryplanner plan export --file base.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ., ./configs, /etc/factoryplanner)")
	rootCmd.PersistentFlags().StringVar(&planOverride, "plan", "",
		"Plan name to work on (default: planner.default_plan)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text",
		"Output format: text or json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewPlanCommand())
	rootCmd.AddCommand(NewFactoryCommand())
	rootCmd.AddCommand(NewUnitCommand())
	rootCmd.AddCommand(NewExtractorCommand())
	rootCmd.AddCommand(NewGeneratorCommand())
	rootCmd.AddCommand(NewLinkCommand())
	rootCmd.AddCommand(NewTemplateCommand())
	rootCmd.AddCommand(NewServeMetricsCommand())

	return rootCmd
}

// Execute runs the root command and exits with a code derived from the error kind
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(ExitCode(err))
	}
}

// ExitCode maps domain error kinds onto process exit codes
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, shared.ErrSerialization):
		return 5
	case errors.Is(err, shared.ErrInvalidConfiguration):
		return 2
	case errors.Is(err, shared.ErrNotFound):
		return 3
	case errors.Is(err, shared.ErrConflict):
		return 4
	default:
		return 1
	}
}

// loadConfig reads configuration and applies global flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// withRuntime runs fn against a freshly wired runtime, autosaving afterwards
func withRuntime(cmd *cobra.Command, fn func(ctx context.Context, rt *Runtime) error) error {
	if outputFormat != "text" && outputFormat != "json" {
		return shared.NewInvalidConfigurationError("output", fmt.Sprintf("unsupported format %q", outputFormat))
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rt, err := NewRuntime(ctx, cfg, planOverride)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := fn(ctx, rt); err != nil {
		return err
	}
	return rt.Finish(ctx)
}
