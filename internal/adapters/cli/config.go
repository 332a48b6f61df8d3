package cli

import (
	"fmt"
	"io"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factoryplanner-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
		Long: `Inspect factory planner configuration.

Configuration is loaded from multiple sources with priority:
1. Environment variables (FP_* prefix, plus DATABASE_URL)
2. Config file (config.yaml)
3. Default values

Example:
  factoryplanner config show`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			displayConfig(cmd.OutOrStdout(), cfg)
			return nil
		},
	}
}

func displayConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Factory Planner Configuration")
	fmt.Fprintln(w, "=============================")

	fmt.Fprintln(w, "\nPlanner:")
	fmt.Fprintf(w, "  Default Plan:     %s\n", cfg.Planner.DefaultPlan)
	fmt.Fprintf(w, "  Delete Policy:    %s\n", cfg.Planner.FactoryDeletePolicy)
	fmt.Fprintf(w, "  ID Strategy:      %s\n", cfg.Planner.IDStrategy)
	fmt.Fprintf(w, "  Autosave:         %t\n", cfg.Planner.AutosaveEnabled())
	if cfg.Planner.CatalogPath != "" {
		fmt.Fprintf(w, "  Catalog Overlay:  %s\n", cfg.Planner.CatalogPath)
	} else {
		fmt.Fprintf(w, "  Catalog Overlay:  (built-in only)\n")
	}

	fmt.Fprintln(w, "\nDatabase:")
	fmt.Fprintf(w, "  Type:             %s\n", cfg.Database.Type)
	switch {
	case cfg.Database.URL != "":
		fmt.Fprintf(w, "  URL:              %s\n", maskPassword(cfg.Database.URL))
	case cfg.Database.Type == "sqlite":
		fmt.Fprintf(w, "  Path:             %s\n", cfg.Database.Path)
	default:
		fmt.Fprintf(w, "  Host:             %s\n", cfg.Database.Host)
		fmt.Fprintf(w, "  Port:             %d\n", cfg.Database.Port)
		fmt.Fprintf(w, "  Database:         %s\n", cfg.Database.Name)
		fmt.Fprintf(w, "  User:             %s\n", cfg.Database.User)
	}

	fmt.Fprintln(w, "\nMetrics:")
	fmt.Fprintf(w, "  Enabled:          %t\n", cfg.Metrics.Enabled)
	fmt.Fprintf(w, "  Endpoint:         %s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)

	fmt.Fprintln(w, "\nLogging:")
	fmt.Fprintf(w, "  Level:            %s\n", cfg.Logging.Level)
	fmt.Fprintf(w, "  Format:           %s\n", cfg.Logging.Format)
	fmt.Fprintf(w, "  Output:           %s\n", cfg.Logging.Output)
}

// maskPassword hides the password component of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
