package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/andrescamacho/factoryplanner-go/internal/adapters/metrics"
)

// NewServeMetricsCommand creates the serve-metrics command
func NewServeMetricsCommand() *cobra.Command {
	var refresh time.Duration

	cmd := &cobra.Command{
		Use:   "serve-metrics",
		Short: "Expose plan gauges over HTTP for Prometheus",
		Long: `Serve the plan's power, machine and item balance gauges on the configured
metrics endpoint. The saved plan is reloaded every --refresh so the gauges
follow changes made by other invocations. Stops on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cfg.Metrics.Enabled = true

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rt, err := NewRuntime(ctx, cfg, planOverride)
			if err != nil {
				return err
			}
			defer rt.Close()

			server, err := metrics.NewServer(cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path, rt.Logger)
			if err != nil {
				return err
			}

			if refresh > 0 {
				go func() {
					ticker := time.NewTicker(refresh)
					defer ticker.Stop()
					for {
						select {
						case <-ctx.Done():
							return
						case <-ticker.C:
							if err := rt.loadPlan(ctx, rt.Session.PlanName()); err != nil {
								rt.Logger.Warn("plan refresh failed", zap.Error(err))
							}
						}
					}
				}()
			}

			return server.Run(ctx)
		},
	}

	cmd.Flags().DurationVar(&refresh, "refresh", 30*time.Second, "Plan reload interval, 0 to disable")

	return cmd
}
