package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factoryplanner-go/internal/application/planning/commands"
	"github.com/andrescamacho/factoryplanner-go/internal/application/planning/queries"
)

// NewPlanCommand creates the plan command with subcommands
func NewPlanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Whole-plan views, documents and saved plans",
		Long: `Inspect the current plan, move it in and out of JSON documents and manage
named snapshots in the database.

Examples:
  factoryplanner plan show
  factoryplanner plan balance --factory <factory-id> --transfer-adjusted
  factoryplanner plan power
  factoryplanner plan export --file base.json
  factoryplanner plan import base.json
  factoryplanner plan save before-rework
  factoryplanner plan list`,
	}

	cmd.AddCommand(newPlanShowCommand())
	cmd.AddCommand(newPlanBalanceCommand())
	cmd.AddCommand(newPlanPowerCommand())
	cmd.AddCommand(newPlanExportCommand())
	cmd.AddCommand(newPlanImportCommand())
	cmd.AddCommand(newPlanSaveCommand())
	cmd.AddCommand(newPlanLoadCommand())
	cmd.AddCommand(newPlanListCommand())
	cmd.AddCommand(newPlanDeleteCommand())

	return cmd
}

func newPlanShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show factories, links and the global item balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				result, err := rt.Query(ctx, &queries.GetPlanQuery{})
				if err != nil {
					return err
				}
				resp := result.(*queries.GetPlanResponse)
				return render(cmd.OutOrStdout(), resp.Plan, func(w io.Writer) {
					displayPlan(w, resp.PlanName, resp.Plan)
				})
			})
		},
	}
}

func newPlanBalanceCommand() *cobra.Command {
	var (
		factoryID        string
		transferAdjusted bool
	)

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show net item rates for the plan or one factory",
		Long: `Show net item rates per minute. Positive rates are surpluses and negative
rates are deficits.

Without --factory the global balance is shown, where logistics links cancel out.
With --transfer-adjusted a factory's balance also counts what its links carry
in and out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				result, err := rt.Query(ctx, &queries.GetItemBalanceQuery{
					FactoryID:        factoryID,
					TransferAdjusted: transferAdjusted,
				})
				if err != nil {
					return err
				}
				resp := result.(*queries.GetItemBalanceResponse)
				return render(cmd.OutOrStdout(), resp, func(w io.Writer) {
					title := "GLOBAL ITEM BALANCE"
					if resp.Scope != "global" {
						title = fmt.Sprintf("ITEM BALANCE %s", resp.Scope)
						if transferAdjusted {
							title += " (transfer adjusted)"
						}
					}
					displayBalance(w, title, resp.Balance)
				})
			})
		},
	}

	cmd.Flags().StringVar(&factoryID, "factory", "", "Factory id (default: whole plan)")
	cmd.Flags().BoolVar(&transferAdjusted, "transfer-adjusted", false, "Include logistics flows in a factory balance")

	return cmd
}

func newPlanPowerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "power",
		Short: "Show power generation and consumption",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				result, err := rt.Query(ctx, &queries.GetPowerStatsQuery{})
				if err != nil {
					return err
				}
				resp := result.(*queries.GetPowerStatsResponse)
				return render(cmd.OutOrStdout(), resp, func(w io.Writer) {
					displayPower(w, resp)
				})
			})
		},
	}
}

func newPlanExportCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the plan as a JSON document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				result, err := rt.Query(ctx, &queries.ExportPlanQuery{})
				if err != nil {
					return err
				}
				return writeOutput(cmd, file, result.(*queries.ExportResponse).Data)
			})
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Destination file (default: stdout)")

	return cmd
}

func newPlanImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace the plan with a JSON document",
		Long: `Replace the current plan with a plan document. The document is fully
validated first; on any error the current plan is left untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				result, err := rt.Mutate(ctx, &commands.ImportPlanCommand{Data: data})
				if err != nil {
					return err
				}
				s := result.(*commands.PlanResponse).Summary
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d factories, %d links, %d templates\n",
					s.FactoryCount, s.LinkCount, s.TemplateCount)
				return nil
			})
		},
	}
}

func newPlanSaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save [name]",
		Short: "Save the plan, or a snapshot of it under another name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			}
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				current := rt.Session.PlanName()
				result, err := rt.Query(ctx, &commands.SavePlanCommand{Name: name})
				rt.Session.SetPlanName(current)
				if err != nil {
					return err
				}
				s := result.(*commands.PlanResponse).Summary
				fmt.Fprintf(cmd.OutOrStdout(), "Saved plan %s (%d factories)\n", s.Name, s.FactoryCount)
				return nil
			})
		},
	}
}

func newPlanLoadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "load <name>",
		Short: "Replace the plan with a saved snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				current := rt.Session.PlanName()
				result, err := rt.Mutate(ctx, &commands.LoadPlanCommand{Name: args[0]})
				rt.Session.SetPlanName(current)
				if err != nil {
					return err
				}
				s := result.(*commands.PlanResponse).Summary
				fmt.Fprintf(cmd.OutOrStdout(), "Loaded snapshot %s into plan %s (%d factories)\n", args[0], current, s.FactoryCount)
				return nil
			})
		},
	}
}

func newPlanListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				result, err := rt.Query(ctx, &queries.ListPlansQuery{})
				if err != nil {
					return err
				}
				resp := result.(*queries.ListPlansResponse)
				return render(cmd.OutOrStdout(), resp.Plans, func(w io.Writer) {
					displayPlans(w, rt.Session.PlanName(), resp.Plans)
				})
			})
		},
	}
}

func newPlanDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				if _, err := rt.Query(ctx, &commands.DeletePlanCommand{Name: args[0]}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted plan %s\n", args[0])
				return nil
			})
		},
	}
}
