package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factoryplanner-go/internal/application/planning/commands"
	"github.com/andrescamacho/factoryplanner-go/internal/application/planning/queries"
)

// NewFactoryCommand creates the factory command with subcommands
func NewFactoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "factory",
		Short: "Create, inspect and remove factories",
		Long: `Manage factories. A factory groups production units, raw inputs and
power generators and reports their combined power and item balance.

Examples:
  factoryplanner factory create --name "Iron Works" --notes "north cliff"
  factoryplanner factory list
  factoryplanner factory show <factory-id>
  factoryplanner factory delete <factory-id>`,
	}

	cmd.AddCommand(newFactoryCreateCommand())
	cmd.AddCommand(newFactoryUpdateCommand())
	cmd.AddCommand(newFactoryDeleteCommand())
	cmd.AddCommand(newFactoryListCommand())
	cmd.AddCommand(newFactoryShowCommand())

	return cmd
}

func newFactoryCreateCommand() *cobra.Command {
	var name, description, notes string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an empty factory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				result, err := rt.Mutate(ctx, &commands.CreateFactoryCommand{
					Name:        name,
					Description: description,
					Notes:       notes,
				})
				if err != nil {
					return err
				}
				f := result.(*commands.FactoryResponse).Factory
				return render(cmd.OutOrStdout(), f, func(w io.Writer) {
					fmt.Fprintf(w, "Created factory %s (%s)\n", f.Name, f.ID)
				})
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Factory name (required)")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.MarkFlagRequired("name")

	return cmd
}

func newFactoryUpdateCommand() *cobra.Command {
	var name, description, notes string

	cmd := &cobra.Command{
		Use:   "update <factory-id>",
		Short: "Change a factory's name, description or notes",
		Long:  `Change factory metadata. Flags that are not given keep their current value.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				current, err := rt.Query(ctx, &queries.GetFactoryQuery{FactoryID: args[0]})
				if err != nil {
					return err
				}
				f := current.(*queries.GetFactoryResponse).Factory

				update := &commands.UpdateFactoryCommand{
					FactoryID:   f.ID,
					Name:        f.Name,
					Description: f.Description,
					Notes:       f.Notes,
				}
				if cmd.Flags().Changed("name") {
					update.Name = name
				}
				if cmd.Flags().Changed("description") {
					update.Description = description
				}
				if cmd.Flags().Changed("notes") {
					update.Notes = notes
				}

				result, err := rt.Mutate(ctx, update)
				if err != nil {
					return err
				}
				updated := result.(*commands.FactoryResponse).Factory
				return render(cmd.OutOrStdout(), updated, func(w io.Writer) {
					fmt.Fprintf(w, "Updated factory %s (%s)\n", updated.Name, updated.ID)
				})
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&notes, "notes", "", "New notes")

	return cmd
}

func newFactoryDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <factory-id>",
		Short: "Delete a factory",
		Long: `Delete a factory. With planner.factory_delete_policy=reject (the default) a
factory that still has logistics links cannot be deleted; with cascade its
links are removed too.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				result, err := rt.Mutate(ctx, &commands.DeleteFactoryCommand{FactoryID: args[0]})
				if err != nil {
					return err
				}
				resp := result.(*commands.DeleteFactoryResponse)
				return render(cmd.OutOrStdout(), resp, func(w io.Writer) {
					fmt.Fprintf(w, "Deleted factory %s\n", args[0])
					if len(resp.RemovedLinkIDs) > 0 {
						fmt.Fprintf(w, "Removed links: %s\n", strings.Join(resp.RemovedLinkIDs, ", "))
					}
				})
			})
		},
	}
}

func newFactoryListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List factories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				result, err := rt.Query(ctx, &queries.ListFactoriesQuery{})
				if err != nil {
					return err
				}
				resp := result.(*queries.ListFactoriesResponse)
				return render(cmd.OutOrStdout(), resp.Factories, func(w io.Writer) {
					displayFactoryList(w, resp.Factories)
				})
			})
		},
	}
}

func newFactoryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <factory-id>",
		Short: "Show a factory with units, inputs, generators and item balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				result, err := rt.Query(ctx, &queries.GetFactoryQuery{FactoryID: args[0]})
				if err != nil {
					return err
				}
				f := result.(*queries.GetFactoryResponse).Factory
				return render(cmd.OutOrStdout(), f, func(w io.Writer) {
					displayFactory(w, f)
				})
			})
		},
	}
}
