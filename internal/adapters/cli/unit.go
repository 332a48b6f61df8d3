package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factoryplanner-go/internal/application/planning/commands"
	"github.com/andrescamacho/factoryplanner-go/internal/application/planning/queries"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/planner"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/production"
)

// NewUnitCommand creates the unit command with subcommands
func NewUnitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unit",
		Short: "Manage production units (recipe lines and blueprints)",
		Long: `Manage production units inside a factory. A recipe line runs one recipe on
one or more machine groups; a blueprint bundles several recipe lines.

Machine groups are written COUNT[@OVERCLOCK][:BOOSTERS], for example 4@100,
2@150:1 or 6.

Examples:
  factoryplanner unit add-line <factory-id> --recipe iron_plate --groups 4@100
  factoryplanner unit add-blueprint <factory-id> --file rods.json
  factoryplanner unit set-groups <factory-id> <unit-id> --groups 2@250:1
  factoryplanner unit export <factory-id> <unit-id> --file unit.json`,
	}

	cmd.AddCommand(newUnitAddLineCommand())
	cmd.AddCommand(newUnitAddBlueprintCommand())
	cmd.AddCommand(newUnitRemoveCommand())
	cmd.AddCommand(newUnitSetGroupsCommand())
	cmd.AddCommand(newUnitExportCommand())
	cmd.AddCommand(newUnitImportCommand())

	return cmd
}

func newUnitAddLineCommand() *cobra.Command {
	var (
		name        string
		description string
		recipe      string
		groups      []string
	)

	cmd := &cobra.Command{
		Use:   "add-line <factory-id>",
		Short: "Add a recipe line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			machineGroups, err := parseMachineGroups(groups)
			if err != nil {
				return err
			}
			if name == "" {
				name = recipe
			}
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				result, err := rt.Mutate(ctx, &commands.AddProductionUnitCommand{
					FactoryID: args[0],
					Definition: production.RecipeLineDefinition{
						Name:          name,
						Description:   description,
						Recipe:        catalog.RecipeID(recipe),
						MachineGroups: machineGroups,
					},
				})
				if err != nil {
					return err
				}
				return printUnit(cmd, "Added", result.(*commands.UnitResponse).Unit)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Line name (default: recipe id)")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&recipe, "recipe", "", "Recipe id (required)")
	cmd.Flags().StringSliceVar(&groups, "groups", []string{"1"}, "Machine groups COUNT[@OVERCLOCK][:BOOSTERS]")
	cmd.MarkFlagRequired("recipe")

	return cmd
}

func newUnitAddBlueprintCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "add-blueprint <factory-id>",
		Short: "Add a blueprint from a JSON definition",
		Long: `Add a blueprint unit. The definition file holds
{"name": ..., "description": ..., "lines": [{"name", "recipe", "machine_groups"}]}.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := readBlueprintDefinition(cmd, file)
			if err != nil {
				return err
			}
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				result, err := rt.Mutate(ctx, &commands.AddProductionUnitCommand{
					FactoryID:  args[0],
					Definition: def,
				})
				if err != nil {
					return err
				}
				return printUnit(cmd, "Added", result.(*commands.UnitResponse).Unit)
			})
		},
	}

	cmd.Flags().StringVar(&file, "file", "-", "Definition file, or - for stdin")

	return cmd
}

func newUnitRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <factory-id> <unit-id>",
		Short: "Remove a production unit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				if _, err := rt.Mutate(ctx, &commands.RemoveProductionUnitCommand{FactoryID: args[0], UnitID: args[1]}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed unit %s\n", args[1])
				return nil
			})
		},
	}
}

func newUnitSetGroupsCommand() *cobra.Command {
	var (
		lineID string
		groups []string
	)

	cmd := &cobra.Command{
		Use:   "set-groups <factory-id> <unit-id>",
		Short: "Replace the machine groups of a recipe line",
		Long: `Replace the machine groups of a recipe line. For a line inside a blueprint,
pass the blueprint as <unit-id> and the nested line with --line.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			machineGroups, err := parseMachineGroups(groups)
			if err != nil {
				return err
			}
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				result, err := rt.Mutate(ctx, &commands.SetMachineGroupsCommand{
					FactoryID:     args[0],
					UnitID:        args[1],
					LineID:        lineID,
					MachineGroups: machineGroups,
				})
				if err != nil {
					return err
				}
				return printUnit(cmd, "Updated", result.(*commands.UnitResponse).Unit)
			})
		},
	}

	cmd.Flags().StringVar(&lineID, "line", "", "Nested line id when the unit is a blueprint")
	cmd.Flags().StringSliceVar(&groups, "groups", nil, "Machine groups COUNT[@OVERCLOCK][:BOOSTERS] (required)")
	cmd.MarkFlagRequired("groups")

	return cmd
}

func newUnitExportCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "export <factory-id> <unit-id>",
		Short: "Write a unit in the transfer format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				result, err := rt.Query(ctx, &queries.ExportUnitQuery{FactoryID: args[0], UnitID: args[1]})
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

func newUnitImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <factory-id> <file|->",
		Short: "Add a unit from a transfer document with fresh ids",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[1])
			if err != nil {
				return err
			}
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				result, err := rt.Mutate(ctx, &commands.ImportUnitCommand{FactoryID: args[0], Data: data})
				if err != nil {
					return err
				}
				return printUnit(cmd, "Imported", result.(*commands.UnitResponse).Unit)
			})
		},
	}
}

func printUnit(cmd *cobra.Command, verb string, u planner.UnitResponse) error {
	return render(cmd.OutOrStdout(), u, func(w io.Writer) {
		fmt.Fprintf(w, "%s %s %s (%s): %d machines, %s\n", verb, u.Kind, u.Name, u.ID, u.MachineCount, formatMW(u.PowerConsumption))
	})
}
