package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factoryplanner-go/internal/application/planning/commands"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/formula"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/power"
)

// NewGeneratorCommand creates the generator command with subcommands
func NewGeneratorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generator",
		Short: "Manage power generators",
		Long: `Manage the power generators of a factory. Generator groups are written
COUNT[@OVERCLOCK].

Examples:
  factoryplanner generator add <factory-id> --type coal --fuel coal --groups 8
  factoryplanner generator add <factory-id> --type geothermal --groups 2
  factoryplanner generator remove <factory-id> <generator-id>`,
	}

	cmd.AddCommand(newGeneratorAddCommand())
	cmd.AddCommand(newGeneratorRemoveCommand())

	return cmd
}

func newGeneratorAddCommand() *cobra.Command {
	var (
		generatorType string
		fuel          string
		groups        []string
	)

	cmd := &cobra.Command{
		Use:   "add <factory-id>",
		Short: "Add a generator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			generatorGroups, err := parseGeneratorGroups(groups)
			if err != nil {
				return err
			}
			def := power.GeneratorDefinition{
				GeneratorType: catalog.GeneratorTypeID(generatorType),
				Groups:        generatorGroups,
			}
			if fuel != "" {
				def.FuelType, err = formula.ParseFuelType(fuel)
				if err != nil {
					return err
				}
			}
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				result, err := rt.Mutate(ctx, &commands.AddGeneratorCommand{FactoryID: args[0], Definition: def})
				if err != nil {
					return err
				}
				g := result.(*commands.GeneratorResponse).Generator
				return render(cmd.OutOrStdout(), g, func(w io.Writer) {
					fmt.Fprintf(w, "Added %d %s generator(s) (%s): %s\n", g.GeneratorCount, g.GeneratorType, g.ID, formatMW(g.PowerGeneration))
				})
			})
		},
	}

	cmd.Flags().StringVar(&generatorType, "type", "", "Generator type: biomass, coal, fuel, nuclear, geothermal (required)")
	cmd.Flags().StringVar(&fuel, "fuel", "", "Fuel type for fuel-burning generators")
	cmd.Flags().StringSliceVar(&groups, "groups", []string{"1"}, "Generator groups COUNT[@OVERCLOCK]")
	cmd.MarkFlagRequired("type")

	return cmd
}

func newGeneratorRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <factory-id> <generator-id>",
		Short: "Remove a generator",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				if _, err := rt.Mutate(ctx, &commands.RemoveGeneratorCommand{FactoryID: args[0], GeneratorID: args[1]}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed generator %s\n", args[1])
				return nil
			})
		},
	}
}
