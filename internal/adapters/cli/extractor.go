package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factoryplanner-go/internal/application/planning/commands"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/extraction"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/formula"
)

// NewExtractorCommand creates the extractor command with subcommands
func NewExtractorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extractor",
		Short: "Manage raw inputs (extractors and resource wells)",
		Long: `Manage the raw inputs of a factory: single extractors on a resource node,
or resource wells made of a pressurizer and its satellite nodes.

Examples:
  factoryplanner extractor add <factory-id> --type miner_mk2 --item iron_ore --purity pure
  factoryplanner extractor add <factory-id> --type oil_extractor --item crude_oil --purity normal --overclock 150
  factoryplanner extractor add-well <factory-id> --item nitrogen_gas --nodes pure,normal,impure
  factoryplanner extractor remove <factory-id> <raw-input-id>`,
	}

	cmd.AddCommand(newExtractorAddCommand())
	cmd.AddCommand(newExtractorAddWellCommand())
	cmd.AddCommand(newExtractorRemoveCommand())

	return cmd
}

func newExtractorAddCommand() *cobra.Command {
	var (
		extractorType string
		item          string
		purity        string
		overclock     float64
	)

	cmd := &cobra.Command{
		Use:   "add <factory-id>",
		Short: "Add a single extractor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := formula.ParsePurity(purity)
			if err != nil {
				return err
			}
			def := extraction.ExtractorDefinition{
				Extractor: catalog.ExtractorID(extractorType),
				Item:      catalog.Item(item),
				Purity:    p,
			}
			if cmd.Flags().Changed("overclock") {
				def.OverclockPercent = &overclock
			}
			return addRawInput(cmd, args[0], def)
		},
	}

	cmd.Flags().StringVar(&extractorType, "type", "", "Extractor type, e.g. miner_mk2 (required)")
	cmd.Flags().StringVar(&item, "item", "", "Extracted item (required)")
	cmd.Flags().StringVar(&purity, "purity", string(formula.PurityNormal), "Node purity: impure, normal or pure")
	cmd.Flags().Float64Var(&overclock, "overclock", 100, "Overclock percent")
	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("item")

	return cmd
}

func newExtractorAddWellCommand() *cobra.Command {
	var (
		item      string
		overclock float64
		nodes     []string
	)

	cmd := &cobra.Command{
		Use:   "add-well <factory-id>",
		Short: "Add a resource well pressurizer with its nodes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			purities, err := parsePurities(nodes)
			if err != nil {
				return err
			}
			wellNodes := make([]extraction.WellNode, 0, len(purities))
			for _, p := range purities {
				wellNodes = append(wellNodes, extraction.WellNode{Purity: p})
			}
			return addRawInput(cmd, args[0], extraction.ResourceWellDefinition{
				Item:                        catalog.Item(item),
				PressurizerOverclockPercent: overclock,
				Nodes:                       wellNodes,
			})
		},
	}

	cmd.Flags().StringVar(&item, "item", "", "Extracted item (required)")
	cmd.Flags().Float64Var(&overclock, "overclock", 100, "Pressurizer overclock percent")
	cmd.Flags().StringSliceVar(&nodes, "nodes", nil, "Node purities, e.g. pure,normal,impure (required)")
	cmd.MarkFlagRequired("item")
	cmd.MarkFlagRequired("nodes")

	return cmd
}

func addRawInput(cmd *cobra.Command, factoryID string, def extraction.Definition) error {
	return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
		result, err := rt.Mutate(ctx, &commands.AddRawInputCommand{FactoryID: factoryID, Definition: def})
		if err != nil {
			return err
		}
		r := result.(*commands.RawInputResponse).RawInput
		return render(cmd.OutOrStdout(), r, func(w io.Writer) {
			fmt.Fprintf(w, "Added %s %s (%s): %s/min, %s\n", r.Kind, r.Item, r.ID, formatRate(r.OutputRate), formatMW(r.PowerConsumption))
		})
	})
}

func newExtractorRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <factory-id> <raw-input-id>",
		Short: "Remove a raw input",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				if _, err := rt.Mutate(ctx, &commands.RemoveRawInputCommand{FactoryID: args[0], RawInputID: args[1]}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed raw input %s\n", args[1])
				return nil
			})
		},
	}
}
