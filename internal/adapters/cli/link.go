package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factoryplanner-go/internal/application/planning/commands"
	"github.com/andrescamacho/factoryplanner-go/internal/application/planning/queries"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/logistics"
)

// NewLinkCommand creates the link command with subcommands
func NewLinkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Manage logistics links between factories",
		Long: `Manage logistics links. A link moves one or more items from a source
factory to a destination factory at fixed rates per minute. The transport is
descriptive only and never changes the computed flows.

Examples:
  factoryplanner link create --from <id> --to <id> --flow iron_plate=30 --flow iron_rod=15
  factoryplanner link create --from <id> --to <id> --flow coal=120 --transport train --transport-name "Coal Run"
  factoryplanner link list --factory <id>
  factoryplanner link delete <link-id>`,
	}

	cmd.AddCommand(newLinkCreateCommand())
	cmd.AddCommand(newLinkUpdateCommand())
	cmd.AddCommand(newLinkDeleteCommand())
	cmd.AddCommand(newLinkListCommand())

	return cmd
}

// linkFlags are shared by create and update
type linkFlags struct {
	from          string
	to            string
	flows         []string
	transport     string
	transportName string
}

func (f *linkFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "Source factory id (required)")
	cmd.Flags().StringVar(&f.to, "to", "", "Destination factory id (required)")
	cmd.Flags().StringArrayVar(&f.flows, "flow", nil, "Item flow ITEM=RATE, repeatable (required)")
	cmd.Flags().StringVar(&f.transport, "transport", "bus", "Transport: bus, train, truck or drone")
	cmd.Flags().StringVar(&f.transportName, "transport-name", "", "Label for the transport")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	cmd.MarkFlagRequired("flow")
}

func (f *linkFlags) definition() (logistics.LinkDefinition, error) {
	flows, err := parseFlows(f.flows)
	if err != nil {
		return logistics.LinkDefinition{}, err
	}
	transport, err := parseTransport(f.transport, f.transportName)
	if err != nil {
		return logistics.LinkDefinition{}, err
	}
	return logistics.LinkDefinition{
		SourceFactoryID:      f.from,
		DestinationFactoryID: f.to,
		Flows:                flows,
		Transport:            transport,
	}, nil
}

func newLinkCreateCommand() *cobra.Command {
	var flags linkFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := flags.definition()
			if err != nil {
				return err
			}
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				result, err := rt.Mutate(ctx, &commands.CreateLinkCommand{Definition: def})
				if err != nil {
					return err
				}
				l := result.(*commands.LinkResponse).Link
				return render(cmd.OutOrStdout(), l, func(w io.Writer) {
					fmt.Fprintf(w, "Created link %s: %s -> %s (%s/min)\n", l.ID, l.SourceFactoryID, l.DestinationFactoryID, formatRate(l.TotalFlowRate))
				})
			})
		},
	}

	flags.register(cmd)

	return cmd
}

func newLinkUpdateCommand() *cobra.Command {
	var flags linkFlags

	cmd := &cobra.Command{
		Use:   "update <link-id>",
		Short: "Replace a link's endpoints, flows and transport",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := flags.definition()
			if err != nil {
				return err
			}
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				result, err := rt.Mutate(ctx, &commands.UpdateLinkCommand{LinkID: args[0], Definition: def})
				if err != nil {
					return err
				}
				l := result.(*commands.LinkResponse).Link
				return render(cmd.OutOrStdout(), l, func(w io.Writer) {
					fmt.Fprintf(w, "Updated link %s: %s -> %s (%s/min)\n", l.ID, l.SourceFactoryID, l.DestinationFactoryID, formatRate(l.TotalFlowRate))
				})
			})
		},
	}

	flags.register(cmd)

	return cmd
}

func newLinkDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <link-id>",
		Short: "Delete a link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				if _, err := rt.Mutate(ctx, &commands.DeleteLinkCommand{LinkID: args[0]}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted link %s\n", args[0])
				return nil
			})
		},
	}
}

func newLinkListCommand() *cobra.Command {
	var factoryID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List links, optionally those touching one factory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				result, err := rt.Query(ctx, &queries.ListLinksQuery{FactoryID: factoryID})
				if err != nil {
					return err
				}
				resp := result.(*queries.ListLinksResponse)
				return render(cmd.OutOrStdout(), resp.Links, func(w io.Writer) {
					displayLinks(w, resp.Links)
				})
			})
		},
	}

	cmd.Flags().StringVar(&factoryID, "factory", "", "Only links whose source or destination is this factory")

	return cmd
}
