package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factoryplanner-go/internal/application/planning/commands"
	"github.com/andrescamacho/factoryplanner-go/internal/application/planning/queries"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/planner"
)

// NewTemplateCommand creates the template command with subcommands
func NewTemplateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage the blueprint template library",
		Long: `Manage blueprint templates. Templates are immutable: new-version stores an
edited copy and leaves the original in place. Instantiating a template copies
it into a factory with fresh ids, so later library changes never touch units
that were already placed.

publish and fetch move templates between this plan and the shared library in
the database.

Examples:
  factoryplanner template create --file rods.json
  factoryplanner template capture <factory-id> <unit-id> --name "Rod Block"
  factoryplanner template instantiate <template-id> <factory-id>
  factoryplanner template new-version <template-id> --file rods-v2.json
  factoryplanner template list --shared`,
	}

	cmd.AddCommand(newTemplateCreateCommand())
	cmd.AddCommand(newTemplateListCommand())
	cmd.AddCommand(newTemplateNewVersionCommand())
	cmd.AddCommand(newTemplateDeleteCommand())
	cmd.AddCommand(newTemplateInstantiateCommand())
	cmd.AddCommand(newTemplateCaptureCommand())
	cmd.AddCommand(newTemplateExportCommand())
	cmd.AddCommand(newTemplateImportCommand())
	cmd.AddCommand(newTemplatePublishCommand())
	cmd.AddCommand(newTemplateFetchCommand())

	return cmd
}

func printTemplate(cmd *cobra.Command, verb string, t planner.TemplateResponse) error {
	return render(cmd.OutOrStdout(), t, func(w io.Writer) {
		fmt.Fprintf(w, "%s template %s (%s), %d lines\n", verb, t.Name, t.ID, t.LineCount)
	})
}

func newTemplateCreateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a template from a blueprint definition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := readBlueprintDefinition(cmd, file)
			if err != nil {
				return err
			}
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				result, err := rt.Mutate(ctx, &commands.CreateTemplateCommand{Definition: def})
				if err != nil {
					return err
				}
				return printTemplate(cmd, "Created", result.(*commands.TemplateResponse).Template)
			})
		},
	}

	cmd.Flags().StringVar(&file, "file", "-", "Definition file, or - for stdin")

	return cmd
}

func newTemplateListCommand() *cobra.Command {
	var shared bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates in creation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				result, err := rt.Query(ctx, &queries.ListTemplatesQuery{Shared: shared})
				if err != nil {
					return err
				}
				resp := result.(*queries.ListTemplatesResponse)
				return render(cmd.OutOrStdout(), resp.Templates, func(w io.Writer) {
					displayTemplates(w, resp.Templates)
				})
			})
		},
	}

	cmd.Flags().BoolVar(&shared, "shared", false, "List the shared library instead of the plan's")

	return cmd
}

func newTemplateNewVersionCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "new-version <template-id>",
		Short: "Store an edited copy of a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := readBlueprintDefinition(cmd, file)
			if err != nil {
				return err
			}
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				result, err := rt.Mutate(ctx, &commands.SaveTemplateVersionCommand{TemplateID: args[0], Definition: def})
				if err != nil {
					return err
				}
				return printTemplate(cmd, "Created", result.(*commands.TemplateResponse).Template)
			})
		},
	}

	cmd.Flags().StringVar(&file, "file", "-", "Definition file, or - for stdin")

	return cmd
}

func newTemplateDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <template-id>",
		Short: "Delete a template; placed units are unaffected",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				if _, err := rt.Mutate(ctx, &commands.DeleteTemplateCommand{TemplateID: args[0]}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted template %s\n", args[0])
				return nil
			})
		},
	}
}

func newTemplateInstantiateCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "instantiate <template-id> <factory-id>",
		Short: "Place a copy of a template in a factory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				result, err := rt.Mutate(ctx, &commands.InstantiateTemplateCommand{
					TemplateID:   args[0],
					FactoryID:    args[1],
					NameOverride: name,
				})
				if err != nil {
					return err
				}
				return printUnit(cmd, "Placed", result.(*commands.UnitResponse).Unit)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name for the placed unit (default: template name)")

	return cmd
}

func newTemplateCaptureCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "capture <factory-id> <unit-id>",
		Short: "Create a template from a placed unit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				result, err := rt.Mutate(ctx, &commands.CaptureTemplateCommand{FactoryID: args[0], UnitID: args[1], Name: name})
				if err != nil {
					return err
				}
				return printTemplate(cmd, "Captured", result.(*commands.TemplateResponse).Template)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Template name (default: unit name)")

	return cmd
}

func newTemplateExportCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "export <template-id>",
		Short: "Write a template in the transfer format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				result, err := rt.Query(ctx, &queries.ExportTemplateQuery{TemplateID: args[0]})
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

func newTemplateImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Add a template from a transfer document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				result, err := rt.Mutate(ctx, &commands.ImportTemplateCommand{Data: data})
				if err != nil {
					return err
				}
				return printTemplate(cmd, "Imported", result.(*commands.TemplateResponse).Template)
			})
		},
	}
}

func newTemplatePublishCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "publish <template-id>",
		Short: "Copy a template into the shared library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				result, err := rt.Query(ctx, &commands.PublishTemplateCommand{TemplateID: args[0]})
				if err != nil {
					return err
				}
				return printTemplate(cmd, "Published", result.(*commands.TemplateResponse).Template)
			})
		},
	}
}

func newTemplateFetchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <template-id>",
		Short: "Copy a shared template into this plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, func(ctx context.Context, rt *Runtime) error {
				result, err := rt.Mutate(ctx, &commands.FetchTemplateCommand{TemplateID: args[0]})
				if err != nil {
					return err
				}
				return printTemplate(cmd, "Fetched", result.(*commands.TemplateResponse).Template)
			})
		},
	}
}
