package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/formula"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/logistics"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/power"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/production"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

// parseMachineGroups reads "COUNT[@OVERCLOCK][:BOOSTERS]" entries, e.g. "4@100:0".
// Overclock defaults to 100 and boosters to 0.
func parseMachineGroups(specs []string) ([]production.MachineGroup, error) {
	if len(specs) == 0 {
		return nil, shared.NewInvalidConfigurationError("groups", "at least one machine group is required")
	}

	groups := make([]production.MachineGroup, 0, len(specs))
	for _, spec := range specs {
		rest, boosters, hasBoosters := strings.Cut(spec, ":")
		countStr, overclock, hasOverclock := strings.Cut(rest, "@")

		count, err := strconv.Atoi(countStr)
		if err != nil {
			return nil, shared.NewInvalidConfigurationError("groups", fmt.Sprintf("bad machine count in %q", spec))
		}
		group := production.MachineGroup{MachineCount: count, OverclockPercent: 100}

		if hasOverclock {
			group.OverclockPercent, err = strconv.ParseFloat(overclock, 64)
			if err != nil {
				return nil, shared.NewInvalidConfigurationError("groups", fmt.Sprintf("bad overclock in %q", spec))
			}
		}
		if hasBoosters {
			group.BoosterCount, err = strconv.Atoi(boosters)
			if err != nil {
				return nil, shared.NewInvalidConfigurationError("groups", fmt.Sprintf("bad booster count in %q", spec))
			}
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// parseGeneratorGroups reads "COUNT[@OVERCLOCK]" entries
func parseGeneratorGroups(specs []string) ([]power.GeneratorGroup, error) {
	if len(specs) == 0 {
		return nil, shared.NewInvalidConfigurationError("groups", "at least one generator group is required")
	}

	groups := make([]power.GeneratorGroup, 0, len(specs))
	for _, spec := range specs {
		countStr, overclock, hasOverclock := strings.Cut(spec, "@")
		count, err := strconv.Atoi(countStr)
		if err != nil {
			return nil, shared.NewInvalidConfigurationError("groups", fmt.Sprintf("bad generator count in %q", spec))
		}
		group := power.GeneratorGroup{GeneratorCount: count, OverclockPercent: 100}
		if hasOverclock {
			group.OverclockPercent, err = strconv.ParseFloat(overclock, 64)
			if err != nil {
				return nil, shared.NewInvalidConfigurationError("groups", fmt.Sprintf("bad overclock in %q", spec))
			}
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// parseFlows reads "ITEM=RATE" entries
func parseFlows(specs []string) ([]catalog.ItemRate, error) {
	flows := make([]catalog.ItemRate, 0, len(specs))
	for _, spec := range specs {
		item, rateStr, ok := strings.Cut(spec, "=")
		if !ok || item == "" {
			return nil, shared.NewInvalidConfigurationError("flow", fmt.Sprintf("expected ITEM=RATE, got %q", spec))
		}
		rate, err := strconv.ParseFloat(rateStr, 64)
		if err != nil {
			return nil, shared.NewInvalidConfigurationError("flow", fmt.Sprintf("bad rate in %q", spec))
		}
		flows = append(flows, catalog.ItemRate{Item: catalog.Item(item), Rate: rate})
	}
	return flows, nil
}

// parseTransport builds the transport metadata for a link
func parseTransport(kind, name string) (logistics.Transport, error) {
	switch logistics.TransportKind(strings.ToLower(kind)) {
	case logistics.TransportBus, "":
		return logistics.Bus{Name: name}, nil
	case logistics.TransportTrain:
		return logistics.Train{Name: name}, nil
	case logistics.TransportTruck:
		return logistics.Truck{Name: name}, nil
	case logistics.TransportDrone:
		return logistics.Drone{Name: name}, nil
	default:
		return nil, shared.NewInvalidConfigurationError("transport", fmt.Sprintf("unknown transport %q", kind))
	}
}

// parsePurities reads a comma list of node purities
func parsePurities(specs []string) ([]formula.Purity, error) {
	purities := make([]formula.Purity, 0, len(specs))
	for _, spec := range specs {
		p, err := formula.ParsePurity(spec)
		if err != nil {
			return nil, err
		}
		purities = append(purities, p)
	}
	return purities, nil
}

// readInput reads path, or stdin when path is "-"
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// writeOutput writes data to path, or to the command's output when path is empty
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	return nil
}

// readBlueprintDefinition reads a blueprint definition document
func readBlueprintDefinition(cmd *cobra.Command, path string) (production.BlueprintDefinition, error) {
	var def production.BlueprintDefinition
	data, err := readInput(cmd, path)
	if err != nil {
		return def, err
	}
	if err := json.Unmarshal(data, &def); err != nil {
		return def, shared.NewSerializationError("malformed blueprint definition", err)
	}
	return def, nil
}
