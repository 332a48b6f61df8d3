package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/andrescamacho/factoryplanner-go/internal/application/planning/queries"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/planner"
)

const ruler = "─────────────────────────────────────────────────────────────────────────────"

// balanceEpsilon hides rounding noise in printed balances
const balanceEpsilon = 1e-9

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// render writes v as JSON, or calls text for the human format
func render(w io.Writer, v any, text func(io.Writer)) error {
	if outputFormat == "json" {
		return printJSON(w, v)
	}
	text(w)
	return nil
}

func formatRate(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func formatMW(v float64) string {
	return fmt.Sprintf("%.2f MW", v)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// displayBalance prints one signed rate per item, sorted by item
func displayBalance(w io.Writer, title string, rates catalog.Rates) {
	fmt.Fprintf(w, "%s\n", title)
	rates = rates.Compact(balanceEpsilon)
	if len(rates) == 0 {
		fmt.Fprintln(w, "  (balanced, no net flows)")
		return
	}

	t := newTable(w)
	fmt.Fprintln(t, "Item\tRate/min\tStatus")
	for _, item := range rates.Items() {
		qty := rates[item]
		status := "surplus"
		if qty < 0 {
			status = "deficit"
		}
		fmt.Fprintf(t, "%s\t%s\t%s\n", item, formatRate(qty), status)
	}
	t.Flush()
}

// displayFactoryList prints one row per factory
func displayFactoryList(w io.Writer, factories []queries.FactorySummary) {
	if len(factories) == 0 {
		fmt.Fprintln(w, "No factories found")
		return
	}

	t := newTable(w)
	fmt.Fprintln(t, "ID\tName\tUnits\tInputs\tGenerators\tMachines\tPower")
	for _, f := range factories {
		fmt.Fprintf(t, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			f.ID, f.Name, f.UnitCount, f.RawInputCount, f.GeneratorCount, f.TotalMachineCount, formatMW(f.PowerBalance))
	}
	t.Flush()
}

// displayFactory prints the full read model of one factory
func displayFactory(w io.Writer, f planner.FactoryResponse) {
	fmt.Fprintf(w, "FACTORY %s (%s)\n", f.Name, f.ID)
	if f.Description != "" {
		fmt.Fprintf(w, "%s\n", f.Description)
	}
	if f.Notes != "" {
		fmt.Fprintf(w, "Notes: %s\n", f.Notes)
	}
	fmt.Fprintln(w, ruler)
	fmt.Fprintf(w, "Consumption: %s  Generation: %s  Balance: %s  Machines: %d\n",
		formatMW(f.TotalPowerConsumption), formatMW(f.TotalPowerGeneration), formatMW(f.PowerBalance), f.TotalMachineCount)

	if len(f.ProductionUnits) > 0 {
		fmt.Fprintln(w, "\nPRODUCTION UNITS")
		t := newTable(w)
		fmt.Fprintln(t, "ID\tKind\tName\tRecipe\tMachines\tPower")
		for _, u := range f.ProductionUnits {
			writeUnitRow(t, u, "")
		}
		t.Flush()
	}

	if len(f.RawInputs) > 0 {
		fmt.Fprintln(w, "\nRAW INPUTS")
		t := newTable(w)
		fmt.Fprintln(t, "ID\tKind\tItem\tRate/min\tPower")
		for _, r := range f.RawInputs {
			fmt.Fprintf(t, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Kind, r.Item, formatRate(r.OutputRate), formatMW(r.PowerConsumption))
		}
		t.Flush()
	}

	if len(f.PowerGenerators) > 0 {
		fmt.Fprintln(w, "\nGENERATORS")
		t := newTable(w)
		fmt.Fprintln(t, "ID\tType\tFuel\tCount\tGeneration\tFuel/min")
		for _, g := range f.PowerGenerators {
			fuel := g.FuelType
			if fuel == "" {
				fuel = "-"
			}
			fmt.Fprintf(t, "%s\t%s\t%s\t%d\t%s\t%s\n",
				g.ID, g.GeneratorType, fuel, g.GeneratorCount, formatMW(g.PowerGeneration), formatRate(g.FuelConsumption))
		}
		t.Flush()
	}

	fmt.Fprintln(w)
	displayBalance(w, "NET ITEM BALANCE", f.NetItemBalance)
}

func writeUnitRow(t io.Writer, u planner.UnitResponse, indent string) {
	recipe := u.Recipe
	if recipe == "" {
		recipe = "-"
	}
	fmt.Fprintf(t, "%s%s\t%s\t%s\t%s\t%d\t%s\n",
		indent, u.ID, u.Kind, u.Name, recipe, u.MachineCount, formatMW(u.PowerConsumption))
	for _, line := range u.Lines {
		writeUnitRow(t, line, indent+"  ")
	}
}

// displayPower prints global and per-factory power figures
func displayPower(w io.Writer, resp *queries.GetPowerStatsResponse) {
	stats := resp.Stats
	fmt.Fprintln(w, "POWER")
	fmt.Fprintln(w, ruler)
	fmt.Fprintf(w, "Generation: %s  Consumption: %s  Balance: %s\n",
		formatMW(stats.TotalGeneration), formatMW(stats.TotalConsumption), formatMW(stats.Balance))

	if len(stats.Factories) > 0 {
		fmt.Fprintln(w)
		t := newTable(w)
		fmt.Fprintln(t, "Factory\tGeneration\tConsumption\tBalance")
		for _, f := range stats.Factories {
			fmt.Fprintf(t, "%s\t%s\t%s\t%s\n", f.FactoryName, formatMW(f.Generation), formatMW(f.Consumption), formatMW(f.Balance))
		}
		t.Flush()
	}

	if len(resp.FuelConsumption.Compact(balanceEpsilon)) > 0 {
		fmt.Fprintln(w)
		displayBalance(w, "GENERATOR FUEL", resp.FuelConsumption)
	}
	if len(resp.WasteProduction.Compact(balanceEpsilon)) > 0 {
		fmt.Fprintln(w)
		displayBalance(w, "GENERATOR WASTE", resp.WasteProduction)
	}
}

// displayLinks prints links in creation order
func displayLinks(w io.Writer, links []planner.LinkResponse) {
	if len(links) == 0 {
		fmt.Fprintln(w, "No logistics links found")
		return
	}

	t := newTable(w)
	fmt.Fprintln(t, "ID\tFrom\tTo\tTransport\tFlows\tTotal/min")
	for _, l := range links {
		fmt.Fprintf(t, "%s\t%s\t%s\t%s\t%s\t%s\n",
			l.ID, l.SourceFactoryID, l.DestinationFactoryID, l.Transport, formatFlows(l.Flows), formatRate(l.TotalFlowRate))
	}
	t.Flush()
}

func formatFlows(flows []catalog.ItemRate) string {
	parts := make([]string, 0, len(flows))
	for _, f := range flows {
		parts = append(parts, fmt.Sprintf("%s=%s", f.Item, formatRate(f.Rate)))
	}
	return strings.Join(parts, ",")
}

// displayTemplates prints template library rows
func displayTemplates(w io.Writer, templates []planner.TemplateResponse) {
	if len(templates) == 0 {
		fmt.Fprintln(w, "No templates found")
		return
	}

	t := newTable(w)
	fmt.Fprintln(t, "ID\tName\tLines\tDerived From\tCreated")
	for _, tpl := range templates {
		derived := tpl.DerivedFrom
		if derived == "" {
			derived = "-"
		}
		fmt.Fprintf(t, "%s\t%s\t%d\t%s\t%s\n",
			tpl.ID, tpl.Name, tpl.LineCount, derived, tpl.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
	}
	t.Flush()
}

// displayPlans prints saved plan summaries
func displayPlans(w io.Writer, current string, plans []planner.PlanSummary) {
	if len(plans) == 0 {
		fmt.Fprintln(w, "No saved plans")
		return
	}

	t := newTable(w)
	fmt.Fprintln(t, "\tName\tFactories\tLinks\tTemplates\tSaved")
	for _, p := range plans {
		marker := ""
		if p.Name == current {
			marker = "*"
		}
		fmt.Fprintf(t, "%s\t%s\t%d\t%d\t%d\t%s\n",
			marker, p.Name, p.FactoryCount, p.LinkCount, p.TemplateCount, p.SavedAt.UTC().Format("2006-01-02 15:04:05"))
	}
	t.Flush()
}

// displayPlan prints every factory summary line, the links and the global balance
func displayPlan(w io.Writer, name string, plan planner.PlanResponse) {
	fmt.Fprintf(w, "PLAN %s\n", name)
	fmt.Fprintln(w, ruler)
	fmt.Fprintf(w, "Factories: %d  Links: %d  Power balance: %s\n",
		len(plan.Factories), len(plan.Links), formatMW(plan.Power.Balance))

	if len(plan.Factories) > 0 {
		fmt.Fprintln(w)
		t := newTable(w)
		fmt.Fprintln(t, "ID\tName\tMachines\tConsumption\tGeneration")
		for _, f := range plan.Factories {
			fmt.Fprintf(t, "%s\t%s\t%d\t%s\t%s\n",
				f.ID, f.Name, f.TotalMachineCount, formatMW(f.TotalPowerConsumption), formatMW(f.TotalPowerGeneration))
		}
		t.Flush()
	}

	if len(plan.Links) > 0 {
		fmt.Fprintln(w)
		displayLinks(w, plan.Links)
	}

	fmt.Fprintln(w)
	displayBalance(w, "GLOBAL ITEM BALANCE", plan.GlobalItemBalance)
}
