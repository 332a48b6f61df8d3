package steps

import (
	"bytes"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/production"
)

func rodBlock(name string, machines int) production.BlueprintDefinition {
	return production.BlueprintDefinition{
		Name: name,
		Lines: []production.RecipeLineDefinition{{
			Name:          "Rods",
			Recipe:        catalog.RecipeID("iron_rod"),
			MachineGroups: []production.MachineGroup{{MachineCount: machines, OverclockPercent: 100}},
		}},
	}
}

func (pc *plannerContext) aTemplateRunning(name, recipe string, machines int) error {
	def := rodBlock(name, machines)
	def.Lines[0].Recipe = catalog.RecipeID(recipe)

	t, err := pc.engine.CreateTemplate(def)
	if err != nil {
		return err
	}
	pc.template = t
	pc.templateExport, err = pc.engine.ExportTemplate(t.ID())
	return err
}

func (pc *plannerContext) iInstantiateTheTemplateInto(factory string) error {
	id, err := pc.factoryNamed(factory)
	if err != nil {
		return err
	}
	u, err := pc.engine.InstantiateTemplate(pc.template.ID(), id, "")
	if err != nil {
		return err
	}
	pc.instances = append(pc.instances, placedUnit{factoryID: id, unit: u})
	return nil
}

func (pc *plannerContext) iChangeTheFirstInstance(machines int) error {
	if len(pc.instances) == 0 {
		return fmt.Errorf("no instances placed")
	}
	first := pc.instances[0]
	def, ok := first.unit.Definition().(production.BlueprintDefinition)
	if !ok {
		return fmt.Errorf("expected a blueprint instance, got %s", first.unit.Kind())
	}
	def.Lines[0].MachineGroups[0].MachineCount = machines

	u, err := pc.engine.UpdateUnit(first.factoryID, first.unit.ID(), def)
	if err != nil {
		return err
	}
	pc.instances[0].unit = u
	return nil
}

func (pc *plannerContext) iSaveANewVersion(machines int) error {
	def := pc.template.Definition()
	def.Lines[0].MachineGroups[0].MachineCount = machines

	v, err := pc.engine.SaveTemplateAsNewVersion(pc.template.ID(), def)
	if err != nil {
		return err
	}
	pc.newVersion = v
	return nil
}

func (pc *plannerContext) theInstancesShouldHaveDisjointIDs() error {
	if len(pc.instances) != 2 {
		return fmt.Errorf("expected 2 instances, got %d", len(pc.instances))
	}
	seen := make(map[string]bool)
	for _, id := range production.CollectIDs(pc.instances[0].unit) {
		seen[id] = true
	}
	for _, id := range production.CollectIDs(pc.instances[1].unit) {
		if seen[id] {
			return fmt.Errorf("id %s is shared by both instances", id)
		}
	}
	return nil
}

func (pc *plannerContext) theSecondInstanceShouldStillHave(machines int) error {
	f, err := pc.engine.Factory(pc.instances[1].factoryID)
	if err != nil {
		return err
	}
	u, err := f.Unit(pc.instances[1].unit.ID())
	if err != nil {
		return err
	}
	if u.MachineCount() != machines {
		return fmt.Errorf("expected the second instance to keep %d machines, got %d", machines, u.MachineCount())
	}
	return nil
}

func (pc *plannerContext) theTemplateShouldStillHave(machines int) error {
	t, err := pc.engine.Template(pc.template.ID())
	if err != nil {
		return err
	}
	got := t.Definition().Lines[0].MachineGroups[0].MachineCount
	if got != machines {
		return fmt.Errorf("expected the template to keep %d machines, got %d", machines, got)
	}
	return nil
}

func (pc *plannerContext) theNewVersionShouldHaveADifferentID() error {
	if pc.newVersion.ID() == pc.template.ID() {
		return fmt.Errorf("new version reused id %s", pc.template.ID())
	}
	return nil
}

func (pc *plannerContext) theNewVersionShouldDeriveFromTheOriginal() error {
	if pc.newVersion.DerivedFrom() != pc.template.ID() {
		return fmt.Errorf("expected derived_from %s, got %q", pc.template.ID(), pc.newVersion.DerivedFrom())
	}
	return nil
}

func (pc *plannerContext) theOriginalExportShouldBeUnchanged() error {
	data, err := pc.engine.ExportTemplate(pc.template.ID())
	if err != nil {
		return err
	}
	if !bytes.Equal(pc.templateExport, data) {
		return fmt.Errorf("original template changed:\nbefore: %s\nafter:  %s", pc.templateExport, data)
	}
	return nil
}

func initializeTemplateSteps(ctx *godog.ScenarioContext, pc *plannerContext) {
	ctx.Step(`^a template "([^"]*)" running "([^"]*)" on (\d+) machines$`, pc.aTemplateRunning)
	ctx.Step(`^I instantiate the template into "([^"]*)"$`, pc.iInstantiateTheTemplateInto)
	ctx.Step(`^I change the first instance to (\d+) machines$`, pc.iChangeTheFirstInstance)
	ctx.Step(`^I save a new version of the template with (\d+) machines$`, pc.iSaveANewVersion)
	ctx.Step(`^the two instances should have disjoint ids$`, pc.theInstancesShouldHaveDisjointIDs)
	ctx.Step(`^the second instance should still have (\d+) machines$`, pc.theSecondInstanceShouldStillHave)
	ctx.Step(`^the template should still have (\d+) machines$`, pc.theTemplateShouldStillHave)
	ctx.Step(`^the new version should have a different id$`, pc.theNewVersionShouldHaveADifferentID)
	ctx.Step(`^the new version should derive from the original$`, pc.theNewVersionShouldDeriveFromTheOriginal)
	ctx.Step(`^the original template export should be unchanged$`, pc.theOriginalExportShouldBeUnchanged)
}
