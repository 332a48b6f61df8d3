package blueprint

import (
	"encoding/json"
	"fmt"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/production"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

// TransferFormatVersion is written into every transfer document
const TransferFormatVersion = 1

// transferDocument is the self-contained share format for one template or one unit
// tree. It carries no ids; importers always assign fresh ones.
type transferDocument struct {
	FormatVersion int                               `json:"format_version"`
	Kind          production.Kind                   `json:"kind"`
	Name          string                            `json:"name"`
	Description   string                            `json:"description,omitempty"`
	Recipe        catalog.RecipeID                  `json:"recipe,omitempty"`
	MachineGroups []production.MachineGroup         `json:"machine_groups,omitempty"`
	Lines         []production.RecipeLineDefinition `json:"lines,omitempty"`
}

// EncodeTemplate writes t in the transfer format
func EncodeTemplate(t *Template) ([]byte, error) {
	return EncodeDefinition(t.Definition())
}

// EncodeDefinition writes a unit definition in the transfer format
func EncodeDefinition(def production.Definition) ([]byte, error) {
	doc := transferDocument{FormatVersion: TransferFormatVersion}
	switch d := def.(type) {
	case production.RecipeLineDefinition:
		doc.Kind = production.KindRecipeLine
		doc.Name = d.Name
		doc.Description = d.Description
		doc.Recipe = d.Recipe
		doc.MachineGroups = d.MachineGroups
	case production.BlueprintDefinition:
		doc.Kind = production.KindBlueprint
		doc.Name = d.Name
		doc.Description = d.Description
		doc.Lines = d.Lines
		if doc.Lines == nil {
			doc.Lines = []production.RecipeLineDefinition{}
		}
	default:
		return nil, shared.NewInvalidConfigurationError("definition", fmt.Sprintf("unsupported unit kind %T", def))
	}
	return json.MarshalIndent(doc, "", "  ")
}

// DecodeDefinition parses a transfer document and validates it against the catalog.
// Any failure is a SerializationError.
func DecodeDefinition(data []byte, cat *catalog.Catalog) (production.Definition, error) {
	var doc transferDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, shared.NewSerializationError("malformed transfer document", err)
	}
	if doc.FormatVersion != TransferFormatVersion {
		return nil, shared.NewSerializationError(fmt.Sprintf("unsupported transfer format version %d", doc.FormatVersion), nil)
	}

	var def production.Definition
	switch doc.Kind {
	case production.KindRecipeLine:
		def = production.RecipeLineDefinition{
			Name:          doc.Name,
			Description:   doc.Description,
			Recipe:        doc.Recipe,
			MachineGroups: doc.MachineGroups,
		}
	case production.KindBlueprint:
		def = production.BlueprintDefinition{
			Name:        doc.Name,
			Description: doc.Description,
			Lines:       doc.Lines,
		}
	default:
		return nil, shared.NewSerializationError(fmt.Sprintf("unknown unit kind %q", doc.Kind), nil)
	}

	if err := production.Validate(def, cat); err != nil {
		return nil, shared.NewSerializationError("transfer document describes an invalid unit", err)
	}
	return def, nil
}

// DecodeTemplateDefinition parses a transfer document that must describe a blueprint.
// A single recipe line is accepted and wrapped into a one-line blueprint.
func DecodeTemplateDefinition(data []byte, cat *catalog.Catalog) (production.BlueprintDefinition, error) {
	def, err := DecodeDefinition(data, cat)
	if err != nil {
		return production.BlueprintDefinition{}, err
	}
	switch d := def.(type) {
	case production.BlueprintDefinition:
		return d, nil
	case production.RecipeLineDefinition:
		return production.BlueprintDefinition{Name: d.Name, Description: d.Description, Lines: []production.RecipeLineDefinition{d}}, nil
	}
	return production.BlueprintDefinition{}, shared.NewSerializationError("transfer document is not a blueprint", nil)
}
