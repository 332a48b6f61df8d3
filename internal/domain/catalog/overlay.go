package catalog

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Overlay is a YAML document that adds to (or replaces entries of) a base catalog.
//
//	items:
//	  - {id: aluminum_scrap, name: Aluminum Scrap}
//	recipes:
//	  - id: alternate_iron_wire
//	    name: Iron Wire
//	    machine: constructor
//	    inputs: [{item: iron_ingot, rate: 12.5}]
//	    outputs: [{item: wire, rate: 22.5}]
type Overlay struct {
	Items      []ItemInfo      `yaml:"items"`
	Machines   []MachineType   `yaml:"machines"`
	Recipes    []Recipe        `yaml:"recipes"`
	Extractors []ExtractorType `yaml:"extractors"`
}

// ParseOverlay decodes an overlay document, rejecting unknown keys
func ParseOverlay(r io.Reader) (*Overlay, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var o Overlay
	if err := dec.Decode(&o); err != nil {
		if err == io.EOF {
			return &o, nil
		}
		return nil, fmt.Errorf("failed to parse catalog overlay: %w", err)
	}
	return &o, nil
}

// WithOverlay returns a new catalog with the overlay applied. The receiver is untouched.
func (c *Catalog) WithOverlay(o *Overlay) (*Catalog, error) {
	out := c.clone()
	if o == nil {
		return out, nil
	}

	for _, item := range o.Items {
		if item.ID == "" {
			return nil, fmt.Errorf("catalog overlay: item id cannot be empty")
		}
		if item.Name == "" {
			item.Name = displayName(string(item.ID))
		}
		out.addItem(item)
	}
	for _, m := range o.Machines {
		if err := out.addMachine(m); err != nil {
			return nil, fmt.Errorf("catalog overlay: %w", err)
		}
	}
	for _, r := range o.Recipes {
		if r.Name == "" {
			r.Name = displayName(string(r.ID))
		}
		if err := out.addRecipe(r); err != nil {
			return nil, fmt.Errorf("catalog overlay: %w", err)
		}
	}
	for _, e := range o.Extractors {
		if err := out.addExtractor(e); err != nil {
			return nil, fmt.Errorf("catalog overlay: %w", err)
		}
	}
	return out, nil
}

// Load returns the built-in catalog, extended by the overlay file at path when path is not empty
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Builtin(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog overlay: %w", err)
	}

	overlay, err := ParseOverlay(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	return Builtin().WithOverlay(overlay)
}
