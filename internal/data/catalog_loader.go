package data

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// catalogFile is the YAML layout of a catalog overlay.
type catalogFile struct {
	Ailments   []AilmentDef `yaml:"ailments"`
	Techniques []Technique  `yaml:"techniques"`
	Items      []Item       `yaml:"items"`
	Species    []Species    `yaml:"species"`
	Chart      Chart        `yaml:"chart"`
}

// ParseCatalog decodes a YAML overlay. Unknown keys are rejected.
func ParseCatalog(b []byte) (*Catalog, error) {
	var f catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	c := NewCatalog()
	for _, d := range f.Ailments {
		if _, dup := c.Ailments[d.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate ailment %q", ErrInvalidCatalog, d.ID)
		}
		c.Ailments[d.ID] = d
	}
	for _, t := range f.Techniques {
		if _, dup := c.Techniques[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate technique %q", ErrInvalidCatalog, t.ID)
		}
		c.Techniques[t.ID] = t
	}
	for _, it := range f.Items {
		if _, dup := c.Items[it.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate item %q", ErrInvalidCatalog, it.ID)
		}
		c.Items[it.ID] = it
	}
	for _, s := range f.Species {
		if _, dup := c.Species[s.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate species %q", ErrInvalidCatalog, s.ID)
		}
		c.Species[s.ID] = s
	}
	for atk, row := range f.Chart {
		c.Chart[atk] = row
	}
	return c, nil
}

// LoadCatalogFile overlays the YAML file at path on the default catalog and
// validates the result. A missing file or empty path yields the defaults.
func LoadCatalogFile(path string) (*Catalog, error) {
	c := DefaultCatalog()
	if path == "" {
		return c, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	overlay, err := ParseCatalog(b)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	c.Merge(overlay)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}

	slog.Info("loaded catalog",
		"path", path,
		"ailments", len(c.Ailments),
		"techniques", len(c.Techniques),
		"items", len(c.Items),
		"species", len(c.Species))
	return c, nil
}
