// Package ideology maps a final compass position to a named ideology.
package ideology

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Party is a US party label.
type Party string

const (
	Democrat    Party = "Democrat"
	Republican  Party = "Republican"
	Independent Party = "Independent"
)

// Country is an exemplar country for an ideology.
type Country struct {
	Name      string `yaml:"name"`
	Reasoning string `yaml:"reasoning"`
	Flag      string `yaml:"flag"`
}

// PartyAlignment describes the closest US party and where they differ.
type PartyAlignment struct {
	Party         Party  `yaml:"party"`
	Reasoning     string `yaml:"reasoning"`
	Disagreements string `yaml:"disagreements"`
}

// Ideology is a resolved ideology with its descriptive content.
type Ideology struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Country     Country        `yaml:"country"`
	USParty     PartyAlignment `yaml:"us_party"`
}

// Range is a closed interval [Min, Max].
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Contains reports whether v lies in the closed interval.
func (r Range) Contains(v float64) bool {
	return r.Min <= v && v <= r.Max
}

// Entry is a catalog ideology with the score ranges it covers.
type Entry struct {
	Ideology `yaml:",inline"`
	Economic Range `yaml:"economic"`
	Social   Range `yaml:"social"`
}

// Matches reports whether both scores fall inside the entry's ranges.
func (e Entry) Matches(econ, social float64) bool {
	return e.Economic.Contains(econ) && e.Social.Contains(social)
}

// Catalog is an ordered, read-only list of ideologies plus a fallback.
type Catalog struct {
	entries []Entry
	def     Ideology
}

// NewCatalog validates entries and builds a Catalog.
func NewCatalog(entries []Entry, def Ideology) (*Catalog, error) {
	if err := validateCatalog(entries, def); err != nil {
		return nil, err
	}
	return &Catalog{entries: append([]Entry(nil), entries...), def: def}, nil
}

// Resolve returns the first entry, in declaration order, whose closed
// ranges contain both scores. Overlaps resolve to the earlier entry. When
// nothing matches the default ideology is returned, so Resolve is total.
func (c *Catalog) Resolve(econ, social float64) Ideology {
	for _, e := range c.entries {
		if e.Matches(econ, social) {
			return e.Ideology
		}
	}
	return c.def
}

// Entries returns the catalog entries in declaration order.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Default returns the fallback ideology.
func (c *Catalog) Default() Ideology {
	return c.def
}

//go:embed ideologies.yaml
var catalogYAML []byte

var std *Catalog

func init() {
	c, err := Parse(catalogYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded ideology catalog is invalid: %v", err))
	}
	std = c
}

// Standard returns the embedded ideology catalog.
func Standard() *Catalog {
	return std
}

// Resolve resolves scores against the embedded catalog.
func Resolve(econ, social float64) Ideology {
	return std.Resolve(econ, social)
}

type document struct {
	Catalog []Entry  `yaml:"catalog"`
	Default Ideology `yaml:"default"`
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse catalog: multiple YAML documents are not supported")
		}
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return NewCatalog(doc.Catalog, doc.Default)
}

func validateCatalog(entries []Entry, def Ideology) error {
	var errs []string

	if def.Name == "" {
		errs = append(errs, "default ideology has no name")
	}
	names := make(map[string]bool, len(entries))
	for i, e := range entries {
		if e.Name == "" {
			errs = append(errs, fmt.Sprintf("entry #%d has no name", i))
		}
		if names[e.Name] {
			errs = append(errs, fmt.Sprintf("duplicate ideology: %q", e.Name))
		}
		names[e.Name] = true

		for _, ar := range []struct {
			axis string
			r    Range
		}{{"economic", e.Economic}, {"social", e.Social}} {
			if ar.r.Min > ar.r.Max {
				errs = append(errs, fmt.Sprintf("%s: %s range min %v > max %v", e.Name, ar.axis, ar.r.Min, ar.r.Max))
			}
			if ar.r.Min < -100 || ar.r.Max > 100 {
				errs = append(errs, fmt.Sprintf("%s: %s range [%v, %v] outside [-100, 100]", e.Name, ar.axis, ar.r.Min, ar.r.Max))
			}
		}
		switch e.USParty.Party {
		case Democrat, Republican, Independent:
		default:
			errs = append(errs, fmt.Sprintf("%s: unknown party %q", e.Name, e.USParty.Party))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("ideology catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
