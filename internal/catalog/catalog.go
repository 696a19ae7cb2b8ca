// Package catalog holds the static document type specs and extraction
// patterns. The catalog is loaded once at startup and read-only afterwards.
package catalog

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rootuip/docintel/internal/core/domain"
)

//go:embed catalog.yaml
var rawCatalog []byte

// TypeSpec describes one supported document type.
type TypeSpec struct {
	ID       string             `yaml:"id"`
	Name     string             `yaml:"name"`
	Industry string             `yaml:"industry"`
	Keywords []string           `yaml:"keywords"`
	Fields   []domain.FieldName `yaml:"fields"`
}

// PatternKind distinguishes bare value regexes from label-anchored ones.
type PatternKind string

const (
	KindRegex      PatternKind = "regex"
	KindContextual PatternKind = "contextual"
)

// Pattern extracts one field. Compiled at load time.
type Pattern struct {
	Field   domain.FieldName `yaml:"field"`
	Kind    PatternKind      `yaml:"kind"`
	Pattern string           `yaml:"pattern"`

	re *regexp.Regexp
}

// Find returns the first match of the pattern in text: capture group 1 when
// the pattern declares one, otherwise the whole match.
func (p *Pattern) Find(text string) (string, bool) {
	m := p.re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	value := m[0]
	if len(m) > 1 && m[1] != "" {
		value = m[1]
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	return value, true
}

// Catalog is the immutable pattern library.
type Catalog struct {
	types    []TypeSpec
	byID     map[string]*TypeSpec
	patterns map[domain.FieldName]*Pattern
}

type catalogFile struct {
	Types    []TypeSpec `yaml:"types"`
	Patterns []*Pattern `yaml:"patterns"`
}

// Load parses and validates the embedded catalog. Called once at boot;
// any error aborts startup.
func Load() (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(rawCatalog, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(file.Types) == 0 {
		return nil, fmt.Errorf("catalog declares no document types")
	}

	c := &Catalog{
		types:    file.Types,
		byID:     make(map[string]*TypeSpec, len(file.Types)),
		patterns: make(map[domain.FieldName]*Pattern, len(file.Patterns)),
	}
	for i := range file.Types {
		spec := &file.Types[i]
		if spec.ID == "" {
			return nil, fmt.Errorf("catalog type %d has empty id", i)
		}
		if _, dup := c.byID[spec.ID]; dup {
			return nil, fmt.Errorf("duplicate document type id %q", spec.ID)
		}
		if len(spec.Fields) == 0 {
			return nil, fmt.Errorf("document type %q declares no fields", spec.ID)
		}
		c.byID[spec.ID] = spec
	}
	for _, p := range file.Patterns {
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile pattern for field %q: %w", p.Field, err)
		}
		if p.Kind != KindRegex && p.Kind != KindContextual {
			return nil, fmt.Errorf("pattern for field %q has unknown kind %q", p.Field, p.Kind)
		}
		p.re = re
		c.patterns[p.Field] = p
	}
	return c, nil
}

// Types returns the specs in declaration order. The slice is shared;
// callers must not mutate it.
func (c *Catalog) Types() []TypeSpec { return c.types }

// TypeIDs returns the type ids in declaration order. Model probability
// vectors are indexed in this order.
func (c *Catalog) TypeIDs() []string {
	ids := make([]string, len(c.types))
	for i, t := range c.types {
		ids[i] = t.ID
	}
	return ids
}

// Get looks up a type spec by id.
func (c *Catalog) Get(id string) (*TypeSpec, bool) {
	spec, ok := c.byID[id]
	return spec, ok
}

// Pattern looks up the extraction pattern for a field, if one exists.
func (c *Catalog) Pattern(field domain.FieldName) (*Pattern, bool) {
	p, ok := c.patterns[field]
	return p, ok
}
