// Package load reads resource definitions from a YAML manifest and
// resolves their relationship references into a definition graph.
package load

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/davrux/sideload/resource"
)

// Sentinel errors for manifest loading.
var (
	// ErrInvalidManifest indicates a malformed manifest document.
	ErrInvalidManifest = errors.New("sideload: invalid manifest")
	// ErrUnknownResource indicates a relationship reference to a resource
	// the manifest does not declare.
	ErrUnknownResource = errors.New("sideload: unknown resource")
)

// Manifest is the top-level manifest document.
type Manifest struct {
	Resources []*ResourceSpec `yaml:"resources"`
}

// ResourceSpec describes one resource in the manifest.
type ResourceSpec struct {
	Name         string              `yaml:"name"`
	Attributes   []string            `yaml:"attributes"`
	Kinds        map[string]string   `yaml:"kinds"`
	Enums        map[string][]string `yaml:"enums"`
	ArrayColumns []string            `yaml:"array_columns"`

	Nullable       []string          `yaml:"nullable"`
	OptionalCreate []string          `yaml:"optional_create"`
	OptionalUpdate []string          `yaml:"optional_update"`
	ExcludedCreate []string          `yaml:"excluded_create"`
	ExcludedUpdate []string          `yaml:"excluded_update"`
	ExcludedAttrs  []string          `yaml:"excluded_response_attributes"`
	ExcludedRels   []string          `yaml:"excluded_response_relations"`
	DefaultEnums   map[string]string `yaml:"default_enums"`

	BelongsTo          RelationList `yaml:"belongs_to"`
	HasMany            RelationList `yaml:"has_many"`
	AdditionalIncluded RelationList `yaml:"additional_included"`
}

// RelationRef is a named reference to another manifest resource.
type RelationRef struct {
	Name   string
	Target string
}

// RelationList decodes a YAML mapping of relationship name to resource
// name while preserving the mapping's declaration order, which plain map
// decoding would lose.
type RelationList []RelationRef

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *RelationList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: relationships must be a mapping, got %s", ErrInvalidManifest, node.Tag)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		*l = append(*l, RelationRef{
			Name:   node.Content[i].Value,
			Target: node.Content[i+1].Value,
		})
	}
	return nil
}

// Load reads and resolves the manifest at path.
func Load(path string) ([]*resource.Definition, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(buf)
}

// Parse resolves a manifest document into a definition graph. References
// are resolved in a second pass, so mutually referencing resources are
// supported.
func Parse(buf []byte) ([]*resource.Definition, error) {
	var m Manifest
	if err := yaml.Unmarshal(buf, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	if len(m.Resources) == 0 {
		return nil, fmt.Errorf("%w: no resources declared", ErrInvalidManifest)
	}

	byName := make(map[string]*resource.Definition, len(m.Resources))
	defs := make([]*resource.Definition, 0, len(m.Resources))
	for _, spec := range m.Resources {
		if spec.Name == "" {
			return nil, fmt.Errorf("%w: resource with empty name", ErrInvalidManifest)
		}
		if _, ok := byName[spec.Name]; ok {
			return nil, fmt.Errorf("%w: resource %q declared twice", ErrInvalidManifest, spec.Name)
		}
		def := resource.New(spec.Name).Attributes(spec.Attributes...)
		for _, attr := range spec.Attributes {
			if kind, ok := spec.Kinds[attr]; ok {
				def.Kind(attr, kind)
			}
			if values, ok := spec.Enums[attr]; ok {
				def.Enum(attr, values...)
			}
		}
		def.ArrayColumns(spec.ArrayColumns...)
		def.Nullable(spec.Nullable...)
		def.OptionalCreateRequestAttributes(spec.OptionalCreate...)
		def.OptionalUpdateRequestAttributes(spec.OptionalUpdate...)
		def.ExcludedCreateRequestAttributes(spec.ExcludedCreate...)
		def.ExcludedUpdateRequestAttributes(spec.ExcludedUpdate...)
		def.ExcludedResponseAttributes(spec.ExcludedAttrs...)
		def.ExcludedResponseRelations(spec.ExcludedRels...)
		for attr, value := range spec.DefaultEnums {
			def.DefaultEnum(attr, value)
		}
		byName[spec.Name] = def
		defs = append(defs, def)
	}

	for _, spec := range m.Resources {
		def := byName[spec.Name]
		for _, ref := range spec.BelongsTo {
			target, ok := byName[ref.Target]
			if !ok {
				return nil, fmt.Errorf("%w: %q references %q via belongs_to %q", ErrUnknownResource, spec.Name, ref.Target, ref.Name)
			}
			def.BelongsTo(ref.Name, target)
		}
		for _, ref := range spec.HasMany {
			target, ok := byName[ref.Target]
			if !ok {
				return nil, fmt.Errorf("%w: %q references %q via has_many %q", ErrUnknownResource, spec.Name, ref.Target, ref.Name)
			}
			def.HasMany(ref.Name, target)
		}
		for _, ref := range spec.AdditionalIncluded {
			target, ok := byName[ref.Target]
			if !ok {
				return nil, fmt.Errorf("%w: %q references %q via additional_included %q", ErrUnknownResource, spec.Name, ref.Target, ref.Name)
			}
			def.AdditionalIncluded(ref.Name, target)
		}
	}
	return defs, nil
}
