package mapping

import (
	"encoding/json"
)

// Mapping builds the mappings section of an index definition.
type Mapping struct {
	properties map[string]*Field
	meta       map[string]any
	dynamic    any
}

// New creates an empty mapping.
func New() *Mapping {
	return &Mapping{properties: map[string]*Field{}}
}

// Field adds a named field definition and returns the receiver.
func (m *Mapping) Field(name string, f *Field) *Mapping {
	m.properties[name] = f
	return m
}

// FieldDef returns the named field definition, or nil.
func (m *Mapping) FieldDef(name string) *Field {
	return m.properties[name]
}

// Meta sets a _meta entry.
func (m *Mapping) Meta(key string, value any) *Mapping {
	if m.meta == nil {
		m.meta = map[string]any{}
	}
	m.meta[key] = value
	return m
}

// Dynamic sets the dynamic mapping mode: true, false or "strict".
func (m *Mapping) Dynamic(v any) *Mapping {
	m.dynamic = v
	return m
}

// ToMap serializes the mappings section.
func (m *Mapping) ToMap() map[string]any {
	out := map[string]any{}
	if len(m.properties) > 0 {
		props := make(map[string]any, len(m.properties))
		for name, f := range m.properties {
			props[name] = f.ToMap()
		}
		out["properties"] = props
	}
	if m.meta != nil {
		out["_meta"] = m.meta
	}
	if m.dynamic != nil {
		out["dynamic"] = m.dynamic
	}
	return out
}

// Index is a full index definition: settings, aliases and a mapping.
type Index struct {
	name     string
	settings map[string]any
	aliases  map[string]any
	mapping  *Mapping
}

// NewIndex creates an index definition.
func NewIndex(name string) *Index {
	return &Index{name: name}
}

// Name returns the index name.
func (i *Index) Name() string { return i.name }

// Setting sets an index setting, e.g. "number_of_shards".
func (i *Index) Setting(name string, value any) *Index {
	if i.settings == nil {
		i.settings = map[string]any{}
	}
	i.settings[name] = value
	return i
}

// Alias adds an alias. opts may be nil.
func (i *Index) Alias(name string, opts map[string]any) *Index {
	if i.aliases == nil {
		i.aliases = map[string]any{}
	}
	if opts == nil {
		opts = map[string]any{}
	}
	i.aliases[name] = opts
	return i
}

// Mapping sets the index mapping.
func (i *Index) Mapping(m *Mapping) *Index {
	i.mapping = m
	return i
}

// ToMap serializes the index creation body.
func (i *Index) ToMap() map[string]any {
	out := map[string]any{}
	if i.settings != nil {
		out["settings"] = i.settings
	}
	if i.aliases != nil {
		out["aliases"] = i.aliases
	}
	if i.mapping != nil {
		if body := i.mapping.ToMap(); len(body) > 0 {
			out["mappings"] = body
		}
	}
	return out
}

// Body serializes the index creation body as JSON.
func (i *Index) Body() ([]byte, error) {
	return json.Marshal(i.ToMap())
}
