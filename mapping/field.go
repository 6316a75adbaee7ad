// Package mapping implements index mappings for the grain search DSL:
// typed field definitions, the mapping builder, and full index definitions
// with settings and aliases.
package mapping

// Field is a single field definition in an index mapping.
type Field struct {
	kind       string
	params     map[string]any
	properties map[string]*Field
	fields     map[string]*Field
}

// NewField constructs a field of the given type, e.g. "text" or "keyword".
func NewField(kind string) *Field {
	return &Field{kind: kind}
}

// Kind returns the field type.
func (f *Field) Kind() string { return f.kind }

// Param sets a field parameter such as analyzer or format.
func (f *Field) Param(name string, value any) *Field {
	if f.params == nil {
		f.params = map[string]any{}
	}
	f.params[name] = value
	return f
}

// Property adds a sub-field to an object or nested field.
func (f *Field) Property(name string, sub *Field) *Field {
	if f.properties == nil {
		f.properties = map[string]*Field{}
	}
	f.properties[name] = sub
	return f
}

// SubField adds a multi-field, e.g. a keyword sub-field of a text field.
func (f *Field) SubField(name string, sub *Field) *Field {
	if f.fields == nil {
		f.fields = map[string]*Field{}
	}
	f.fields[name] = sub
	return f
}

// Analyzer sets the analyzer parameter.
func (f *Field) Analyzer(name string) *Field {
	return f.Param("analyzer", name)
}

// Format sets the format parameter, used mostly by date fields.
func (f *Field) Format(format string) *Field {
	return f.Param("format", format)
}

// ToMap serializes the field definition.
func (f *Field) ToMap() map[string]any {
	out := map[string]any{"type": f.kind}
	for k, v := range f.params {
		out[k] = v
	}
	if len(f.properties) > 0 {
		props := make(map[string]any, len(f.properties))
		for name, sub := range f.properties {
			props[name] = sub.ToMap()
		}
		out["properties"] = props
		// Plain object fields serialize their sub-fields only.
		if f.kind == "object" {
			delete(out, "type")
		}
	}
	if len(f.fields) > 0 {
		subs := make(map[string]any, len(f.fields))
		for name, sub := range f.fields {
			subs[name] = sub.ToMap()
		}
		out["fields"] = subs
	}
	return out
}

// Typed constructors for the common field types.

// Text constructs an analyzed text field.
func Text() *Field { return NewField("text") }

// Keyword constructs a keyword field.
func Keyword() *Field { return NewField("keyword") }

// Long constructs a long field.
func Long() *Field { return NewField("long") }

// Integer constructs an integer field.
func Integer() *Field { return NewField("integer") }

// Double constructs a double field.
func Double() *Field { return NewField("double") }

// Boolean constructs a boolean field.
func Boolean() *Field { return NewField("boolean") }

// Date constructs a date field.
func Date() *Field { return NewField("date") }

// IP constructs an ip field.
func IP() *Field { return NewField("ip") }

// Object constructs an object field holding sub-properties.
func Object() *Field { return NewField("object") }

// Nested constructs a nested field holding sub-properties.
func Nested() *Field { return NewField("nested") }
