// Package schema describes the parameters accepted by a BetaSeries endpoint and
// checks caller-supplied values against that description before a request is sent.
//
// A Schema is an ordered list of Fields. Fields are built with the constructors
// (Str, Int, Bool, Value) and refined with chained modifiers:
//
//	schema.New(
//		schema.Str("token").Require().DisallowBlank(),
//		schema.Int("number").Range(1, 100),
//		schema.Str("sort").OneOf("ASC", "DESC"),
//	)
//
// Schemas are immutable once built and safe for concurrent use.
package schema

import (
	"fmt"
	"strings"
)

// Type is the expected Go type of a parameter value
type Type int

const (
	// Any accepts a value of any type
	Any Type = iota
	// String accepts string values
	String
	// Integer accepts every signed and unsigned integer kind
	Integer
	// Boolean accepts bool values
	Boolean
)

// String returns the name used in violation messages
func (t Type) String() string {
	switch t {
	case String:
		return "string"
	case Integer:
		return "integer"
	case Boolean:
		return "boolean"
	default:
		return "any"
	}
}

// Field declares one accepted parameter
type Field struct {
	Name     string
	Type     Type
	Required bool
	NotBlank bool
	Choices  []string
	Min      *int64
	Max      *int64
	URL      bool
}

// Str declares an optional string parameter
func Str(name string) Field {
	return Field{Name: name, Type: String}
}

// Int declares an optional integer parameter
func Int(name string) Field {
	return Field{Name: name, Type: Integer}
}

// Bool declares an optional boolean parameter
func Bool(name string) Field {
	return Field{Name: name, Type: Boolean}
}

// Value declares an optional parameter without a type constraint
func Value(name string) Field {
	return Field{Name: name, Type: Any}
}

// Require marks the field as mandatory
func (f Field) Require() Field {
	f.Required = true
	return f
}

// DisallowBlank rejects nil and empty-string values
func (f Field) DisallowBlank() Field {
	f.NotBlank = true
	return f
}

// OneOf restricts the value to the given set
func (f Field) OneOf(values ...string) Field {
	f.Choices = append([]string(nil), values...)
	return f
}

// Range restricts an integer value to [min, max]
func (f Field) Range(min, max int64) Field {
	return f.AtLeast(min).AtMost(max)
}

// AtLeast sets the inclusive lower bound of an integer value
func (f Field) AtLeast(min int64) Field {
	f.Min = &min
	return f
}

// AtMost sets the inclusive upper bound of an integer value
func (f Field) AtMost(max int64) Field {
	f.Max = &max
	return f
}

// AsURL requires a string value to be an absolute URL
func (f Field) AsURL() Field {
	f.URL = true
	return f
}

// String renders the field the way the CLI lists it, e.g. "number:integer(1..100)"
func (f Field) String() string {
	var b strings.Builder
	b.WriteString(f.Name)
	if f.Type != Any {
		b.WriteString(":" + f.Type.String())
	}
	switch {
	case f.Min != nil && f.Max != nil:
		fmt.Fprintf(&b, "(%d..%d)", *f.Min, *f.Max)
	case f.Min != nil:
		fmt.Fprintf(&b, "(%d..)", *f.Min)
	case f.Max != nil:
		fmt.Fprintf(&b, "(..%d)", *f.Max)
	}
	if len(f.Choices) > 0 {
		b.WriteString("[" + strings.Join(f.Choices, "|") + "]")
	}
	if f.URL {
		b.WriteString("<url>")
	}
	if f.Required {
		b.WriteString("*")
	}
	return b.String()
}

// Schema is the full parameter description of one endpoint
type Schema struct {
	fields []Field
	index  map[string]int
}

// New builds a schema from the given fields. It panics on an empty or
// duplicated field name, since schemas are declared statically.
func New(fields ...Field) *Schema {
	s := &Schema{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if f.Name == "" {
			panic("schema: field without a name")
		}
		if _, dup := s.index[f.Name]; dup {
			panic(fmt.Sprintf("schema: duplicate field %q", f.Name))
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s
}

// Fields returns the declared fields in declaration order
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field returns the declaration of the named field
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Required returns the names of the mandatory fields
func (s *Schema) Required() []string {
	var names []string
	for _, f := range s.fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}

// Names returns every declared field name in declaration order
func (s *Schema) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Len returns the number of declared fields
func (s *Schema) Len() int {
	return len(s.fields)
}
