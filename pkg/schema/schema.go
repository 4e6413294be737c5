// Package schema declares the shape of every drawing and validates untrusted
// records against it.
//
// # Overview
//
// A [Schema] is a list of required [Field]s plus any number of shared
// fragments combined with AllOf. A [Union] selects exactly one schema by
// reading a tag field: drawings dispatch on "type", end points on
// "connected". The [Registry] holds the full set and is built once with
// [NewRegistry].
//
// # Validation
//
// [Registry.Validate] walks a record decoded from JSON (map[string]any,
// []any, string, float64, bool) and collects every violation into a
// [Report] rather than stopping at the first. An unknown or missing tag never
// matches a variant, so dispatch fails closed.
//
//	rep := schema.Default().Validate(schema.DrawingSchema, record)
//	if !rep.OK() {
//	    fmt.Println(rep.Error())
//	}
//
// Registries are immutable after construction and safe for concurrent use.
package schema

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"
)

// Kind is the JSON type a field must hold.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindObject:
		return "object"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Range is an inclusive numeric bound. Infinite ends are unbounded.
type Range struct {
	Min float64
	Max float64
}

// Unbounded accepts any finite number.
var Unbounded = Range{Min: math.Inf(-1), Max: math.Inf(1)}

// AtLeast returns a range with only a lower bound.
func AtLeast(min float64) Range { return Range{Min: min, Max: math.Inf(1)} }

// Field is one required property of an object schema.
type Field struct {
	Name string
	Kind Kind

	// String constraints.
	MinLength int
	Enum      []string
	Pattern   *regexp.Regexp

	// Number constraint. A nil Range means Unbounded.
	Range *Range

	// Object constraints: exactly one of Schema or Union for KindObject.
	Schema *Schema
	Union  *Union
}

// Schema describes an object: its own fields plus the fields of every
// fragment in AllOf.
type Schema struct {
	Name   string
	AllOf  []*Schema
	Fields []Field
}

// FieldNames returns every required property, fragments first.
func (s *Schema) FieldNames() []string {
	var out []string
	for _, sub := range s.AllOf {
		out = append(out, sub.FieldNames()...)
	}
	for _, f := range s.Fields {
		out = append(out, f.Name)
	}
	return out
}

// Union picks one schema by the value of a tag property.
type Union struct {
	Name string
	// Label describes the tag in error messages, e.g. "drawing type".
	Label string
	Tag   string
	// TagKind is KindString or KindBool. Bool tags key Variants by
	// "true" and "false".
	TagKind  Kind
	Variants map[string]*Schema
}

// Keys returns the accepted tag values in sorted order.
func (u *Union) Keys() []string {
	keys := make([]string, 0, len(u.Variants))
	for k := range u.Variants {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Issue is a single validation failure.
type Issue struct {
	// Path is a JSON pointer to the offending value ("" for the record itself).
	Path    string `json:"path"`
	Message string `json:"message"`
}

// String renders the issue as "path message", or just the message at the root.
func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + " " + i.Message
}

// Report collects every issue found while validating one record.
type Report struct {
	Issues []Issue `json:"issues"`
}

// OK reports whether validation passed.
func (r *Report) OK() bool { return len(r.Issues) == 0 }

// Strings returns each issue rendered with [Issue.String].
func (r *Report) Strings() []string {
	out := make([]string, len(r.Issues))
	for i, is := range r.Issues {
		out[i] = is.String()
	}
	return out
}

// Error joins all issues into one line suitable for an error list.
func (r *Report) Error() string {
	return strings.Join(r.Strings(), "; ")
}

func (r *Report) add(path, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}
