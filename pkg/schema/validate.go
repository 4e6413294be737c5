package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/vnav/pkg/drawing"
)

// Validate checks record against the schema registered under name and
// returns every violation. name is a drawing type tag (e.g. "PathLine"),
// in which case the record's own "type" must match it,
// [DrawingSchema] to dispatch on the record's own "type", [EndPointSchema]
// to dispatch on "connected", or a fragment name such as "LineStyle".
//
// Validate has no side effects and never modifies record.
func (r *Registry) Validate(name string, record any) *Report {
	rep := &Report{}
	switch {
	case name == DrawingSchema:
		validateUnion(r.drawing, record, "", rep)
	case name == EndPointSchema:
		validateUnion(r.endPoint, record, "", rep)
	default:
		s, ok := r.schemas[name]
		if !ok {
			rep.add("", "unknown schema %q", name)
			return rep
		}
		validateObject(s, record, "", rep)
		if drawing.Type(name).Valid() {
			checkTag(record, name, rep)
		}
	}
	return rep
}

// checkTag reports a record whose "type" names a different variant than the
// schema it is validated against. A missing or non-string tag has already
// been reported by validateObject.
func checkTag(record any, name string, rep *Report) {
	obj, ok := record.(map[string]any)
	if !ok {
		return
	}
	if tag, ok := obj["type"].(string); ok && tag != name {
		rep.add("/type", "must be equal to %q, got %q", name, tag)
	}
}

// DecodeRecord decodes one JSON value into the generic form Validate
// expects. Numbers are kept as json.Number, so a literal too large for
// float64 fails validation of its own field instead of the whole decode.
// Anything after the value is an error.
func DecodeRecord(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		if err == nil {
			err = errors.New("invalid data after top-level value")
		}
		return nil, err
	}
	return v, nil
}

func validateObject(s *Schema, value any, path string, rep *Report) {
	obj, ok := value.(map[string]any)
	if !ok {
		rep.add(path, "must be object")
		return
	}
	for _, sub := range s.AllOf {
		validateObject(sub, obj, path, rep)
	}
	for _, f := range s.Fields {
		v, present := obj[f.Name]
		if !present {
			rep.add(path, "must have required property %q", f.Name)
			continue
		}
		validateField(f, v, path+"/"+escape(f.Name), rep)
	}
}

func validateField(f Field, v any, path string, rep *Report) {
	switch f.Kind {
	case KindString:
		s, ok := v.(string)
		if !ok {
			rep.add(path, "must be string")
			return
		}
		if utf8.RuneCountInString(s) < f.MinLength {
			rep.add(path, "must NOT have fewer than %d characters", f.MinLength)
		}
		if len(f.Enum) > 0 && !slices.Contains(f.Enum, s) {
			rep.add(path, "must be equal to one of the allowed values: %s", strings.Join(f.Enum, ", "))
		}
		if f.Pattern != nil && !f.Pattern.MatchString(s) {
			rep.add(path, "must match pattern %q", f.Pattern.String())
		}

	case KindNumber:
		n, ok := toFloat(v)
		if !ok {
			rep.add(path, "must be number")
			return
		}
		if math.IsNaN(n) || math.IsInf(n, 0) {
			rep.add(path, "must be a finite number")
			return
		}
		rg := Unbounded
		if f.Range != nil {
			rg = *f.Range
		}
		if n < rg.Min {
			rep.add(path, "must be >= %s", formatNumber(rg.Min))
		}
		if n > rg.Max {
			rep.add(path, "must be <= %s", formatNumber(rg.Max))
		}

	case KindBool:
		if _, ok := v.(bool); !ok {
			rep.add(path, "must be boolean")
		}

	case KindObject:
		switch {
		case f.Union != nil:
			validateUnion(f.Union, v, path, rep)
		case f.Schema != nil:
			validateObject(f.Schema, v, path, rep)
		default:
			if _, ok := v.(map[string]any); !ok {
				rep.add(path, "must be object")
			}
		}
	}
}

// validateUnion selects the variant named by the tag property and validates
// against it. A missing or unrecognized tag is reported and nothing else is
// checked: there is no schema to check against.
func validateUnion(u *Union, value any, path string, rep *Report) {
	obj, ok := value.(map[string]any)
	if !ok {
		rep.add(path, "must be object")
		return
	}
	raw, present := obj[u.Tag]
	if !present {
		rep.add(path, "must have required property %q", u.Tag)
		return
	}

	tagPath := path + "/" + escape(u.Tag)
	var key string
	switch u.TagKind {
	case KindBool:
		b, ok := raw.(bool)
		if !ok {
			rep.add(tagPath, "must be boolean")
			return
		}
		key = strconv.FormatBool(b)
	default:
		s, ok := raw.(string)
		if !ok {
			rep.add(tagPath, "must be string")
			return
		}
		key = s
	}

	variant, ok := u.Variants[key]
	if !ok {
		rep.add(tagPath, "unknown %s %q (want one of: %s)", u.Label, key, strings.Join(u.Keys(), ", "))
		return
	}
	validateObject(variant, obj, path, rep)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		// Literals beyond float64 parse to ±Inf with ErrRange; keep the
		// infinity so the caller reports a non-finite number.
		f, err := strconv.ParseFloat(string(n), 64)
		var numErr *strconv.NumError
		if err != nil && !(errors.As(err, &numErr) && numErr.Err == strconv.ErrRange) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// escape encodes a property name as a JSON pointer token.
func escape(name string) string {
	name = strings.ReplaceAll(name, "~", "~0")
	return strings.ReplaceAll(name, "/", "~1")
}
