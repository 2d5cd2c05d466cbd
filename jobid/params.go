package jobid

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Recognized field names. Only these keys participate in the canonical form;
// anything else supplied at the map boundary is ignored.
const (
	FieldKeyword   = "keyword"
	FieldLabel     = "label"
	FieldPlatform  = "platform"
	FieldPostEnd   = "post_end_datetime"
	FieldPostStart = "post_start_datetime"
)

// Field is an optional string parameter. The zero value is absent. A field
// explicitly set to the empty string is present, and canonicalizes
// differently from an absent field.
type Field struct {
	value   string
	present bool
}

// Set returns a present Field holding s.
func Set(s string) Field {
	return Field{value: s, present: true}
}

// Present reports whether the field holds a value.
func (f Field) Present() bool {
	return f.present
}

// Value returns the held string, or "" if the field is absent.
func (f Field) Value() string {
	return f.value
}

// MarshalJSON encodes an absent field as JSON null.
func (f Field) MarshalJSON() ([]byte, error) {
	if !f.present {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

// UnmarshalJSON decodes JSON null as absent and a JSON string as present.
func (f *Field) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = Field{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = Set(s)
	return nil
}

// UnmarshalYAML decodes YAML null (or an omitted key) as absent and a YAML
// scalar as present.
func (f *Field) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!null" {
		*f = Field{}
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	*f = Set(s)
	return nil
}

// Params is the fixed set of parameters that define a job's identity.
// Values are opaque strings: no semantic parsing occurs during derivation,
// so "2025-09-16T03:22:05Z" and "2025-09-16T03:22:05.000Z" are different
// values.
//
// Params must not be mutated concurrently with derivation; derivation itself
// never mutates its input.
type Params struct {
	Keyword           Field `json:"keyword"`
	Platform          Field `json:"platform"`
	Label             Field `json:"label"`
	PostStartDatetime Field `json:"post_start_datetime"`
	PostEndDatetime   Field `json:"post_end_datetime"`
}

// ParamsFromMap builds Params from a dynamic mapping, the shape used by
// callers that receive job parameters as loosely typed payloads. Recognized
// keys are FieldKeyword, FieldPlatform, FieldLabel, FieldPostStart, and
// FieldPostEnd; unrecognized keys are ignored and never contribute to a
// derived identifier. A nil pointer and a missing key are both absent.
func ParamsFromMap(m map[string]*string) Params {
	var p Params
	for key, val := range m {
		if val == nil {
			continue
		}
		switch key {
		case FieldKeyword:
			p.Keyword = Set(*val)
		case FieldPlatform:
			p.Platform = Set(*val)
		case FieldLabel:
			p.Label = Set(*val)
		case FieldPostStart:
			p.PostStartDatetime = Set(*val)
		case FieldPostEnd:
			p.PostEndDatetime = Set(*val)
		}
	}
	return p
}

// Fields returns the dynamic view of p: one entry per recognized field name,
// with nil for absent fields. The returned map is freshly allocated.
func (p Params) Fields() map[string]*string {
	m := make(map[string]*string, len(canonicalOrder))
	for _, name := range canonicalOrder {
		f := p.field(name)
		if f.present {
			v := f.value
			m[name] = &v
		} else {
			m[name] = nil
		}
	}
	return m
}
