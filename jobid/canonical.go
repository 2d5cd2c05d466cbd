package jobid

import (
	"bytes"
	"fmt"
	"unicode/utf16"
)

// canonicalOrder lists the recognized field names in lexicographic order.
// The ordering is a policy of the canonical form and is spelled out here
// explicitly rather than derived from any container's iteration order.
// canonical_test.go verifies the list is sorted and complete.
var canonicalOrder = [...]string{
	FieldKeyword,
	FieldLabel,
	FieldPlatform,
	FieldPostEnd,
	FieldPostStart,
}

// Canonicalize serializes p into the canonical byte sequence that is the
// sole input to fingerprinting: a compact JSON object with keys in
// canonicalOrder, no whitespace, and absent fields encoded as null.
//
// Equal Params always produce byte-identical output, regardless of how they
// were constructed. Absent fields and fields explicitly set to null are the
// same canonical state; an empty string encodes as "" and is distinct from
// null.
func Canonicalize(p Params) []byte {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range canonicalOrder {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeJSONString(&buf, name)
		buf.WriteByte(':')
		if f := p.field(name); f.present {
			writeJSONString(&buf, f.value)
		} else {
			buf.WriteString("null")
		}
	}
	buf.WriteByte('}')
	return buf.Bytes()
}

func (p Params) field(name string) Field {
	switch name {
	case FieldKeyword:
		return p.Keyword
	case FieldPlatform:
		return p.Platform
	case FieldLabel:
		return p.Label
	case FieldPostStart:
		return p.PostStartDatetime
	case FieldPostEnd:
		return p.PostEndDatetime
	}
	return Field{}
}

// writeJSONString appends the JSON encoding of s to buf using ASCII-only
// escaping: quotes, backslashes, and control characters are escaped, code
// points above U+007F become \uXXXX sequences (surrogate pairs beyond the
// BMP), and everything else is emitted literally. This is the encoding the
// identifiers persisted by earlier deployments were derived under, so it
// must not change.
func writeJSONString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"':
			buf.WriteString(`\"`)
		case r == '\\':
			buf.WriteString(`\\`)
		case r == '\b':
			buf.WriteString(`\b`)
		case r == '\t':
			buf.WriteString(`\t`)
		case r == '\n':
			buf.WriteString(`\n`)
		case r == '\f':
			buf.WriteString(`\f`)
		case r == '\r':
			buf.WriteString(`\r`)
		case r < 0x20:
			fmt.Fprintf(buf, `\u%04x`, r)
		case r < 0x80:
			buf.WriteByte(byte(r))
		case r > 0xffff:
			r1, r2 := utf16.EncodeRune(r)
			fmt.Fprintf(buf, `\u%04x\u%04x`, r1, r2)
		default:
			fmt.Fprintf(buf, `\u%04x`, r)
		}
	}
	buf.WriteByte('"')
}
