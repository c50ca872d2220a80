package filter

import "strings"

const hexDigits = "0123456789abcdef"

// Render returns the text a value takes inside a predicate.
func Render(v Value) string {
	return render(v)
}

// render writes a value in its canonical compact JSON form. Strings keep their
// double quotes, so `"John"` lands in the predicate as-is.
func render(v Value) string {
	var sb strings.Builder
	writeValue(&sb, v)
	return sb.String()
}

func writeValue(sb *strings.Builder, v Value) {
	switch v := v.(type) {
	case nil, Null:
		sb.WriteString("null")
	case Bool:
		if v {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case Number:
		sb.WriteString(string(v))
	case String:
		writeQuoted(sb, string(v))
	case Array:
		sb.WriteByte('[')
		for i, e := range v {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeValue(sb, e)
		}
		sb.WriteByte(']')
	case Document:
		sb.WriteByte('{')
		for i, f := range v {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeQuoted(sb, f.Key)
			sb.WriteByte(':')
			writeValue(sb, f.Value)
		}
		sb.WriteByte('}')
	}
}

func writeQuoted(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if c < 0x20 {
				sb.WriteString(`\u00`)
				sb.WriteByte(hexDigits[c>>4])
				sb.WriteByte(hexDigits[c&0xf])
				continue
			}
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
}

// renderList renders a membership operand. A non-array operand is a list of
// one element.
func renderList(v Value) string {
	arr, ok := v.(Array)
	if !ok {
		return render(v)
	}
	parts := make([]string, len(arr))
	for i, e := range arr {
		parts[i] = render(e)
	}
	return strings.Join(parts, ", ")
}
