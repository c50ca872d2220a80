package filter

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Value is a node of a filter document. It is implemented only by Null, Bool,
// Number, String, Array and Document.
type Value interface {
	value()
}

// Null is the JSON null value.
type Null struct{}

// Bool is a boolean value.
type Bool bool

// Number holds a numeric literal in its canonical textual form. Use Int or
// Float to construct one.
type Number string

// String is a text value.
type String string

// Array is an ordered sequence of values.
type Array []Value

// Document is an ordered mapping. Keys keep the order they were inserted or
// decoded in.
type Document []Field

// Field is a single key/value entry of a Document.
type Field struct {
	Key   string
	Value Value
}

func (Null) value()     {}
func (Bool) value()     {}
func (Number) value()   {}
func (String) value()   {}
func (Array) value()    {}
func (Document) value() {}

// D builds a Document from fields, keeping their order.
//
// Example:
//
//	filter.D(filter.E("age", filter.D(filter.E("$gte", filter.Int(21)))))
func D(fields ...Field) Document {
	return Document(fields)
}

// E builds a single Document field.
func E(key string, value Value) Field {
	return Field{Key: key, Value: value}
}

// A builds an Array.
func A(values ...Value) Array {
	return Array(values)
}

// Int returns the Number for an integer.
func Int(n int64) Number {
	return Number(strconv.FormatInt(n, 10))
}

// Float returns the Number for a floating point value. Integral values keep a
// trailing ".0" so they still read as floats.
func Float(f float64) Number {
	return Number(formatFloat(f))
}

func formatFloat(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-5 || abs >= 1e16) {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		n, _ := strconv.Atoi(exp)
		return mantissa + "e" + strconv.Itoa(n)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}

// numberFromLiteral normalizes a decoded numeric literal. Integers that fit in
// 64 bits keep their digits, everything else goes through float64. A negative
// zero integer is a float, so -0 reads -0.0.
func numberFromLiteral(lit string) (Number, error) {
	if !strings.ContainsAny(lit, ".eE") {
		if n, err := strconv.ParseInt(lit, 10, 64); err == nil {
			if n == 0 && strings.HasPrefix(lit, "-") {
				return Float(math.Copysign(0, -1)), nil
			}
			return Int(n), nil
		}
		if n, err := strconv.ParseUint(lit, 10, 64); err == nil {
			return Number(strconv.FormatUint(n, 10)), nil
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return "", fmt.Errorf("invalid number %q: %w", lit, err)
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "", fmt.Errorf("number out of range: %s", lit)
	}
	return Float(f), nil
}

// FromAny converts plain Go values, as produced by encoding/json or written
// by hand, into a Value. Map keys are sorted alphabetically since Go maps have
// no order of their own.
func FromAny(v any) (Value, error) {
	switch v := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return v, nil
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	case json.Number:
		return numberFromLiteral(string(v))
	case float64:
		return floatValue(v)
	case float32:
		return floatValue(float64(v))
	case int:
		return Int(int64(v)), nil
	case int8:
		return Int(int64(v)), nil
	case int16:
		return Int(int64(v)), nil
	case int32:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	case uint:
		return Number(strconv.FormatUint(uint64(v), 10)), nil
	case uint8:
		return Int(int64(v)), nil
	case uint16:
		return Int(int64(v)), nil
	case uint32:
		return Int(int64(v)), nil
	case uint64:
		return Number(strconv.FormatUint(v, 10)), nil
	case []any:
		arr := make(Array, 0, len(v))
		for i, e := range v {
			ev, err := FromAny(e)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr = append(arr, ev)
		}
		return arr, nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		doc := make(Document, 0, len(v))
		for _, key := range keys {
			ev, err := FromAny(v[key])
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", key, err)
			}
			doc = append(doc, E(key, ev))
		}
		return doc, nil
	default:
		return nil, fmt.Errorf("unsupported type: %s", reflect.TypeOf(v))
	}
}

func floatValue(f float64) (Value, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, fmt.Errorf("unsupported number: %v", f)
	}
	negZero := f == 0 && math.Signbit(f)
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 && !negZero {
		// encoding/json decodes every number as float64; 21 should stay 21.
		return Int(int64(f)), nil
	}
	return Float(f), nil
}
