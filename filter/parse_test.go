package filter_test

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/poki/mongodb-filter-to-sql/filter"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  filter.Value
	}{
		{
			"keys keep document order",
			`{"b": 1, "a": {"$in": ["x", null]}, "c": true}`,
			filter.D(
				filter.E("b", filter.Int(1)),
				filter.E("a", filter.D(filter.E("$in", filter.A(filter.String("x"), filter.Null{})))),
				filter.E("c", filter.Bool(true)),
			),
		},
		{
			"numbers are normalized",
			`[1, -0, 1.50, 1e2, 1e21, 0.0000015, 18446744073709551615]`,
			filter.A(
				filter.Number("1"),
				filter.Number("-0.0"),
				filter.Number("1.5"),
				filter.Number("100.0"),
				filter.Number("1e21"),
				filter.Number("1.5e-6"),
				filter.Number("18446744073709551615"),
			),
		},
		{
			"duplicate key keeps first position and last value",
			`{"a": 1, "b": 2, "a": 3}`,
			filter.D(
				filter.E("a", filter.Int(3)),
				filter.E("b", filter.Int(2)),
			),
		},
		{
			"duplicate grouping key",
			`{"$and": [], "$or": [], "$and": [{}]}`,
			filter.D(
				filter.E("$and", filter.A(filter.Document{})),
				filter.E("$or", filter.Array{}),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := filter.Parse([]byte(tt.input))
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, input := range []string{``, `{`, `{"a": 1} {"b": 2}`, `{"a": }`, `[1, 2`} {
		if _, err := filter.Parse([]byte(input)); err == nil {
			t.Errorf("Parse(%q) error = nil, want error", input)
		}
	}
}

func TestParse_MaxDepth(t *testing.T) {
	_, err := filter.Parse([]byte(strings.Repeat("[", 1_000_000)))
	if err == nil || !strings.Contains(err.Error(), "exceeded max depth of 10000") {
		t.Errorf("Parse() error = %v, want max depth error", err)
	}

	_, err = filter.NewConverter().Convert([]byte(strings.Repeat(`{"$and": [`, 20_000)))
	if err == nil || !strings.Contains(err.Error(), "exceeded max depth of 10000") {
		t.Errorf("Converter.Convert() error = %v, want max depth error", err)
	}

	nested := strings.Repeat("[", 10_000) + strings.Repeat("]", 10_000)
	if _, err := filter.Parse([]byte(nested)); err != nil {
		t.Errorf("Parse() at depth 10000 error = %v", err)
	}
}

func TestParseYAML_DuplicateKey(t *testing.T) {
	got, err := filter.ParseYAML([]byte("a: 1\nb: 2\na: 3\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := filter.D(filter.E("a", filter.Int(3)), filter.E("b", filter.Int(2)))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseYAML() = %#v, want %#v", got, want)
	}
}

func TestParseYAML_NegativeZero(t *testing.T) {
	got, err := filter.ParseYAML([]byte("a: -0\nb: -0.0\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := filter.D(filter.E("a", filter.Number("-0.0")), filter.E("b", filter.Number("-0.0")))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseYAML() = %#v, want %#v", got, want)
	}
}

func TestParseYAML(t *testing.T) {
	input := `
$and:
  - status: active
  - age:
      $gte: 21
  - score:
      $lt: 2.5
  - deleted_at: null
  - admin: true
`
	got, err := filter.ParseYAML([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	want := filter.D(filter.E("$and", filter.A(
		filter.D(filter.E("status", filter.String("active"))),
		filter.D(filter.E("age", filter.D(filter.E("$gte", filter.Int(21))))),
		filter.D(filter.E("score", filter.D(filter.E("$lt", filter.Float(2.5))))),
		filter.D(filter.E("deleted_at", filter.Null{})),
		filter.D(filter.E("admin", filter.Bool(true))),
	)))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseYAML() = %#v, want %#v", got, want)
	}

	conditions, err := filter.ToSQL(got)
	if err != nil {
		t.Fatal(err)
	}
	if want := `((status = "active") AND (age >= 21) AND (score < 2.5) AND (deleted_at = null) AND (admin = true))`; conditions != want {
		t.Errorf("ToSQL() conditions = %v, want %v", conditions, want)
	}
}

func TestParseYAML_JSONInput(t *testing.T) {
	input := `{"status": {"$in": ["active", "pending"]}, "age": {"$gte": 21}}`
	fromYAML, err := filter.ParseYAML([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	fromJSON, err := filter.Parse([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(fromYAML, fromJSON) {
		t.Errorf("ParseYAML() = %#v, want %#v", fromYAML, fromJSON)
	}
}

func TestParseYAML_Alias(t *testing.T) {
	input := `
statuses: &s ["a", "b"]
status:
  $in: *s
`
	got, err := filter.ParseYAML([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	want := filter.D(
		filter.E("statuses", filter.A(filter.String("a"), filter.String("b"))),
		filter.E("status", filter.D(filter.E("$in", filter.A(filter.String("a"), filter.String("b"))))),
	)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseYAML() = %#v, want %#v", got, want)
	}
}

func TestParseYAML_Errors(t *testing.T) {
	for _, input := range []string{``, `a: [1, 2`, "? [a, b]\n: 1\n"} {
		if _, err := filter.ParseYAML([]byte(input)); err == nil {
			t.Errorf("ParseYAML(%q) error = nil, want error", input)
		}
	}
}

func TestFromAny(t *testing.T) {
	var decoded map[string]any
	if err := json.Unmarshal([]byte(`{"name": "John", "age": {"$gte": 21}, "tags": ["a", 1.5, false, null]}`), &decoded); err != nil {
		t.Fatal(err)
	}

	got, err := filter.FromAny(decoded)
	if err != nil {
		t.Fatal(err)
	}
	want := filter.D(
		filter.E("age", filter.D(filter.E("$gte", filter.Int(21)))),
		filter.E("name", filter.String("John")),
		filter.E("tags", filter.A(filter.String("a"), filter.Float(1.5), filter.Bool(false), filter.Null{})),
	)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromAny() = %#v, want %#v", got, want)
	}

	if _, err := filter.FromAny(map[string]any{"ch": make(chan int)}); err == nil {
		t.Error("FromAny(chan) error = nil, want error")
	}
}

func TestFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want filter.Number
	}{
		{0, "0.0"},
		{math.Copysign(0, -1), "-0.0"},
		{21, "21.0"},
		{-2.5, "-2.5"},
		{0.00001, "0.00001"},
		{0.000001, "1e-6"},
		{9999999999999998, "9999999999999998.0"},
		{1e16, "1e16"},
		{1.5e300, "1.5e300"},
	}
	for _, tt := range tests {
		if got := filter.Float(tt.in); got != tt.want {
			t.Errorf("Float(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
