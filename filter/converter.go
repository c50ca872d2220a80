package filter

import (
	"strconv"
	"strings"
)

// Converter translates filter documents into SQL predicates. The zero value
// is ready to use and behaves like NewConverter() without options.
type Converter struct {
	maxDepth        int
	strictOperators bool
	negatedNor      bool
}

// NewConverter creates a new Converter.
func NewConverter(options ...Option) *Converter {
	converter := &Converter{}
	for _, option := range options {
		if option != nil {
			option(converter)
		}
	}
	return converter
}

// ToSQL translates stage with the default Converter.
func ToSQL(stage Value) (string, error) {
	return (&Converter{}).ConvertValue(stage)
}

// Convert parses a JSON filter and translates it into a SQL predicate that
// can be placed after WHERE.
func (c *Converter) Convert(query []byte) (string, error) {
	stage, err := Parse(query)
	if err != nil {
		return "", err
	}
	return c.ConvertValue(stage)
}

// ConvertValue translates an already decoded filter. Any error is an *Error.
func (c *Converter) ConvertValue(stage Value) (string, error) {
	return c.convertStage(stage, 1)
}

func (c *Converter) depthLimit() int {
	if c.maxDepth <= 0 {
		return defaultMaxDepth
	}
	return c.maxDepth
}

// convertStage renders the field conditions of one stage in order, then the
// group of the last $and, $or or $nor key seen in it.
func (c *Converter) convertStage(stage Value, depth int) (string, error) {
	if depth > c.depthLimit() {
		return "", &Error{Kind: DepthExceeded, Value: Int(int64(c.depthLimit()))}
	}

	doc, ok := stage.(Document)
	if !ok {
		return "", &Error{Kind: InvalidStage, Value: stage}
	}

	var sql strings.Builder
	group := GroupNone
	var members Array

	for _, field := range doc {
		if g, ok := LookupGrouping(field.Key); ok {
			arr, ok := field.Value.(Array)
			if !ok {
				return "", &Error{Kind: InvalidOperandValue, Key: field.Key, Value: field.Value}
			}
			group, members = g, arr
			continue
		}

		switch v := field.Value.(type) {
		case Document:
			cond, err := c.convertOperator(field.Key, v)
			if err != nil {
				return "", err
			}
			sql.WriteString(cond)
		default:
			sql.WriteString(field.Key + " = " + render(v))
		}
	}

	if group != GroupNone && len(members) > 0 {
		combined, err := c.combine(group, members, depth)
		if err != nil {
			return "", err
		}
		sql.WriteString(combined)
	}

	return sql.String(), nil
}

// convertOperator renders `{key: {op: operand}}`. Only the first entry of ops
// is used.
func (c *Converter) convertOperator(key string, ops Document) (string, error) {
	if len(ops) == 0 {
		return "", &Error{Kind: MissingOperator, Key: key}
	}
	if c.strictOperators && len(ops) > 1 && !isRegexPair(ops) {
		return "", &Error{Kind: AmbiguousOperator, Key: key, Value: ops}
	}

	tag, operand := ops[0].Key, ops[0].Value
	op, ok := LookupOperator(tag)
	if !ok {
		return "", &Error{Kind: UnsupportedOperator, Key: tag, Value: operand}
	}

	switch op {
	case OpGreaterOrEqual, OpGreater, OpLessOrEqual, OpLess, OpEqual, OpNotEqual:
		return key + " " + comparisonSymbols[op] + " " + render(operand), nil
	case OpIn:
		return key + " IN (" + renderList(operand) + ")", nil
	case OpNotIn:
		return key + " NOT IN (" + renderList(operand) + ")", nil
	case OpRegex:
		pattern, ok := operand.(String)
		if !ok {
			return "", &Error{Kind: InvalidRegexValue, Key: key, Value: operand}
		}
		return key + " ~ '" + string(pattern) + "'", nil
	case OpOptions:
		return "", nil
	default:
		return "", &Error{Kind: UnsupportedOperator, Key: tag, Value: operand}
	}
}

// combine translates every member of a group, wraps each in parentheses and
// joins them with the group's connective. The first failing member aborts.
func (c *Converter) combine(group Grouping, members Array, depth int) (string, error) {
	parts := make([]string, 0, len(members))
	for _, member := range members {
		sub, err := c.convertStage(member, depth+1)
		if err != nil {
			return "", err
		}
		parts = append(parts, "("+sub+")")
	}

	combined := "(" + strings.Join(parts, group.connective()) + ")"
	if group == GroupNor && c.negatedNor {
		combined = "NOT " + combined
	}
	return combined, nil
}

// String describes the converter options, mostly for diagnostics.
func (c *Converter) String() string {
	return "Converter{maxDepth: " + strconv.Itoa(c.depthLimit()) +
		", strictOperators: " + strconv.FormatBool(c.strictOperators) +
		", negatedNor: " + strconv.FormatBool(c.negatedNor) + "}"
}
