package filter

// Operator is a recognized field operator tag.
type Operator int

const (
	OpGreaterOrEqual Operator = iota + 1
	OpGreater
	OpLessOrEqual
	OpLess
	OpEqual
	OpNotEqual
	OpIn
	OpNotIn
	OpRegex
	// OpOptions carries regex flags. It is accepted and renders nothing.
	OpOptions
)

var operatorTags = map[string]Operator{
	"$gte":     OpGreaterOrEqual,
	"$gt":      OpGreater,
	"$lte":     OpLessOrEqual,
	"$lt":      OpLess,
	"$eq":      OpEqual,
	"$ne":      OpNotEqual,
	"$in":      OpIn,
	"$nin":     OpNotIn,
	"$regex":   OpRegex,
	"$options": OpOptions,
}

// LookupOperator returns the Operator for a tag such as "$gte".
func LookupOperator(tag string) (Operator, bool) {
	op, ok := operatorTags[tag]
	return op, ok
}

// comparisonSymbols maps the scalar comparison operators to their SQL form.
var comparisonSymbols = map[Operator]string{
	OpGreaterOrEqual: ">=",
	OpGreater:        ">",
	OpLessOrEqual:    "<=",
	OpLess:           "<",
	OpEqual:          "=",
	OpNotEqual:       "!=",
}

// Grouping is a logical key combining a sequence of stages.
type Grouping int

const (
	GroupNone Grouping = iota
	GroupAnd
	GroupOr
	GroupNor
)

var groupingTags = map[string]Grouping{
	"$and": GroupAnd,
	"$or":  GroupOr,
	"$nor": GroupNor,
}

// LookupGrouping returns the Grouping for a key such as "$or".
func LookupGrouping(key string) (Grouping, bool) {
	g, ok := groupingTags[key]
	return g, ok
}

// connective is the SQL keyword joining the members of the group. Only $and
// joins with AND, $nor shares OR with $or.
func (g Grouping) connective() string {
	if g == GroupAnd {
		return " AND "
	}
	return " OR "
}
