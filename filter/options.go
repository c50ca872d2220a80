package filter

// defaultMaxDepth is the nesting limit used when WithMaxDepth is not given.
const defaultMaxDepth = 128

type Option func(*Converter)

// WithMaxDepth is an option to limit how deep $and, $or and $nor groups may
// nest. Deeper filters fail with DepthExceeded instead of recursing further.
// A value of zero or less restores the default of 128.
func WithMaxDepth(depth int) Option {
	return func(c *Converter) {
		c.maxDepth = depth
	}
}

// WithStrictOperators is an option to reject operator objects holding more
// than one operator, such as `{"$gte": 2, "$lt": 10}`. Without it only the
// first operator is used and the others are ignored.
//
// The `$regex` and `$options` pair is always allowed.
func WithStrictOperators() Option {
	return func(c *Converter) {
		c.strictOperators = true
	}
}

// WithNegatedNor is an option to render $nor groups as `NOT (...)`.
//
// By default $nor is rendered exactly like $or, which keeps the output
// compatible with existing consumers of this package.
func WithNegatedNor() Option {
	return func(c *Converter) {
		c.negatedNor = true
	}
}
