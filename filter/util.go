package filter

// isRegexPair reports whether an operator object is exactly `$regex` with
// its `$options`, in either order.
func isRegexPair(ops Document) bool {
	if len(ops) != 2 {
		return false
	}
	a, _ := LookupOperator(ops[0].Key)
	b, _ := LookupOperator(ops[1].Key)
	return (a == OpRegex && b == OpOptions) || (a == OpOptions && b == OpRegex)
}
