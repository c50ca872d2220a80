package filter

import (
	"fmt"
	"strconv"
)

// ErrorKind tells which rule a filter broke.
type ErrorKind int

const (
	// InvalidOperandValue is returned when $and, $or or $nor is not given an array.
	InvalidOperandValue ErrorKind = iota + 1
	// InvalidRegexValue is returned when the $regex operand is not a string.
	InvalidRegexValue
	// UnsupportedOperator is returned for an operator tag outside the known set.
	UnsupportedOperator
	// MissingOperator is returned for a field mapped to an empty object.
	MissingOperator
	// InvalidStage is returned when a stage is not an object.
	InvalidStage
	// AmbiguousOperator is returned in strict mode for an object with several operators.
	AmbiguousOperator
	// DepthExceeded is returned when the filter nests deeper than the configured limit.
	DepthExceeded
)

var kindNames = map[ErrorKind]string{
	InvalidOperandValue: "InvalidOperandValue",
	InvalidRegexValue:   "InvalidRegexValue",
	UnsupportedOperator: "UnsupportedOperator",
	MissingOperator:     "MissingOperator",
	InvalidStage:        "InvalidStage",
	AmbiguousOperator:   "AmbiguousOperator",
	DepthExceeded:       "DepthExceeded",
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
}

var (
	ErrInvalidOperandValue = &Error{Kind: InvalidOperandValue}
	ErrInvalidRegexValue   = &Error{Kind: InvalidRegexValue}
	ErrUnsupportedOperator = &Error{Kind: UnsupportedOperator}
	ErrMissingOperator     = &Error{Kind: MissingOperator}
	ErrInvalidStage        = &Error{Kind: InvalidStage}
	ErrAmbiguousOperator   = &Error{Kind: AmbiguousOperator}
	ErrDepthExceeded       = &Error{Kind: DepthExceeded}
)

// Error is returned for every filter that cannot be translated. Key holds the
// offending key or operator tag, Value the offending value, depending on Kind.
type Error struct {
	Kind  ErrorKind
	Key   string
	Value Value
}

func (e *Error) Error() string {
	switch e.Kind {
	case InvalidOperandValue:
		return fmt.Sprintf("invalid operand `%s`", e.Key)
	case InvalidRegexValue:
		return fmt.Sprintf("invalid regex `%s`", render(e.Value))
	case UnsupportedOperator:
		return fmt.Sprintf("unsupported operator `%s`", e.Key)
	case MissingOperator:
		return fmt.Sprintf("missing operator `%s`", e.Key)
	case InvalidStage:
		return fmt.Sprintf("invalid stage `%s`", render(e.Value))
	case AmbiguousOperator:
		return fmt.Sprintf("ambiguous operator `%s`: %s", e.Key, render(e.Value))
	case DepthExceeded:
		return fmt.Sprintf("filter exceeds maximum depth of %s", render(e.Value))
	default:
		return "invalid filter"
	}
}

// Is reports whether target is an *Error of the same kind, so the exported
// sentinels match through errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}
