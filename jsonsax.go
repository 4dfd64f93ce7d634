// Package jsonsax is an incremental, pull-style JSON parser that performs
// no heap allocation of its own beyond the string conversion it hands to
// strconv when reading a number. The caller supplies a buffer once; the
// parser uses it both as the object/array nesting stack and as storage
// for the most recently decoded name and string value. Feed it bytes with
// Parse, read the event code it returns, and inspect the Context's public
// fields for the data that goes with that event. When input or buffer
// space runs out mid-document, Parse returns a recoverable code and the
// caller supplies more of either before calling Parse again.
package jsonsax

// Code is the result of a Parse call: either one structural event or a
// diagnostic condition.
type Code int8

const (
	// ErrorInternal means a state requiring a stack top was entered
	// without one. Always a parser bug; fatal.
	ErrorInternal Code = iota - 6
	// ErrorInsufficientMemory means the caller's buffer ran out of
	// space. Recoverable by calling Reallocate with a larger buffer.
	ErrorInsufficientMemory
	// ErrorUnexpectedEOF means the input ran out mid-character or
	// mid-document. Recoverable by calling Parse again with more input.
	ErrorUnexpectedEOF
	// ErrorTokenMismatch means a closing bracket disagreed with its
	// opener ("{" closed by "]", or vice versa). Fatal.
	ErrorTokenMismatch
	// ErrorSyntax covers any other grammar violation. Fatal.
	ErrorSyntax
	// ErrorInvalidInput means a nil/zero argument was passed, or the
	// context was never initialized.
	ErrorInvalidInput
	// noOp is never returned to callers; an internal transition that
	// consumed a character without producing anything to report yet.
	noOp
	// EndOfDocument means the root value has closed. Every subsequent
	// Parse call returns EndOfDocument again.
	EndOfDocument
	// Name means Context.Name now holds the name of a name-value pair.
	// A value, object, or array follows.
	Name
	// Value means a scalar value is available; see Context.ValueType.
	Value
	// ObjectBegin means a new object opened. Context.Name holds its name
	// if it has one.
	ObjectBegin
	// ObjectEnd means an object closed. Context.Name holds its name if
	// it had one.
	ObjectEnd
	// ArrayBegin means a new array opened. Context.Name holds its name
	// if it has one.
	ArrayBegin
	// ArrayEnd means an array closed. Context.Name holds its name if it
	// had one.
	ArrayEnd
)

var codeStrings = map[Code]string{
	ErrorInternal:            "ErrorInternal",
	ErrorInsufficientMemory:  "ErrorInsufficientMemory",
	ErrorUnexpectedEOF:       "ErrorUnexpectedEOF",
	ErrorTokenMismatch:       "ErrorTokenMismatch",
	ErrorSyntax:              "ErrorSyntax",
	ErrorInvalidInput:        "ErrorInvalidInput",
	noOp:                     "<no-op>",
	EndOfDocument:            "EndOfDocument",
	Name:                     "Name",
	Value:                    "Value",
	ObjectBegin:              "ObjectBegin",
	ObjectEnd:                "ObjectEnd",
	ArrayBegin:               "ArrayBegin",
	ArrayEnd:                 "ArrayEnd",
}

// String returns a human-readable name for the code, or "<unknown>" for
// an out-of-range value.
func (c Code) String() string {
	if s, ok := codeStrings[c]; ok {
		return s
	}
	return "<unknown>"
}

// IsError reports whether c is one of the Error* codes.
func (c Code) IsError() bool {
	return c <= ErrorInvalidInput
}

// IsRecoverable reports whether a caller can continue parsing after this
// code by supplying more input (ErrorUnexpectedEOF) or a larger buffer
// (ErrorInsufficientMemory).
func (c Code) IsRecoverable() bool {
	return c == ErrorInsufficientMemory || c == ErrorUnexpectedEOF
}

// ValueType identifies the Go type backing the scalar most recently
// reported via the Value code.
type ValueType int8

const (
	// TypeNone applies between values, e.g. right after ObjectBegin.
	TypeNone ValueType = iota
	// TypeInteger means Context.IntegerValue holds the value.
	TypeInteger
	// TypeFloat means Context.FloatValue holds the value.
	TypeFloat
	// TypeString means Context.StringValue holds the value.
	TypeString
	// TypeBoolean means Context.BoolValue holds the value.
	TypeBoolean
	// TypeNull means the value was the JSON literal null.
	TypeNull
	numValueTypes
)

var valueTypeStrings = [numValueTypes]string{
	"None", "Integer", "Float", "String", "Boolean", "Null",
}

// String returns a human-readable name for the value type, or
// "<unknown>" for an out-of-range value.
func (t ValueType) String() string {
	if t < 0 || t >= numValueTypes {
		return "<unknown>"
	}
	return valueTypeStrings[t]
}
