package stream

// Context is the state of one level of the writer's stack.
type Context int

const (
	// Document is the bottom of the stack: top-level values.
	Document Context = iota
	EmptyArray
	NonemptyArray
	EmptyObject
	NonemptyObject
	// DanglingKey means a key was written and its value has not been.
	DanglingKey
)

func (c Context) String() string {
	switch c {
	case Document:
		return "document"
	case EmptyArray:
		return "empty array"
	case NonemptyArray:
		return "array"
	case EmptyObject:
		return "empty object"
	case NonemptyObject:
		return "object"
	case DanglingKey:
		return "dangling key"
	default:
		return "<unknown context>"
	}
}
