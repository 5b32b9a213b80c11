package stream

import (
	"fmt"
	"io"
	"strings"

	"github.com/signadot/respack/key"
)

// Writer writes JSON documents to an io.Writer. See the package
// documentation for usage and error semantics.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	out    io.Writer
	stack  []Context
	key    string
	hasKey bool

	indent string
	sep    string
	keyNS  string
	colors *Colors

	err error
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithIndent enables pretty printing; see [Writer.Indent].
func WithIndent(indent string) WriterOption {
	return func(w *Writer) { w.Indent(indent) }
}

// WithColors colours output for terminals. A nil c disables colouring.
func WithColors(c *Colors) WriterOption {
	return func(w *Writer) { w.colors = c }
}

// WithKeyNamespace sets the namespace omitted when writing key.Key values.
// It defaults to key.DefaultNamespace.
func WithKeyNamespace(ns string) WriterOption {
	return func(w *Writer) { w.keyNS = ns }
}

func NewWriter(out io.Writer, opts ...WriterOption) *Writer {
	w := &Writer{
		out:   out,
		stack: make([]Context, 1, 8),
		sep:   ":",
		keyNS: key.DefaultNamespace,
	}
	w.stack[0] = Document
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Indent sets the indentation string. The empty string gives compact
// output; anything else starts each element on a new line indented by s
// per depth and separates keys from values with ": ".
func (w *Writer) Indent(s string) *Writer {
	w.indent = s
	if s == "" {
		w.sep = ":"
	} else {
		w.sep = ": "
	}
	return w
}

// Err returns the first error recorded by w.
func (w *Writer) Err() error {
	return w.err
}

// Finish reports the recorded error, or ErrIncomplete if a document is
// still open.
func (w *Writer) Finish() error {
	if w.err != nil {
		return w.err
	}
	if w.hasKey {
		return fmt.Errorf("%w: %q", ErrDanglingKey, w.key)
	}
	if len(w.stack) != 1 {
		return fmt.Errorf("%w: %s open at depth %d", ErrIncomplete, w.peek(), w.Depth())
	}
	return nil
}

// Depth is the number of open objects and arrays.
func (w *Writer) Depth() int {
	return len(w.stack) - 1
}

// Context returns the context on top of the stack.
func (w *Writer) Context() Context {
	return w.peek()
}

// Write copies p to the underlying writer as is. It is used for binary
// payloads sharing the sink of a Writer and does not affect the stack.
func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.out.Write(p)
	if err != nil {
		w.err = err
	}
	return n, err
}

func (w *Writer) StartObject() *Writer {
	return w.open(EmptyObject, "{")
}

func (w *Writer) EndObject() *Writer {
	return w.close(EmptyObject, NonemptyObject, "}")
}

func (w *Writer) StartArray() *Writer {
	return w.open(EmptyArray, "[")
}

func (w *Writer) EndArray() *Writer {
	return w.close(EmptyArray, NonemptyArray, "]")
}

// Key records name as the key of the next value. It is written only when
// the value is.
func (w *Writer) Key(name string) *Writer {
	if w.err != nil {
		return w
	}
	if w.hasKey {
		w.fail(fmt.Errorf("%w: key %q after pending key %q", ErrNesting, name, w.key))
		return w
	}
	w.key = name
	w.hasKey = true
	return w
}

// KeyValue is shorthand for Key(name).Value(v).
func (w *Writer) KeyValue(name string, v any) *Writer {
	return w.Key(name).Value(v)
}

func (w *Writer) open(c Context, bracket string) *Writer {
	if !w.prepareValue() {
		return w
	}
	w.stack = append(w.stack, c)
	w.punct(bracket)
	return w
}

func (w *Writer) close(empty, nonempty Context, bracket string) *Writer {
	if w.err != nil {
		return w
	}
	c := w.peek()
	if c != empty && c != nonempty {
		w.fail(fmt.Errorf("%w: %q in %s", ErrNesting, bracket, c))
		return w
	}
	if w.hasKey {
		w.fail(fmt.Errorf("%w: %q", ErrDanglingKey, w.key))
		return w
	}
	w.stack = w.stack[:len(w.stack)-1]
	if c == nonempty {
		w.newline()
	}
	w.punct(bracket)
	return w
}

// prepareValue writes any pending key and the separator due before a value.
// It reports whether the value may be written.
func (w *Writer) prepareValue() bool {
	if w.err != nil {
		return false
	}
	if w.hasKey {
		w.beforeKey()
		w.writeKey(w.key)
		w.hasKey = false
		w.key = ""
	}
	w.beforeValue()
	return w.err == nil
}

func (w *Writer) beforeKey() {
	switch c := w.peek(); c {
	case NonemptyObject:
		w.punct(",")
	case EmptyObject:
	default:
		w.fail(fmt.Errorf("%w: key %q in %s", ErrNesting, w.key, c))
		return
	}
	w.newline()
	w.replace(DanglingKey)
}

func (w *Writer) beforeValue() {
	switch c := w.peek(); c {
	case Document:
	case EmptyArray:
		w.replace(NonemptyArray)
		w.newline()
	case NonemptyArray:
		w.punct(",")
		w.newline()
	case DanglingKey:
		w.punct(w.sep)
		w.replace(NonemptyObject)
	default:
		w.fail(fmt.Errorf("%w: value without key in %s", ErrNesting, c))
	}
}

func (w *Writer) peek() Context {
	return w.stack[len(w.stack)-1]
}

func (w *Writer) replace(c Context) {
	w.stack[len(w.stack)-1] = c
}

func (w *Writer) newline() {
	if w.indent == "" {
		return
	}
	w.raw("\n" + strings.Repeat(w.indent, len(w.stack)-1))
}

func (w *Writer) fail(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *Writer) raw(s string) {
	if w.err != nil {
		return
	}
	if _, err := io.WriteString(w.out, s); err != nil {
		w.err = err
	}
}
