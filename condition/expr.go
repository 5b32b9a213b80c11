package condition

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Env is the environment compiled conditions run against.
type Env struct {
	Props map[string]string `expr:"props"`
}

// Expr renders c as an expr-lang boolean expression over props.
func Expr(c Condition) string {
	buf := &strings.Builder{}
	writeExpr(buf, c)
	return buf.String()
}

func writeExpr(buf *strings.Builder, c Condition) {
	switch c.kind {
	case KindNone:
		buf.WriteString("true")
	case KindMatch:
		alts := strings.Split(valueString(c.value), "|")
		fmt.Fprintf(buf, "props[%s] in [", strconv.Quote(c.key))
		for i, alt := range alts {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(strconv.Quote(alt))
		}
		buf.WriteByte(']')
	case KindAnd, KindOr:
		op := " && "
		if c.kind == KindOr {
			op = " || "
		}
		buf.WriteByte('(')
		for i, child := range c.children {
			if i > 0 {
				buf.WriteString(op)
			}
			writeExpr(buf, child)
		}
		buf.WriteByte(')')
	}
}

func Compile(c Condition) (*vm.Program, error) {
	return CompileString(Expr(c))
}

// CompileString compiles a hand written expression over props.
func CompileString(src string) (*vm.Program, error) {
	prog, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling %q: %w", src, err)
	}
	return prog, nil
}

func Eval(prog *vm.Program, props map[string]string) (bool, error) {
	out, err := expr.Run(prog, Env{Props: props})
	if err != nil {
		return false, err
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("condition evaluated to %T", out)
	}
	return b, nil
}
