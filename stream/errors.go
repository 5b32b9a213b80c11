package stream

import (
	"errors"
	"fmt"
)

var (
	ErrNesting          = errors.New("nesting error")
	ErrDanglingKey      = fmt.Errorf("%w: dangling key", ErrNesting)
	ErrIncomplete       = fmt.Errorf("%w: incomplete document", ErrNesting)
	ErrUnsupportedValue = errors.New("unsupported value")
)
