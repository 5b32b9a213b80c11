package ir

import "errors"

var (
	ErrType = errors.New("type error")
	ErrPath = errors.New("bad path")
)
