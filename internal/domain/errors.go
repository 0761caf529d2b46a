package domain

import "errors"

var (
	ErrIllegalMove      = errors.New("illegal move")
	ErrUnknownPile      = errors.New("unknown pile")
	ErrInvalidDrawCount = errors.New("draw count must be 1 or 3")
)
