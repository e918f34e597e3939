package apperror

import "errors"

var (
	ErrIllegalMove      = errors.New("illegal move")
	ErrOutOfRange       = errors.New("move index out of range")
	ErrInvalidSortOrder = errors.New("invalid sort order")
	ErrCorruptedGame    = errors.New("corrupted game history")
)
