package apperror

import "errors"

var (
	ErrIndexOutOfRange   = errors.New("square index out of range")
	ErrEmptySquareText   = errors.New("square text is empty")
	ErrSquareTextTooLong = errors.New("square text is too long")
	ErrBoardNotFound     = errors.New("board not found")
	ErrListsNotFound     = errors.New("resolution lists not found")
	ErrNotFound          = errors.New("not found")
	ErrInvalidBoardData  = errors.New("invalid board data")
	ErrInvalidListsData  = errors.New("invalid lists data")
	ErrUnauthorized      = errors.New("unauthorized")
)
