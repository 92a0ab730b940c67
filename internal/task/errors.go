package task

import "errors"

var (
	ErrEmptyText       = errors.New("task text cannot be empty")
	ErrUnknownPriority = errors.New("unknown priority")
)
