package services

import "errors"

var (
	ErrNotFound     = errors.New("document not found")
	ErrTaskNotFound = errors.New("task not found to update")
	ErrInvalidID    = errors.New("invalid id")
)
