package domain

import "errors"

var (
	ErrBossNotFound = errors.New("boss not found")
	ErrInvalidCount = errors.New("invalid kill count")
)
