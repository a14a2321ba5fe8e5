package database

import "errors"

// PostgreSQL error codes
const (
	pgErrUniqueViolation = "23505"
)

var (
	ErrNotFound             = errors.New("record not found")
	ErrDuplicateQueueNumber = errors.New("queue number already exists")
)
