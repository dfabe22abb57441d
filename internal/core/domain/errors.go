package domain

import "errors"

var (
	// ErrInvalidInput covers malformed or constraint-violating input. Callers
	// wrap it with detail, e.g. fmt.Errorf("title cannot be empty: %w", ...).
	ErrInvalidInput = errors.New("invalid input")

	// ErrTodoNotFound means no todo with the given id exists at all.
	ErrTodoNotFound = errors.New("todo not found")

	// ErrForbidden means the todo exists but belongs to another user. It is
	// only ever checked after existence, so a non-owner probing a random id
	// cannot distinguish "missing" from "not yours".
	ErrForbidden = errors.New("access denied")

	// ErrVersionConflict means the supplied version no longer matches the
	// stored one; the record was modified since the caller last read it.
	ErrVersionConflict = errors.New("version mismatch - todo was modified by another user")

	ErrUserNotFound = errors.New("user not found")
)
