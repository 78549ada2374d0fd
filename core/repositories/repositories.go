// Package repositories holds errors shared by every repository.
package repositories

import "errors"

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEntry = errors.New("duplicate entry")
)
