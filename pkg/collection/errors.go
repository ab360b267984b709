package collection

import "github.com/pkg/errors"

var (
	// ErrInvalidKey is returned when a value cannot be used as a collection key.
	ErrInvalidKey = errors.New("value cannot be used as a key")
	// ErrInvalidJSON is returned when a JSON document cannot be decoded into a collection.
	ErrInvalidJSON = errors.New("invalid json collection")
)
