package entities

import (
	"errors"

	pkgerrors "github.com/bryanwahyu/esg-responder/internal/pkg/errors"
)

// ErrNotFound is returned by Update when the id does not exist.
var ErrNotFound = pkgerrors.ErrNotFound

// ErrUnknownCollection indicates a collection name outside the known set.
var ErrUnknownCollection = errors.New("unknown collection")

// ErrCorruptCollection indicates the persisted value could not be decoded as an array of records.
var ErrCorruptCollection = errors.New("corrupt collection data")
