// Package store provides the per-entity persistence adapters over a shared
// gorm connection. Each adapter translates gorm's sentinel errors into the
// package's own so handlers never import gorm.
package store

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrNotFound signals that no row matched the query.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate signals a unique-constraint violation. The database is the
// final arbiter here; application-level pre-checks only improve messages.
var ErrDuplicate = errors.New("duplicate value for unique field")

// translate maps gorm errors onto the package sentinels and annotates
// anything unexpected with the failing operation.
func translate(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return errors.Wrap(err, op)
	}
}
