// Package seeder loads fixture data into an already migrated database.
package seeder

import (
	"context"

	"hire-rank/internal/database"
)

// Seeder writes one kind of record. Run must be idempotent.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
