package repository

import (
	"context"

	"deal-underwriter/domain"
)

// ListingSource supplies raw listing rows. Derived fields (id, full address,
// price per unit) are filled in by the caller.
type ListingSource interface {
	LoadListings(ctx context.Context) ([]domain.Listing, error)
	Close() error
}
