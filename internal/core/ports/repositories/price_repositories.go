package repositories

import (
	"context"
	"time"

	"github.com/CesarAugustusGroB/PriceApp/internal/core/domain"
)

// PriceReader defines read operations for price data
type PriceReader interface {
	// FindApplicablePrices retrieves every price whose validity window contains
	// the given instant for the product/brand pair, ordered by priority
	// descending.
	FindApplicablePrices(ctx context.Context, productID, brandID int, at time.Time) ([]domain.Price, error)

	// FindByProductBrandStartDate retrieves the price matching the admission
	// uniqueness key exactly, or apperrors.ErrNotFound.
	FindByProductBrandStartDate(ctx context.Context, productID, brandID int, startDate time.Time) (*domain.Price, error)
}

// PriceWriter defines write operations for price data
type PriceWriter interface {
	// SavePrice persists a new price and returns it with its generated ID.
	// A concurrent insert on the same (product, brand, startDate) key surfaces
	// as apperrors.ErrDuplicate.
	SavePrice(ctx context.Context, price domain.Price) (*domain.Price, error)

	// DeletePrice removes the price with the given ID, or returns
	// apperrors.ErrNotFound when no such row exists.
	DeletePrice(ctx context.Context, id int64) error
}

// PriceRepositoryFacade combines all price-related repository interfaces
type PriceRepositoryFacade interface {
	PriceReader
	PriceWriter
}
