package services

import (
	"context"

	"github.com/CesarAugustusGroB/PriceApp/internal/core/domain"
	"github.com/CesarAugustusGroB/PriceApp/internal/dto"
)

// PriceResolverSvc defines the read side: resolving applicable prices.
type PriceResolverSvc interface {
	// ResolvePrices returns every price applicable to the product/brand at the
	// given local date-time string, highest priority first.
	ResolvePrices(ctx context.Context, productID, brandID int, date string) ([]domain.Price, error)
}

// PriceAdmissionSvc defines the write side: creating and deleting prices.
type PriceAdmissionSvc interface {
	// CreatePrice validates and persists a new price record.
	CreatePrice(ctx context.Context, req dto.CreatePriceRequest) (*domain.Price, error)

	// DeletePrice removes a price by its ID.
	DeletePrice(ctx context.Context, id int64) error
}

// PriceSvcFacade combines all price-related service interfaces
type PriceSvcFacade interface {
	PriceResolverSvc
	PriceAdmissionSvc
}
