package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/CesarAugustusGroB/PriceApp/internal/apperrors"
	"github.com/CesarAugustusGroB/PriceApp/internal/core/domain"
	portsrepo "github.com/CesarAugustusGroB/PriceApp/internal/core/ports/repositories"
	"github.com/CesarAugustusGroB/PriceApp/internal/dto"
)

// Stable user-facing messages for resolve-parameter failures.
const (
	MsgInvalidDateFormat = "Invalid date format. Please use the ISO 8601 format: YYYY-MM-DDTHH:MM:SS"
	MsgInvalidParameters = "The request contains invalid parameters."
	MsgDuplicatePrice    = "The price for this product, brand, and date already exists."
)

// PriceService implements price resolution and admission on top of the
// repository port. It holds no state of its own.
type PriceService struct {
	priceRepo portsrepo.PriceRepositoryFacade
}

func NewPriceService(priceRepo portsrepo.PriceRepositoryFacade) *PriceService {
	return &PriceService{priceRepo: priceRepo}
}

// ResolvePrices returns every price applicable to the product/brand at the
// given local date-time string, highest priority first. An empty match is
// reported as ErrNotFound.
func (s *PriceService) ResolvePrices(ctx context.Context, productID, brandID int, date string) ([]domain.Price, error) {
	fields := map[string]string{}
	if productID < 1 {
		fields["productId"] = "The product id must be greater than 0"
	}
	if brandID < 1 {
		fields["brandId"] = "The brand id must be greater than 0"
	}
	if len(fields) > 0 {
		return nil, apperrors.NewValidationErrorWithMessage(MsgInvalidParameters, fields)
	}

	at, err := time.ParseInLocation(domain.LocalDateTimeLayout, date, time.UTC)
	if err != nil {
		return nil, apperrors.NewValidationErrorWithMessage(MsgInvalidDateFormat, nil)
	}

	prices, err := s.priceRepo.FindApplicablePrices(ctx, productID, brandID, at)
	if err != nil {
		return nil, apperrors.NewStorageError("find applicable prices", err)
	}
	if len(prices) == 0 {
		return nil, fmt.Errorf("no applicable price for product %d, brand %d at %s: %w",
			productID, brandID, date, apperrors.ErrNotFound)
	}
	return prices, nil
}

// CreatePrice validates the candidate, rejects duplicates on the
// (product, brand, startDate) key and persists the record, returning it with
// its generated ID.
func (s *PriceService) CreatePrice(ctx context.Context, req dto.CreatePriceRequest) (*domain.Price, error) {
	price := req.ToDomain()
	if err := price.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.priceRepo.FindByProductBrandStartDate(ctx, price.ProductID, price.BrandID, price.StartDate)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NewStorageError("duplicate check", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%s: %w", MsgDuplicatePrice, apperrors.ErrDuplicate)
	}

	saved, err := s.priceRepo.SavePrice(ctx, price)
	if err != nil {
		// A concurrent creator may win the race between the check above and
		// the insert; the unique index reports it as ErrDuplicate.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%s: %w", MsgDuplicatePrice, apperrors.ErrDuplicate)
		}
		return nil, apperrors.NewStorageError("save price", err)
	}
	return saved, nil
}

// DeletePrice removes the price with the given ID. Deleting an ID that does
// not exist reports ErrNotFound rather than succeeding silently.
func (s *PriceService) DeletePrice(ctx context.Context, id int64) error {
	if id < 1 {
		return apperrors.NewValidationErrorWithMessage(MsgInvalidParameters, map[string]string{
			"id": "The id must be greater than 0",
		})
	}
	if err := s.priceRepo.DeletePrice(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return apperrors.NewStorageError("delete price", err)
	}
	return nil
}
