package domain

import (
	"time"

	"github.com/CesarAugustusGroB/PriceApp/internal/apperrors"
	"github.com/shopspring/decimal"
)

// LocalDateTimeLayout is the zone-less ISO-8601 layout used everywhere a date
// crosses the API boundary (query params, JSON payloads).
const LocalDateTimeLayout = "2006-01-02T15:04:05"

// Price represents a priced offer for a product/brand over a validity window.
// Records are immutable after creation; the only lifecycle transition is a
// hard delete.
type Price struct {
	ID        int64           `json:"id"`        // Server-assigned, unique
	BrandID   int             `json:"brandId"`   // Positive
	StartDate time.Time       `json:"startDate"` // Window start, inclusive
	EndDate   time.Time       `json:"endDate"`   // Window end, inclusive
	PriceList int             `json:"priceList"` // Pricing tier identifier, positive
	ProductID int             `json:"productId"` // Positive
	Priority  int             `json:"priority"`  // Higher wins among overlapping windows
	Price     decimal.Decimal `json:"price"`     // Positive amount
	Currency  string          `json:"currency"`  // 3 uppercase letters (ISO-4217 shaped)
}

// Validate checks every field constraint eagerly and returns a ValidationError
// holding one message per offending field, or nil when the record is valid.
// The record must not be persisted unless this passes.
func (p Price) Validate() error {
	fields := map[string]string{}

	if p.BrandID < 1 {
		fields["brandId"] = "The brand id must be greater than 0"
	}
	if p.ProductID < 1 {
		fields["productId"] = "The product id must be greater than 0"
	}
	if p.PriceList < 1 {
		fields["priceList"] = "The price list must be greater than 0"
	}
	if p.StartDate.IsZero() {
		fields["startDate"] = "The start date must not be null"
	}
	if p.EndDate.IsZero() {
		fields["endDate"] = "The end date must not be null"
	} else if !p.StartDate.IsZero() && !p.EndDate.After(p.StartDate) {
		fields["endDate"] = "The end date must be after the start date"
	}
	if !p.Price.IsPositive() {
		fields["price"] = "The price must be greater than 0"
	}
	if !isCurrencyCode(p.Currency) {
		fields["currency"] = "The currency must be a 3-letter uppercase ISO code"
	}

	if len(fields) > 0 {
		return apperrors.NewValidationError(fields)
	}
	return nil
}

// Applies reports whether the validity window contains the given instant,
// inclusive on both ends.
func (p Price) Applies(at time.Time) bool {
	return !at.Before(p.StartDate) && !at.After(p.EndDate)
}

func isCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
