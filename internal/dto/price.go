package dto

import (
	"fmt"
	"time"

	"github.com/CesarAugustusGroB/PriceApp/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LocalTime is a time.Time that marshals as a zone-less ISO-8601 local
// date-time ("2020-06-14T10:00:00"), the wire format used by every date field
// of this API. Offsets are rejected on input.
type LocalTime struct {
	time.Time
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(domain.LocalDateTimeLayout) + `"`), nil
}

func (t *LocalTime) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date-time literal %s", s)
	}
	parsed, err := time.ParseInLocation(domain.LocalDateTimeLayout, s[1:len(s)-1], time.UTC)
	if err != nil {
		return fmt.Errorf("invalid date-time %s: expected format YYYY-MM-DDTHH:MM:SS", s)
	}
	t.Time = parsed
	return nil
}

// CreatePriceRequest defines the payload for admitting a new price record.
// Required fields are pointers so that absent and zero values are told apart;
// range and shape constraints beyond the binding tags live in
// domain.Price.Validate.
type CreatePriceRequest struct {
	BrandID   *int             `json:"brandId" binding:"required,min=1"`
	StartDate *LocalTime       `json:"startDate" binding:"required"`
	EndDate   *LocalTime       `json:"endDate" binding:"required"`
	PriceList *int             `json:"priceList" binding:"required,min=1"`
	ProductID *int             `json:"productId" binding:"required,min=1"`
	Priority  *int             `json:"priority" binding:"required"`
	Price     *decimal.Decimal `json:"price" binding:"required"`
	Currency  string           `json:"currency" binding:"required,uppercase,len=3"`
}

// ToDomain converts the request into a domain Price without an ID. Nil
// pointers become zero values; domain validation reports them.
func (r CreatePriceRequest) ToDomain() domain.Price {
	p := domain.Price{Currency: r.Currency}
	if r.BrandID != nil {
		p.BrandID = *r.BrandID
	}
	if r.StartDate != nil {
		p.StartDate = r.StartDate.Time
	}
	if r.EndDate != nil {
		p.EndDate = r.EndDate.Time
	}
	if r.PriceList != nil {
		p.PriceList = *r.PriceList
	}
	if r.ProductID != nil {
		p.ProductID = *r.ProductID
	}
	if r.Priority != nil {
		p.Priority = *r.Priority
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	return p
}

// PriceResponse defines the data returned for a price record.
type PriceResponse struct {
	ID        int64           `json:"id"`
	BrandID   int             `json:"brandId"`
	StartDate LocalTime       `json:"startDate"`
	EndDate   LocalTime       `json:"endDate"`
	PriceList int             `json:"priceList"`
	ProductID int             `json:"productId"`
	Priority  int             `json:"priority"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency"`
}

// ToPriceResponse converts a domain.Price to its response DTO.
func ToPriceResponse(p *domain.Price) PriceResponse {
	return PriceResponse{
		ID:        p.ID,
		BrandID:   p.BrandID,
		StartDate: LocalTime{p.StartDate},
		EndDate:   LocalTime{p.EndDate},
		PriceList: p.PriceList,
		ProductID: p.ProductID,
		Priority:  p.Priority,
		Price:     p.Price,
		Currency:  p.Currency,
	}
}

// ToListPriceResponse converts a slice of domain prices to response DTOs.
func ToListPriceResponse(prices []domain.Price) []PriceResponse {
	res := make([]PriceResponse, len(prices))
	for i := range prices {
		res[i] = ToPriceResponse(&prices[i])
	}
	return res
}
