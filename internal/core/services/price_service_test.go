package services_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/CesarAugustusGroB/PriceApp/internal/apperrors"
	"github.com/CesarAugustusGroB/PriceApp/internal/core/domain"
	portssvc "github.com/CesarAugustusGroB/PriceApp/internal/core/ports/services"
	"github.com/CesarAugustusGroB/PriceApp/internal/core/services"
	"github.com/CesarAugustusGroB/PriceApp/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PriceRepository ---
type MockPriceRepository struct {
	mock.Mock
}

func (m *MockPriceRepository) FindApplicablePrices(ctx context.Context, productID, brandID int, at time.Time) ([]domain.Price, error) {
	args := m.Called(ctx, productID, brandID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Price), args.Error(1)
}

func (m *MockPriceRepository) FindByProductBrandStartDate(ctx context.Context, productID, brandID int, startDate time.Time) (*domain.Price, error) {
	args := m.Called(ctx, productID, brandID, startDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Price), args.Error(1)
}

func (m *MockPriceRepository) SavePrice(ctx context.Context, price domain.Price) (*domain.Price, error) {
	args := m.Called(ctx, price)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Price), args.Error(1)
}

func (m *MockPriceRepository) DeletePrice(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Test helpers ---

func localTime(value string) time.Time {
	t, err := time.ParseInLocation(domain.LocalDateTimeLayout, value, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func validCreateRequest() dto.CreatePriceRequest {
	brandID, priceList, productID, priority := 1, 2, 99999, 0
	start := dto.LocalTime{Time: localTime("2021-01-01T00:00:00")}
	end := dto.LocalTime{Time: localTime("2021-12-31T23:59:59")}
	price := decimal.NewFromFloat(49.99)
	return dto.CreatePriceRequest{
		BrandID:   &brandID,
		StartDate: &start,
		EndDate:   &end,
		PriceList: &priceList,
		ProductID: &productID,
		Priority:  &priority,
		Price:     &price,
		Currency:  "USD",
	}
}

// --- Test Suite ---
type PriceServiceTestSuite struct {
	suite.Suite
	mockRepo *MockPriceRepository
	service  portssvc.PriceSvcFacade
}

func (suite *PriceServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPriceRepository)
	suite.service = services.NewPriceService(suite.mockRepo)
}

// --- Resolve ---

func (suite *PriceServiceTestSuite) TestResolvePrices_SingleMatch() {
	ctx := context.Background()
	at := localTime("2020-06-14T10:00:00")
	expected := []domain.Price{{ID: 1, ProductID: 35455, BrandID: 1, Priority: 0, Price: decimal.NewFromFloat(35.50)}}

	suite.mockRepo.On("FindApplicablePrices", ctx, 35455, 1, at).Return(expected, nil).Once()

	prices, err := suite.service.ResolvePrices(ctx, 35455, 1, "2020-06-14T10:00:00")

	suite.Require().NoError(err)
	suite.Equal(expected, prices)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PriceServiceTestSuite) TestResolvePrices_NotFound() {
	ctx := context.Background()
	at := localTime("2020-06-14T10:00:00")

	suite.mockRepo.On("FindApplicablePrices", ctx, 99999, 1, at).Return([]domain.Price{}, nil).Once()

	prices, err := suite.service.ResolvePrices(ctx, 99999, 1, "2020-06-14T10:00:00")

	suite.Require().Error(err)
	suite.Nil(prices)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PriceServiceTestSuite) TestResolvePrices_InvalidDate() {
	ctx := context.Background()

	prices, err := suite.service.ResolvePrices(ctx, 35455, 1, "invalid-date-format")

	suite.Require().Error(err)
	suite.Nil(prices)
	suite.ErrorIs(err, apperrors.ErrValidation)

	var validationErr *apperrors.ValidationError
	suite.Require().ErrorAs(err, &validationErr)
	suite.Equal(services.MsgInvalidDateFormat, validationErr.Message)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindApplicablePrices")
}

func (suite *PriceServiceTestSuite) TestResolvePrices_InvalidIDs() {
	ctx := context.Background()

	prices, err := suite.service.ResolvePrices(ctx, -1, -1, "2020-06-14T10:00:00")

	suite.Require().Error(err)
	suite.Nil(prices)
	suite.ErrorIs(err, apperrors.ErrValidation)

	var validationErr *apperrors.ValidationError
	suite.Require().ErrorAs(err, &validationErr)
	suite.Equal(services.MsgInvalidParameters, validationErr.Message)
	suite.Contains(validationErr.Fields, "productId")
	suite.Contains(validationErr.Fields, "brandId")
	suite.mockRepo.AssertNotCalled(suite.T(), "FindApplicablePrices")
}

func (suite *PriceServiceTestSuite) TestResolvePrices_StorageError() {
	ctx := context.Background()
	at := localTime("2020-06-14T10:00:00")

	suite.mockRepo.On("FindApplicablePrices", ctx, 35455, 1, at).Return(nil, assert.AnError).Once()

	prices, err := suite.service.ResolvePrices(ctx, 35455, 1, "2020-06-14T10:00:00")

	suite.Require().Error(err)
	suite.Nil(prices)
	suite.ErrorIs(err, apperrors.ErrStorage)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Create ---

func (suite *PriceServiceTestSuite) TestCreatePrice_Success() {
	ctx := context.Background()
	req := validCreateRequest()
	saved := req.ToDomain()
	saved.ID = 42

	suite.mockRepo.On("FindByProductBrandStartDate", ctx, *req.ProductID, *req.BrandID, req.StartDate.Time).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SavePrice", ctx, mock.MatchedBy(func(p domain.Price) bool {
		return p.ID == 0 && p.ProductID == *req.ProductID && p.BrandID == *req.BrandID && p.Price.Equal(*req.Price)
	})).Return(&saved, nil).Once()

	created, err := suite.service.CreatePrice(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(int64(42), created.ID)
	suite.Equal("USD", created.Currency)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PriceServiceTestSuite) TestCreatePrice_Duplicate() {
	ctx := context.Background()
	req := validCreateRequest()
	existing := req.ToDomain()
	existing.ID = 7

	suite.mockRepo.On("FindByProductBrandStartDate", ctx, *req.ProductID, *req.BrandID, req.StartDate.Time).
		Return(&existing, nil).Once()

	created, err := suite.service.CreatePrice(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePrice")
}

func (suite *PriceServiceTestSuite) TestCreatePrice_DuplicateRace() {
	ctx := context.Background()
	req := validCreateRequest()

	suite.mockRepo.On("FindByProductBrandStartDate", ctx, *req.ProductID, *req.BrandID, req.StartDate.Time).
		Return(nil, apperrors.ErrNotFound).Once()
	// Concurrent creator won between the pre-check and the insert.
	suite.mockRepo.On("SavePrice", ctx, mock.AnythingOfType("domain.Price")).
		Return(nil, apperrors.ErrDuplicate).Once()

	created, err := suite.service.CreatePrice(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PriceServiceTestSuite) TestCreatePrice_ValidationAccumulatesFields() {
	ctx := context.Background()
	req := validCreateRequest()
	badBrand, badProduct := 0, 0
	badPrice := decimal.NewFromInt(-5)
	req.BrandID = &badBrand
	req.ProductID = &badProduct
	req.Price = &badPrice
	req.Currency = "eur"

	created, err := suite.service.CreatePrice(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrValidation)

	var validationErr *apperrors.ValidationError
	suite.Require().ErrorAs(err, &validationErr)
	suite.Contains(validationErr.Fields, "brandId")
	suite.Contains(validationErr.Fields, "productId")
	suite.Contains(validationErr.Fields, "price")
	suite.Contains(validationErr.Fields, "currency")
	suite.Len(validationErr.Fields, 4)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindByProductBrandStartDate")
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePrice")
}

func (suite *PriceServiceTestSuite) TestCreatePrice_InvertedWindowRejected() {
	ctx := context.Background()
	req := validCreateRequest()
	start := dto.LocalTime{Time: localTime("2021-12-31T00:00:00")}
	end := dto.LocalTime{Time: localTime("2021-01-01T00:00:00")}
	req.StartDate = &start
	req.EndDate = &end

	created, err := suite.service.CreatePrice(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)

	var validationErr *apperrors.ValidationError
	suite.Require().ErrorAs(err, &validationErr)
	suite.Contains(validationErr.Fields, "endDate")
}

func (suite *PriceServiceTestSuite) TestCreatePrice_StorageError() {
	ctx := context.Background()
	req := validCreateRequest()

	suite.mockRepo.On("FindByProductBrandStartDate", ctx, *req.ProductID, *req.BrandID, req.StartDate.Time).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SavePrice", ctx, mock.AnythingOfType("domain.Price")).
		Return(nil, assert.AnError).Once()

	created, err := suite.service.CreatePrice(ctx, req)

	suite.Require().Error(err)
	suite.Nil(created)
	suite.ErrorIs(err, apperrors.ErrStorage)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Delete ---

func (suite *PriceServiceTestSuite) TestDeletePrice_Success() {
	ctx := context.Background()

	suite.mockRepo.On("DeletePrice", ctx, int64(42)).Return(nil).Once()

	err := suite.service.DeletePrice(ctx, 42)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PriceServiceTestSuite) TestDeletePrice_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("DeletePrice", ctx, int64(404)).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeletePrice(ctx, 404)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PriceServiceTestSuite) TestDeletePrice_InvalidID() {
	ctx := context.Background()

	err := suite.service.DeletePrice(ctx, 0)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeletePrice")
}

func TestPriceService(t *testing.T) {
	suite.Run(t, new(PriceServiceTestSuite))
}

// --- Reference tariff scenarios ---
//
// fakePriceRepo implements the repository port contract in memory (window
// containment, priority DESC ordering) so the canonical tariff scenarios can
// run through the service end to end.
type fakePriceRepo struct {
	prices []domain.Price
}

func (f *fakePriceRepo) FindApplicablePrices(_ context.Context, productID, brandID int, at time.Time) ([]domain.Price, error) {
	var matched []domain.Price
	for _, p := range f.prices {
		if p.ProductID == productID && p.BrandID == brandID && p.Applies(at) {
			matched = append(matched, p)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Priority > matched[j].Priority })
	return matched, nil
}

func (f *fakePriceRepo) FindByProductBrandStartDate(_ context.Context, productID, brandID int, startDate time.Time) (*domain.Price, error) {
	for _, p := range f.prices {
		if p.ProductID == productID && p.BrandID == brandID && p.StartDate.Equal(startDate) {
			match := p
			return &match, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakePriceRepo) SavePrice(_ context.Context, price domain.Price) (*domain.Price, error) {
	price.ID = int64(len(f.prices) + 1)
	f.prices = append(f.prices, price)
	return &price, nil
}

func (f *fakePriceRepo) DeletePrice(_ context.Context, id int64) error {
	for i, p := range f.prices {
		if p.ID == id {
			f.prices = append(f.prices[:i], f.prices[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func referenceTariff() *fakePriceRepo {
	return &fakePriceRepo{prices: []domain.Price{
		{ID: 1, BrandID: 1, ProductID: 35455, PriceList: 1, Priority: 0, Price: decimal.NewFromFloat(35.50), Currency: "EUR",
			StartDate: localTime("2020-06-14T00:00:00"), EndDate: localTime("2020-12-31T23:59:00")},
		{ID: 2, BrandID: 1, ProductID: 35455, PriceList: 2, Priority: 1, Price: decimal.NewFromFloat(25.45), Currency: "EUR",
			StartDate: localTime("2020-06-14T15:00:00"), EndDate: localTime("2020-06-14T18:30:00")},
		{ID: 3, BrandID: 1, ProductID: 35455, PriceList: 3, Priority: 1, Price: decimal.NewFromFloat(30.50), Currency: "EUR",
			StartDate: localTime("2020-06-15T00:00:00"), EndDate: localTime("2020-06-15T11:00:00")},
		{ID: 4, BrandID: 1, ProductID: 35455, PriceList: 4, Priority: 1, Price: decimal.NewFromFloat(38.95), Currency: "EUR",
			StartDate: localTime("2020-06-15T16:00:00"), EndDate: localTime("2020-12-31T23:59:00")},
	}}
}

func TestResolvePrices_ReferenceTariff(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		wantPrice string
		wantCount int
	}{
		{"10:00 on June 14", "2020-06-14T10:00:00", "35.5", 1},
		{"16:00 on June 14", "2020-06-14T16:00:00", "25.45", 2},
		{"21:00 on June 14", "2020-06-14T21:00:00", "35.5", 1},
		{"10:00 on June 15", "2020-06-15T10:00:00", "30.5", 2},
		{"21:00 on June 16", "2020-06-16T21:00:00", "38.95", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := services.NewPriceService(referenceTariff())

			prices, err := service.ResolvePrices(context.Background(), 35455, 1, tt.date)

			assert.NoError(t, err)
			assert.Len(t, prices, tt.wantCount)
			assert.Equal(t, tt.wantPrice, prices[0].Price.String())
			// Highest priority always wins the top slot.
			for i := 1; i < len(prices); i++ {
				assert.GreaterOrEqual(t, prices[i-1].Priority, prices[i].Priority)
			}
		})
	}
}

func TestDeletePrice_RemovesRecordFromSubsequentResolves(t *testing.T) {
	repo := referenceTariff()
	service := services.NewPriceService(repo)
	ctx := context.Background()

	// The discounted afternoon window wins before deletion.
	prices, err := service.ResolvePrices(ctx, 35455, 1, "2020-06-14T16:00:00")
	assert.NoError(t, err)
	assert.Equal(t, "25.45", prices[0].Price.String())

	assert.NoError(t, service.DeletePrice(ctx, 2))

	prices, err = service.ResolvePrices(ctx, 35455, 1, "2020-06-14T16:00:00")
	assert.NoError(t, err)
	assert.Equal(t, "35.5", prices[0].Price.String())
}
