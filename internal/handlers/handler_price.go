package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"unicode"

	"github.com/CesarAugustusGroB/PriceApp/internal/apperrors"
	"github.com/CesarAugustusGroB/PriceApp/internal/core/services"
	"github.com/CesarAugustusGroB/PriceApp/internal/dto"
	"github.com/CesarAugustusGroB/PriceApp/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	portssvc "github.com/CesarAugustusGroB/PriceApp/internal/core/ports/services"
)

const (
	msgResolveNotFound = "No prices found for the given product, brand, and date."
	msgDeleteNotFound  = "No price found with the given id."
)

// priceHandler handles HTTP requests related to prices.
type priceHandler struct {
	priceService portssvc.PriceSvcFacade
}

// newPriceHandler creates a new priceHandler.
func newPriceHandler(ps portssvc.PriceSvcFacade) *priceHandler {
	return &priceHandler{
		priceService: ps,
	}
}

// RegisterPriceRoutes registers routes related to prices.
func RegisterPriceRoutes(rg *gin.RouterGroup, priceService portssvc.PriceSvcFacade) {
	h := newPriceHandler(priceService)

	prices := rg.Group("/prices")
	{
		prices.POST("", h.createPrice)
		prices.GET("", h.getPrices)
		prices.DELETE("/:id", h.deletePrice)
	}
}

// createPrice godoc
// @Summary Create a new price
// @Description Adds a new price record after validating it and rejecting duplicate (productId, brandId, startDate) windows
// @Tags prices
// @Accept  json
// @Produce  json
// @Param   price body dto.CreatePriceRequest true "Price details"
// @Success 201 {object} dto.PriceResponse
// @Failure 400 {object} map[string]string "Validation failure or duplicate window"
// @Failure 500 {object} map[string]string "Storage failure"
// @Router /prices [post]
func (h *priceHandler) createPrice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePrice", slog.String("error", err.Error()))
		c.JSON(bindingErrorResponse(err))
		return
	}

	createdPrice, err := h.priceService.CreatePrice(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating price", slog.String("error", err.Error()))
		case errors.Is(err, apperrors.ErrDuplicate):
			logger.Warn("Attempted to create duplicate price",
				slog.Int("product_id", derefInt(req.ProductID)),
				slog.Int("brand_id", derefInt(req.BrandID)))
		default:
			logger.Error("Failed to create price in service", slog.String("error", err.Error()))
		}
		c.JSON(errorResponse(err, msgDeleteNotFound))
		return
	}

	logger.Info("Price created successfully", slog.Int64("price_id", createdPrice.ID))
	c.JSON(http.StatusCreated, dto.ToPriceResponse(createdPrice))
}

// getPrices godoc
// @Summary Get applicable prices
// @Description Returns the prices applicable to a product and brand at a given date, highest priority first
// @Tags prices
// @Produce  json
// @Param   productId query int true "Product ID" minimum(1)
// @Param   brandId query int true "Brand ID" minimum(1)
// @Param   date query string true "Local date-time (YYYY-MM-DDTHH:MM:SS)"
// @Success 200 {array} dto.PriceResponse
// @Failure 400 {object} map[string]string "Invalid parameters or date format"
// @Failure 404 {object} map[string]string "No applicable price"
// @Failure 500 {object} map[string]string "Storage failure"
// @Router /prices [get]
func (h *priceHandler) getPrices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	productID, brandID, err := parseResolveParams(c.Query("productId"), c.Query("brandId"))
	if err != nil {
		logger.Warn("Invalid resolve parameters", slog.String("error", err.Error()))
		c.JSON(errorResponse(err, msgResolveNotFound))
		return
	}
	date := c.Query("date")

	logger = logger.With(slog.Int("product_id", productID), slog.Int("brand_id", brandID), slog.String("date", date))
	logger.Info("Received request to resolve prices")

	prices, err := h.priceService.ResolvePrices(c.Request.Context(), productID, brandID, date)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("No applicable prices found")
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Invalid resolve request", slog.String("error", err.Error()))
		default:
			logger.Error("Failed to resolve prices in service", slog.String("error", err.Error()))
		}
		c.JSON(errorResponse(err, msgResolveNotFound))
		return
	}

	logger.Info("Prices resolved successfully", slog.Int("count", len(prices)))
	c.JSON(http.StatusOK, dto.ToListPriceResponse(prices))
}

// deletePrice godoc
// @Summary Delete a price by ID
// @Description Removes an existing price record by its ID
// @Tags prices
// @Produce  json
// @Param   id path int true "Price ID"
// @Success 204 "Price deleted"
// @Failure 400 {object} map[string]string "Invalid ID"
// @Failure 404 {object} map[string]string "Price not found"
// @Failure 500 {object} map[string]string "Storage failure"
// @Router /prices/{id} [delete]
func (h *priceHandler) deletePrice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		logger.Warn("Invalid price ID for delete", slog.String("id", c.Param("id")))
		c.JSON(errorResponse(apperrors.NewValidationErrorWithMessage(services.MsgInvalidParameters, map[string]string{
			"id": "The id must be a valid integer",
		}), msgDeleteNotFound))
		return
	}

	if err := h.priceService.DeletePrice(c.Request.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Price not found for delete", slog.Int64("price_id", id))
		} else {
			logger.Error("Failed to delete price in service", slog.String("error", err.Error()))
		}
		c.JSON(errorResponse(err, msgDeleteNotFound))
		return
	}

	logger.Info("Price deleted successfully", slog.Int64("price_id", id))
	c.Status(http.StatusNoContent)
}

// parseResolveParams parses the numeric resolve query parameters, accumulating
// one message per unparsable parameter.
func parseResolveParams(productIDRaw, brandIDRaw string) (int, int, error) {
	fields := map[string]string{}

	productID, err := strconv.Atoi(productIDRaw)
	if err != nil {
		fields["productId"] = "The product id must be a valid integer"
	}
	brandID, err := strconv.Atoi(brandIDRaw)
	if err != nil {
		fields["brandId"] = "The brand id must be a valid integer"
	}

	if len(fields) > 0 {
		return 0, 0, apperrors.NewValidationErrorWithMessage(services.MsgInvalidParameters, fields)
	}
	return productID, brandID, nil
}

// bindingErrorResponse converts a gin binding failure into the standard error
// body. Validator failures become one entry per offending field; anything else
// (malformed JSON, bad date literal) keeps its parse message.
func bindingErrorResponse(err error) (int, gin.H) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]string, len(validationErrs))
		for _, fieldErr := range validationErrs {
			fields[jsonFieldName(fieldErr.Field())] = bindingFieldMessage(fieldErr)
		}
		return errorResponse(apperrors.NewValidationError(fields), msgDeleteNotFound)
	}
	return http.StatusBadRequest, gin.H{"error": errorCategoryInvalid, "message": "Invalid request format: " + err.Error()}
}

func bindingFieldMessage(fieldErr validator.FieldError) string {
	name := jsonFieldName(fieldErr.Field())
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("The %s must not be null", name)
	case "min", "gt":
		return fmt.Sprintf("The %s must be greater than 0", name)
	case "len":
		return fmt.Sprintf("The %s must be %s characters long", name, fieldErr.Param())
	case "uppercase":
		return fmt.Sprintf("The %s must be uppercase", name)
	default:
		return fmt.Sprintf("The %s is invalid", name)
	}
}

// createPriceFieldNames maps CreatePriceRequest struct fields to their json
// tags, so validator errors report the wire-level names.
var createPriceFieldNames = map[string]string{
	"BrandID":   "brandId",
	"StartDate": "startDate",
	"EndDate":   "endDate",
	"PriceList": "priceList",
	"ProductID": "productId",
	"Priority":  "priority",
	"Price":     "price",
	"Currency":  "currency",
}

func jsonFieldName(field string) string {
	if name, ok := createPriceFieldNames[field]; ok {
		return name
	}
	if field == "" {
		return field
	}
	runes := []rune(field)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
