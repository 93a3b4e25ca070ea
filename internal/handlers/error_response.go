package handlers

import (
	"errors"
	"net/http"

	"github.com/CesarAugustusGroB/PriceApp/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// Stable error category strings used in every error response body.
const (
	errorCategoryInvalid    = "Invalid Request"
	errorCategoryNotFound   = "Not Found"
	errorCategoryService    = "Service Error"
	errorCategoryUnexpected = "Unexpected Error"
)

const (
	msgFieldsInvalid = "One or more fields are invalid"
	msgServiceError  = "An unexpected error occurred. Please try again later."
)

// errorResponse maps a domain error to an HTTP status code and response
// payload. notFoundMessage supplies the endpoint-specific text for
// ErrNotFound. Storage causes are never exposed; they belong in the logs.
func errorResponse(err error, notFoundMessage string) (int, gin.H) {
	var validationErr *apperrors.ValidationError

	switch {
	case errors.As(err, &validationErr):
		message := validationErr.Message
		if message == "" {
			message = msgFieldsInvalid
		}
		body := gin.H{"error": errorCategoryInvalid, "message": message}
		for field, fieldMessage := range validationErr.Fields {
			body[field] = fieldMessage
		}
		return http.StatusBadRequest, body

	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, gin.H{"error": errorCategoryInvalid, "message": msgFieldsInvalid}

	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusBadRequest, gin.H{"error": errorCategoryInvalid, "message": "The price for this product, brand, and date already exists."}

	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, gin.H{"error": errorCategoryNotFound, "message": notFoundMessage}

	case errors.Is(err, apperrors.ErrStorage):
		return http.StatusInternalServerError, gin.H{"error": errorCategoryService, "message": msgServiceError}

	default:
		return http.StatusInternalServerError, gin.H{"error": errorCategoryUnexpected, "message": msgServiceError}
	}
}
