package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/dazeez1/blog-api/pkg/logging"
)

// Pagination is the wire shape of list-endpoint pagination metadata
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
	HasNextPage  bool  `json:"hasNextPage"`
	HasPrevPage  bool  `json:"hasPrevPage"`
}

// PaginationMeta builds pagination metadata for a listing
func PaginationMeta(totalItems int64, currentPage, itemsPerPage int) Pagination {
	totalPages := int((totalItems + int64(itemsPerPage) - 1) / int64(itemsPerPage))
	if totalPages < 1 {
		totalPages = 1
	}
	return Pagination{
		CurrentPage:  currentPage,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: itemsPerPage,
		HasNextPage:  currentPage < totalPages,
		HasPrevPage:  currentPage > 1,
	}
}

// PaginatedData is the data payload of a paginated response
type PaginatedData struct {
	Items      interface{} `json:"items"`
	Pagination Pagination  `json:"pagination"`
}

func respondOK(c *gin.Context, message string, data gin.H) {
	body := gin.H{"success": true, "data": data}
	if message != "" {
		body["message"] = message
	}
	c.JSON(http.StatusOK, body)
}

func respondCreated(c *gin.Context, message string, data gin.H) {
	body := gin.H{"success": true, "data": data}
	if message != "" {
		body["message"] = message
	}
	c.JSON(http.StatusCreated, body)
}

func respondPaginated(c *gin.Context, items interface{}, page, limit int, total int64) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": PaginatedData{
			Items:      items,
			Pagination: PaginationMeta(total, page, limit),
		},
	})
}

// respondError renders any error through the envelope, mapping the closed
// taxonomy to status codes. Unknown faults become opaque 500s.
func respondError(c *gin.Context, err error) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		body := gin.H{"success": false, "message": apiErr.Message}
		if len(apiErr.Fields) > 0 {
			body["errors"] = apiErr.Fields
		}
		c.JSON(apiErr.Status(), body)
		return
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		messages := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			messages = append(messages, fieldMessage(fe))
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Validation failed",
			"errors":  messages,
		})
		return
	}

	logging.WithComponent("api").Error("Unhandled error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "Server error",
	})
}

// fieldMessage renders a single validation failure as a human-readable message
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
