package facade

import (
	"errors"
	"fmt"

	catalogports "github.com/Apurer/go-gin-inventory-api/internal/domains/catalog/ports"
	inventoryapp "github.com/Apurer/go-gin-inventory-api/internal/domains/inventory/application"
	orderports "github.com/Apurer/go-gin-inventory-api/internal/domains/orders/ports"
)

// Error codes callers can branch on.
const (
	CodeNotFound          = "NOT_FOUND"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeValidation        = "VALIDATION_ERROR"
	CodeUnknownOperation  = "UNKNOWN_OPERATION"
	CodeInternal          = "INTERNAL"
)

// Error is one structured failure in a Result.
type Error struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ToError classifies an inventory error.
func ToError(err error) Error {
	var insufficient *catalogports.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		return Error{
			Code:    CodeInsufficientStock,
			Message: fmt.Sprintf("Insufficient stock. Available: %d", insufficient.Available),
			Extensions: map[string]any{
				"productId": insufficient.ProductID,
				"requested": insufficient.Requested,
				"available": insufficient.Available,
			},
		}
	case errors.Is(err, catalogports.ErrInsufficientStock):
		return Error{Code: CodeInsufficientStock, Message: err.Error()}
	case errors.Is(err, catalogports.ErrNotFound):
		return Error{Code: CodeNotFound, Message: "Product not found", Extensions: map[string]any{"resourceType": "product"}}
	case errors.Is(err, orderports.ErrNotFound):
		return Error{Code: CodeNotFound, Message: "Order not found", Extensions: map[string]any{"resourceType": "order"}}
	case errors.Is(err, inventoryapp.ErrInvalidInput):
		return Error{Code: CodeValidation, Message: validationMessage(err)}
	default:
		return Error{Code: CodeInternal, Message: err.Error()}
	}
}

// withIdentifier records the key a NOT_FOUND lookup missed.
func withIdentifier(failure Error, id any) Error {
	if failure.Code != CodeNotFound {
		return failure
	}
	ext := make(map[string]any, len(failure.Extensions)+1)
	for k, v := range failure.Extensions {
		ext[k] = v
	}
	ext["identifier"] = id
	failure.Extensions = ext
	return failure
}

// validationMessage drops the generic prefix added by the application layer.
func validationMessage(err error) string {
	var multi interface{ Unwrap() []error }
	if errors.As(err, &multi) {
		for _, inner := range multi.Unwrap() {
			if inner != inventoryapp.ErrInvalidInput {
				return inner.Error()
			}
		}
	}
	return err.Error()
}
