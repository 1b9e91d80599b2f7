package application

import (
	"errors"
	"fmt"

	catalogdomain "github.com/Apurer/go-gin-inventory-api/internal/domains/catalog/domain"
	orderdomain "github.com/Apurer/go-gin-inventory-api/internal/domains/orders/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid inventory input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrInvalidInput) {
		return err
	}
	if errors.Is(err, catalogdomain.ErrEmptyID) ||
		errors.Is(err, catalogdomain.ErrEmptyName) ||
		errors.Is(err, catalogdomain.ErrEmptyCategory) ||
		errors.Is(err, catalogdomain.ErrNegativePrice) ||
		errors.Is(err, catalogdomain.ErrNegativeStock) ||
		errors.Is(err, catalogdomain.ErrInvalidAmount) ||
		errors.Is(err, orderdomain.ErrInvalidProductID) ||
		errors.Is(err, orderdomain.ErrInvalidQuantity) ||
		errors.Is(err, orderdomain.ErrEmptyCustomer) ||
		errors.Is(err, orderdomain.ErrInvalidPrice) ||
		errors.Is(err, orderdomain.ErrTotalOverflow) ||
		errors.Is(err, orderdomain.ErrInvalidStatus) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
