package stock

import (
	"stockd/internal/core/apperror"
	"stockd/internal/core/id"
)

// InsufficientStock builds the error for a stock position too short to
// cover a requested quantity. It is distinct from NotFound: the row
// exists but cannot satisfy the demand.
func InsufficientStock(productID id.ID, location string, requested, available int64) error {
	return apperror.NewInsufficientStock(productID.String(), location, requested, available)
}
