package apperr

import "fmt"

// DomainError represents a typed application-level failure with a
// stable code the API layer can map to a status
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound        = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists   = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput    = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidQuantity = NewDomainError("INVALID_QUANTITY", "Quantity must be greater than zero")
	ErrEmptyOrder      = NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	ErrStoreFailure    = NewDomainError("STORE_FAILURE", "Storage operation could not be completed")
)

// InsufficientStockError is returned when a deduction asks for more
// than a product currently holds. It carries enough context for the
// caller to present a useful diagnostic.
type InsufficientStockError struct {
	ProductName string `json:"product_name"`
	Requested   int    `json:"requested"`
	Available   int    `json:"available"`
	Unit        string `json:"unit"`
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d %s, available %d %s",
		e.ProductName, e.Requested, e.Unit, e.Available, e.Unit)
}

// NewInsufficientStock creates an InsufficientStockError
func NewInsufficientStock(name string, requested, available int, unit string) *InsufficientStockError {
	return &InsufficientStockError{
		ProductName: name,
		Requested:   requested,
		Available:   available,
		Unit:        unit,
	}
}
