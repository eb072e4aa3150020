package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string   `json:"error"`
	Message       string   `json:"message,omitempty"`
	Errors        []string `json:"errors,omitempty"`
	CorrelationID string   `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeValidation        = "VALIDATION_FAILED"
	ErrCodeInventoryNotFound = "INVENTORY_NOT_FOUND"
	ErrCodeProductNotFound   = "PRODUCT_NOT_FOUND"
	ErrCodeVisitNotFound     = "VISIT_NOT_FOUND"
	ErrCodeInvalidStatus     = "INVALID_STATUS"
	ErrCodeInvalidQuantity   = "INVALID_QUANTITY"
	ErrCodeUnauthorised      = "UNAUTHORIZED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

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
	ErrInventoryNotFound = NewDomainError(ErrCodeInventoryNotFound, "inventory not found")
	ErrProductNotFound   = NewDomainError(ErrCodeProductNotFound, "product not found")
	ErrVisitNotFound     = NewDomainError(ErrCodeVisitNotFound, "visit not found")
	ErrInvalidStatus     = NewDomainError(ErrCodeInvalidStatus, "visit status is not valid")
	ErrInvalidBillStatus = NewDomainError(ErrCodeInvalidStatus, "bill status is not valid")
	ErrInvalidQuantity   = NewDomainError(ErrCodeInvalidQuantity, "Quantity cannot be 0 or negative")
)
