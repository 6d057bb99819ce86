package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Validation (VAL) ----

func ErrInvalidAmount() *AppError {
	return New("VAL_001", "Amount must be greater than zero", http.StatusBadRequest)
}

func ErrBelowMinimumAmount(submitted, minimum int64) *AppError {
	return New("VAL_002",
		fmt.Sprintf("Amount %d is below the gateway minimum of %d", submitted, minimum),
		http.StatusBadRequest)
}

func ErrNotFound(entity string) *AppError {
	return New("VAL_003", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrUnknownGateway(name string) *AppError {
	return New("VAL_004", fmt.Sprintf("Unknown payment gateway %q", name), http.StatusBadRequest)
}

// Validation returns a VAL_005 error carrying a binding message.
func Validation(message string) *AppError {
	return New("VAL_005", message, http.StatusBadRequest)
}

// ---- Trust & Resolution (TRUST / RES / INTG) ----

func ErrInvalidSignature() *AppError {
	return New("TRUST_001", "Invalid signature", http.StatusUnauthorized)
}

func ErrTransactionNotFound() *AppError {
	return New("RES_001", "Transaction not found", http.StatusNotFound)
}

func ErrUnresolvableContent() *AppError {
	return New("RES_002", "Remittance content does not carry a known transaction code", http.StatusBadRequest)
}

func ErrAmountMismatch() *AppError {
	return New("INTG_001", "Callback amount does not match transaction amount", http.StatusBadRequest)
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_001", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
