package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to user-visible status and HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	Phase      string `json:"phase,omitempty"` // upload, list, purchase, transfer, connect, hydrate
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	prefix := fmt.Sprintf("[%s]", e.Code)
	if e.Phase != "" {
		prefix = fmt.Sprintf("[%s] %s", e.Code, e.Phase)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", prefix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s", prefix, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithPhase returns a copy of e tagged with the phase that failed.
func (e *AppError) WithPhase(phase string) *AppError {
	cp := *e
	cp.Phase = phase
	return &cp
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

// Error codes.
const (
	CodeConnection   = "CONN_001"
	CodeDisconnected = "SES_001"
	CodeUpload       = "UPL_001"
	CodeRejection    = "TX_001"
	CodeSubmission   = "TX_002"
	CodeExecution    = "TX_003"
	CodeValidation   = "VAL_001"
	CodeNotFound     = "VAL_002"
	CodeTooLarge     = "VAL_003"
	CodeLedgerRead   = "LED_001"
	CodeRateLimit    = "RATE_001"
	CodeInternal     = "SYS_001"
)

// As extracts the *AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries an AppError with the given code.
func HasCode(err error, code string) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

// CodeOf returns the AppError code of err, or CodeInternal for foreign errors.
func CodeOf(err error) string {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return CodeInternal
}

// ---- Session (CONN / SES) ----

// ErrConnection means no compatible wallet is available or authorization was declined.
// Fatal to bootstrap; requires user action.
func ErrConnection(err error) *AppError {
	return Wrap(CodeConnection, "Wallet connection unavailable", http.StatusServiceUnavailable, err)
}

func ErrDisconnected() *AppError {
	return New(CodeDisconnected, "No active account session", http.StatusConflict)
}

// ---- Image storage (UPL) ----

func ErrUpload(err error) *AppError {
	return Wrap(CodeUpload, "Image upload failed", http.StatusBadGateway, err).WithPhase("upload")
}

// ---- Ledger transactions (TX) ----

// ErrRejection means the signer declined; nothing was broadcast.
func ErrRejection(err error) *AppError {
	return Wrap(CodeRejection, "Transaction rejected by signer", http.StatusForbidden, err)
}

// ErrSubmission means broadcasting failed; the transaction never entered the ledger.
func ErrSubmission(err error) *AppError {
	return Wrap(CodeSubmission, "Transaction submission failed", http.StatusBadGateway, err)
}

// ErrExecution means the ledger reverted the operation.
func ErrExecution(err error) *AppError {
	return Wrap(CodeExecution, "Transaction reverted by ledger", http.StatusUnprocessableEntity, err)
}

// ---- Reads (LED) ----

func ErrLedgerRead(err error) *AppError {
	return Wrap(CodeLedgerRead, "Ledger query failed", http.StatusBadGateway, err)
}

// ---- Validation (VAL) ----

// Validation returns a precondition failure; nothing was submitted.
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}

func ErrNotFound(entity string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ErrPayloadTooLarge means the request body exceeded limit bytes.
func ErrPayloadTooLarge(limit int64) *AppError {
	return New(CodeTooLarge, fmt.Sprintf("Request body exceeds %d bytes", limit), http.StatusRequestEntityTooLarge)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimit, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error", http.StatusInternalServerError, err)
}
