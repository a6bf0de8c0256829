package dto

import (
	"net/http"
	"strings"
)

// API error codes, ERR_<DESCRIPTION>
const (
	ErrCodeUnknown            = "ERR_UNKNOWN"
	ErrCodeInternal           = "ERR_INTERNAL"
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE" // optional backend (image storage) not configured

	ErrCodeValidation   = "ERR_VALIDATION"
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"

	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	ErrCodeTokenExpired       = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "ERR_TOKEN_INVALID"
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeAccountLocked      = "ERR_ACCOUNT_LOCKED"
	ErrCodeAccountInactive    = "ERR_ACCOUNT_INACTIVE"

	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"

	ErrCodeInvalidState       = "ERR_INVALID_STATE"
	ErrCodeBusinessRule       = "ERR_BUSINESS_RULE"
	ErrCodeInsufficientStock  = "ERR_INSUFFICIENT_STOCK"
	ErrCodeOutOfStock         = "ERR_OUT_OF_STOCK"
	ErrCodeStockLimitReached  = "ERR_STOCK_LIMIT_REACHED"
	ErrCodeProductUnavailable = "ERR_PRODUCT_UNAVAILABLE"
	ErrCodeCartEmpty          = "ERR_CART_EMPTY"

	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
	ErrCodeRateLimited     = "ERR_RATE_LIMITED"
)

// codesByStatus is the source of ErrorCodeHTTPStatus
var codesByStatus = map[int][]string{
	http.StatusBadRequest:            {ErrCodeValidation, ErrCodeBadRequest, ErrCodeInvalidInput, ErrCodeInvalidJSON},
	http.StatusUnauthorized:          {ErrCodeUnauthorized, ErrCodeTokenExpired, ErrCodeTokenInvalid, ErrCodeInvalidCredentials},
	http.StatusForbidden:             {ErrCodeForbidden, ErrCodeAccountInactive},
	http.StatusNotFound:              {ErrCodeNotFound},
	http.StatusConflict:              {ErrCodeAlreadyExists, ErrCodeConflict, ErrCodeConcurrencyConflict},
	http.StatusRequestEntityTooLarge: {ErrCodeRequestTooLarge},
	http.StatusUnprocessableEntity: {
		ErrCodeInvalidState, ErrCodeBusinessRule, ErrCodeInsufficientStock, ErrCodeOutOfStock,
		ErrCodeStockLimitReached, ErrCodeProductUnavailable, ErrCodeCartEmpty,
	},
	http.StatusLocked:              {ErrCodeAccountLocked},
	http.StatusTooManyRequests:     {ErrCodeRateLimited},
	http.StatusInternalServerError: {ErrCodeUnknown, ErrCodeInternal},
	http.StatusServiceUnavailable:  {ErrCodeServiceUnavailable},
}

// ErrorCodeHTTPStatus is the response status of every API error code
var ErrorCodeHTTPStatus = func() map[string]int {
	m := make(map[string]int)
	for status, codes := range codesByStatus {
		for _, code := range codes {
			m[code] = status
		}
	}
	return m
}()

// GetHTTPStatus is 500 for codes it does not know
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping translates shared.DomainError codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"UNAUTHORIZED":         ErrCodeUnauthorized,
	"FORBIDDEN":            ErrCodeForbidden,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"INSUFFICIENT_STOCK":   ErrCodeInsufficientStock,
	"OUT_OF_STOCK":         ErrCodeOutOfStock,
	"STOCK_LIMIT_REACHED":  ErrCodeStockLimitReached,
	"PRODUCT_UNAVAILABLE":  ErrCodeProductUnavailable,
	"CART_EMPTY":           ErrCodeCartEmpty,
	"CHECKOUT_IN_PROGRESS": ErrCodeConflict,
	"INVALID_CREDENTIALS":  ErrCodeInvalidCredentials,
	"ACCOUNT_LOCKED":       ErrCodeAccountLocked,
	"ACCOUNT_INACTIVE":     ErrCodeAccountInactive,
	"TOKEN_EXPIRED":        ErrCodeTokenExpired,
	"TOKEN_MAX_REFRESH":    ErrCodeTokenExpired,
	"TOKEN_INVALID":        ErrCodeTokenInvalid,
	"TOKEN_REVOKED":        ErrCodeTokenInvalid,
	"IMAGES_DISABLED":      ErrCodeServiceUnavailable,
	"VALIDATION_ERROR":     ErrCodeValidation,
	"BAD_REQUEST":          ErrCodeBadRequest,
	"INTERNAL_ERROR":       ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Field-level INVALID_* codes become ERR_VALIDATION; other unmapped domain
// codes are business rule violations. ERR_* codes pass through.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	switch {
	case strings.HasPrefix(code, "ERR_"):
		return code
	case strings.HasPrefix(code, "INVALID_"):
		return ErrCodeValidation
	case code == "":
		return ErrCodeUnknown
	default:
		return ErrCodeBusinessRule
	}
}
