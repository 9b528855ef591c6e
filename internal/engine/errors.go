package engine

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrInvalidPaymentState = errors.New("invalid payment state")
	ErrAlreadyActive       = errors.New("an active return already exists for this item")
	ErrOrderNotDelivered   = errors.New("order has not been delivered")
	ErrReturnWindowExpired = errors.New("return window has expired")
	ErrInvalidQuantity     = errors.New("invalid return quantity")
	ErrInvalidReturnType   = errors.New("invalid return type")
	ErrNotStarted          = errors.New("voucher not started")
	ErrExpired             = errors.New("voucher expired")
	ErrInactive            = errors.New("voucher inactive")
	ErrBelowMinimum        = errors.New("order value below voucher minimum")
	ErrGloballyExhausted   = errors.New("voucher usage limit reached")
	ErrPerUserExhausted    = errors.New("voucher already used the maximum number of times by this user")
)

// BelowMinimumError carries the minimum order value a voucher requires.
type BelowMinimumError struct {
	MinOrderValue int64
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("order value below voucher minimum of %d", e.MinOrderValue)
}

func (e *BelowMinimumError) Is(target error) bool {
	return target == ErrBelowMinimum
}

type errorInfo struct {
	code    string
	message string
}

var errorCatalog = []struct {
	err  error
	info errorInfo
}{
	{ErrNotFound, errorInfo{"not_found", "The requested resource was not found."}},
	{ErrForbidden, errorInfo{"forbidden", "You are not allowed to perform this action."}},
	{ErrInvalidTransition, errorInfo{"invalid_transition", "This status change is not allowed."}},
	{ErrInvalidPaymentState, errorInfo{"invalid_payment_state", "This order's payment cannot be confirmed."}},
	{ErrAlreadyActive, errorInfo{"return_already_active", "A return request for this item is already in progress."}},
	{ErrOrderNotDelivered, errorInfo{"order_not_delivered", "Returns are only possible for delivered orders."}},
	{ErrReturnWindowExpired, errorInfo{"return_window_expired", "The return period for this order has ended."}},
	{ErrInvalidQuantity, errorInfo{"invalid_quantity", "The requested quantity is not valid for this item."}},
	{ErrInvalidReturnType, errorInfo{"invalid_return_type", "Return type must be return or exchange."}},
	{ErrNotStarted, errorInfo{"voucher_not_started", "This voucher is not valid yet."}},
	{ErrExpired, errorInfo{"voucher_expired", "This voucher has expired."}},
	{ErrInactive, errorInfo{"voucher_inactive", "This voucher is not active."}},
	{ErrBelowMinimum, errorInfo{"voucher_below_minimum", "Minimum order value not met."}},
	{ErrGloballyExhausted, errorInfo{"voucher_exhausted", "This voucher has been fully redeemed."}},
	{ErrPerUserExhausted, errorInfo{"voucher_user_limit", "You have already used this voucher."}},
}

func lookup(err error) (errorInfo, bool) {
	for _, e := range errorCatalog {
		if errors.Is(err, e.err) {
			return e.info, true
		}
	}
	return errorInfo{}, false
}

// Code returns a stable machine-readable code for err, or "internal_error"
// when err is not one of the engine's business-rule failures.
func Code(err error) string {
	if info, ok := lookup(err); ok {
		return info.code
	}
	return "internal_error"
}

// Message returns the user-facing message for err. The below-minimum
// message includes the required minimum.
func Message(err error) string {
	var below *BelowMinimumError
	if errors.As(err, &below) {
		return fmt.Sprintf("Minimum order value for this voucher is %d.", below.MinOrderValue)
	}
	if info, ok := lookup(err); ok {
		return info.message
	}
	return "An unexpected error occurred."
}

// IsRuleViolation reports whether err is an expected business-rule failure
// rather than an infrastructure error.
func IsRuleViolation(err error) bool {
	_, ok := lookup(err)
	return ok
}
