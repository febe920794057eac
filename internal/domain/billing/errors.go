package billing

import (
	"errors"
	"fmt"
)

// Sentinel errors for the billing flows. Handlers translate these into HTTP
// statuses; anything unrecognized is an internal error.
var (
	ErrTokenRequired       = errors.New("a payment token is required")
	ErrPlanNotFound        = errors.New("plan not found")
	ErrCouponNotFound      = errors.New("coupon not found")
	ErrCouponNotRedeemable = errors.New("coupon is expired or fully redeemed")
	ErrNoSubscription      = errors.New("no active subscription")
	ErrNoCreditCard        = errors.New("no credit card on file")
	ErrUserNotFound        = errors.New("user not found")
)

// GatewayError wraps a failed payment gateway call. Flows return one before
// touching any local row, so local state is untouched whenever it surfaces.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// ConsistencyError reports a local commit that failed after the gateway call
// already succeeded. The gateway now disagrees with our records and an
// operator has to reconcile by hand; it must never be swallowed.
type ConsistencyError struct {
	Op  string
	Err error
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%s: local commit failed after gateway success: %v", e.Op, e.Err)
}

func (e *ConsistencyError) Unwrap() error {
	return e.Err
}
