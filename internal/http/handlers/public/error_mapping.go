package public

import (
	"errors"

	"github.com/heatspares-next/internal/http/response"
	"github.com/heatspares-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError binds a business error to its API response.
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var couponErrorRules = []mappedHandlerError{
	{target: service.ErrCouponNotFound, code: response.CodeBadRequest, msg: "coupon not found"},
	{target: service.ErrCouponInactive, code: response.CodeBadRequest, msg: "coupon is inactive"},
	{target: service.ErrCouponNotStarted, code: response.CodeBadRequest, msg: "coupon is not active yet"},
	{target: service.ErrCouponExpired, code: response.CodeBadRequest, msg: "coupon has expired"},
	{target: service.ErrCouponUsageLimit, code: response.CodeBadRequest, msg: "coupon usage limit reached"},
	{target: service.ErrCouponMinAmount, code: response.CodeBadRequest, msg: "cart total below coupon minimum"},
}

var bookingErrorRules = []mappedHandlerError{
	{target: service.ErrProviderNotFound, code: response.CodeBadRequest, msg: "provider not found"},
	{target: service.ErrProviderIneligible, code: response.CodeBadRequest, msg: "provider cannot take this booking"},
	{target: service.ErrProviderAtCapacity, code: response.CodeConflict, msg: "provider is fully booked today"},
	{target: service.ErrSlotTaken, code: response.CodeConflict, msg: "time slot is no longer available"},
	{target: service.ErrSlotOutsideHours, code: response.CodeBadRequest, msg: "time slot is outside working hours"},
	{target: service.ErrSlotTooSoon, code: response.CodeBadRequest, msg: "time slot is too soon to book"},
	{target: service.ErrInvalidTimeRange, code: response.CodeBadRequest, msg: "invalid date or time"},
	{target: service.ErrServiceNotProvided, code: response.CodeBadRequest, msg: "provider does not offer the selected services"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "cart is empty"},
	{target: service.ErrProductInactive, code: response.CodeBadRequest, msg: "product is no longer available"},
	{target: service.ErrInsufficientStock, code: response.CodeConflict, msg: "insufficient stock"},
	{target: service.ErrServiceNotFound, code: response.CodeBadRequest, msg: "service not found"},
}

func respondCheckoutError(c *gin.Context, err error) {
	rules := make([]mappedHandlerError, 0, len(checkoutErrorRules)+len(couponErrorRules)+len(bookingErrorRules))
	rules = append(rules, checkoutErrorRules...)
	rules = append(rules, couponErrorRules...)
	rules = append(rules, bookingErrorRules...)
	respondWithMappedError(c, err, rules, response.CodeInternal, "checkout failed")
}
