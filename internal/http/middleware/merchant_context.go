package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"aurumpay.com/app/internal/shared/apperr"
)

const (
	// HeaderMerchantID is set by the authenticating gateway in front of
	// this service. Session handling itself is not this service's job.
	HeaderMerchantID = "X-Merchant-ID"

	CtxKeyMerchantID = "merchant_id"
)

// MerchantContext resolves the acting merchant from the request headers.
func MerchantContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(HeaderMerchantID)
		if raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				Fail(c, apperr.UnauthorizedErr("Invalid merchant identity."))
				return
			}
			c.Set(CtxKeyMerchantID, id)
		}
		c.Next()
	}
}

// MerchantID returns the acting merchant, when one is set.
func MerchantID(c *gin.Context) (int64, bool) {
	if v, ok := c.Get(CtxKeyMerchantID); ok {
		if id, ok := v.(int64); ok {
			return id, true
		}
	}
	return 0, false
}

// RequireMerchant rejects requests without a merchant identity.
func RequireMerchant() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := MerchantID(c); !ok {
			Fail(c, apperr.UnauthorizedErr("Merchant identity required."))
			return
		}
		c.Next()
	}
}
