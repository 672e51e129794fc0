package middleware

import (
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/didip/tollbooth_gin"
	"github.com/gin-gonic/gin"
)

// NewLimiter builds a per-IP limiter allowing perSecond requests.
func NewLimiter(perSecond float64) *limiter.Limiter {
	lmt := tollbooth.NewLimiter(perSecond, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	lmt.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})
	lmt.SetMessage(`{"error":"Too many requests, please try again later."}`)
	lmt.SetMessageContentType("application/json; charset=utf-8")
	return lmt
}

// RateLimiter rejects requests over the limit with 429.
func RateLimiter(lmt *limiter.Limiter) gin.HandlerFunc {
	return tollbooth_gin.LimitHandler(lmt)
}
