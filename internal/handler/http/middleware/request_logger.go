package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	usecasecontract "github.com/mikiasgoitom/videoreact/internal/usecase/contract"
)

// RequestLogger writes one debug line per request through the app logger.
func RequestLogger(logger usecasecontract.IAppLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debugf("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
