package server

import "github.com/gin-gonic/gin"

// CalcRateLimit enforces the per-client and per-endpoint calculation
// quotas. With no limiter configured it is a pass-through; a Redis
// failure also fails open, because a broken quota store must not take
// the calculators down with it.
func (s *Server) CalcRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.calcLimiter == nil || !s.calcLimiter.Enabled() {
			c.Next()
			return
		}

		ctx := c.Request.Context()

		allowed, err := s.calcLimiter.AllowClient(ctx, c.ClientIP())
		if err == nil && !allowed {
			AbortWithError(c, ErrTooManyRequests)
			return
		}

		allowed, err = s.calcLimiter.AllowEndpoint(ctx, c.FullPath())
		if err == nil && !allowed {
			AbortWithError(c, ErrTooManyRequests)
			return
		}

		c.Next()
	}
}
