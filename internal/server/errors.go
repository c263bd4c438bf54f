package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/packlane/packlane/internal/feeapi"
	feecalcdomain "github.com/packlane/packlane/internal/feecalc/domain"
	obligationdomain "github.com/packlane/packlane/internal/obligation/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrNotFound           = errors.New("not_found")
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrTooManyRequests    = errors.New("too_many_requests")
	ErrServiceUnavailable = errors.New("service_unavailable")
	ErrInternal           = errors.New("internal_error")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	var invalidInput *feecalcdomain.InvalidInputError
	if errors.As(err, &invalidInput) {
		violations := make([]ValidationError, 0, len(invalidInput.Violations))
		for _, v := range invalidInput.Violations {
			violations = append(violations, ValidationError{
				Field:   "request",
				Code:    "invalid_input",
				Message: v,
			})
		}
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  violations,
		}
	}

	var unsupported *obligationdomain.UnsupportedJurisdictionError
	if errors.As(err, &unsupported) {
		return http.StatusBadRequest, errorPayload{
			Type:    "unsupported_jurisdiction",
			Message: unsupported.Error(),
		}
	}

	var remote *feeapi.RemoteCalculationError
	if errors.As(err, &remote) {
		return http.StatusBadGateway, errorPayload{
			Type:    "remote_calculation_failed",
			Message: remote.Message,
		}
	}

	switch {
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "invalid request",
		}
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "too_many_requests",
			Message: "rate limit exceeded",
		}
	case errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "service unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

// classifyErrorForLog feeds the request logger low-cardinality error
// labels without leaking message contents.
func classifyErrorForLog(err error) (string, string) {
	var invalidInput *feecalcdomain.InvalidInputError
	var unsupported *obligationdomain.UnsupportedJurisdictionError
	var remote *feeapi.RemoteCalculationError

	switch {
	case errors.As(err, &invalidInput):
		return "validation_error", "invalid_input"
	case errors.As(err, &unsupported):
		return "validation_error", "unsupported_jurisdiction"
	case errors.As(err, &remote):
		return "upstream_error", "remote_calculation_failed"
	case errors.Is(err, ErrInvalidRequest):
		return "validation_error", "invalid_request"
	case errors.Is(err, ErrNotFound):
		return "not_found", "not_found"
	case errors.Is(err, ErrTooManyRequests):
		return "rate_limited", "too_many_requests"
	case errors.Is(err, ErrServiceUnavailable):
		return "unavailable", "service_unavailable"
	default:
		return "internal_error", "internal_error"
	}
}
