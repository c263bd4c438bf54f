package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	realtimedomain "github.com/packlane/packlane/internal/realtime/domain"
	"github.com/packlane/packlane/internal/realtime/liveevents"
)

type realtimeCalculateRequest struct {
	realtimedomain.CalculationRequest
	// DebounceMs > 0 routes the request through the trailing-edge
	// debouncer instead of the immediate path.
	DebounceMs int64 `json:"debounce_ms"`
}

func (s *Server) RealtimeCalculate(c *gin.Context) {
	var req realtimeCalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if strings.TrimSpace(req.ProductID) == "" {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if req.Region == "" {
		req.Region = s.cfg.DefaultRegion
	}

	var (
		result *realtimedomain.RealTimeCalculationResult
		err    error
	)
	if req.DebounceMs > 0 {
		result, err = s.realtimeSvc.GetDebounced(c.Request.Context(), req.CalculationRequest, time.Duration(req.DebounceMs)*time.Millisecond)
	} else {
		result, err = s.realtimeSvc.Get(c.Request.Context(), req.CalculationRequest)
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ClearRealtimeCache invalidates one product's cached calculations, or
// everything when no product_id is given.
func (s *Server) ClearRealtimeCache(c *gin.Context) {
	productID := strings.TrimSpace(c.Query("product_id"))
	s.realtimeSvc.ClearCache(productID)

	scope := "all"
	if productID != "" {
		scope = productID
	}
	c.JSON(http.StatusOK, gin.H{"cleared": scope})
}

func (s *Server) StreamCalculations(c *gin.Context) {
	if s.calcEvents == nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	productID := strings.TrimSpace(c.Param("productId"))
	if productID == "" {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	c.Set("product_id", productID)

	subscription, backlog, err := s.calcEvents.Subscribe(productID)
	if err != nil {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}
	defer subscription.Close()

	writer := c.Writer
	headers := writer.Header()
	headers.Set("Content-Type", "text/event-stream")
	headers.Set("Cache-Control", "no-cache")
	headers.Set("Connection", "keep-alive")
	headers.Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	flusher, ok := writer.(http.Flusher)
	if !ok {
		AbortWithError(c, ErrServiceUnavailable)
		return
	}

	if _, err := io.WriteString(writer, "retry: 2000\n\n"); err != nil {
		return
	}

	for _, event := range backlog {
		if err := writeCalculationEvent(writer, productID, event); err != nil {
			return
		}
	}
	flusher.Flush()

	ctx := c.Request.Context()
	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event := <-subscription.Events():
			if err := writeCalculationEvent(writer, productID, event); err != nil {
				return
			}
			flusher.Flush()
		case <-heartbeat.C:
			if _, err := io.WriteString(writer, ": heartbeat\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeCalculationEvent(w io.Writer, productID string, event liveevents.CalculationEvent) error {
	payload := event
	if payload.ProductID == "" {
		payload.ProductID = productID
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}

func (s *Server) CalculationHistory(c *gin.Context) {
	productID := strings.TrimSpace(c.Param("productId"))
	if productID == "" {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		limit = parsed
	}

	records, err := s.calclogSvc.History(c.Request.Context(), productID, limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}
