package feeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/packlane/packlane/internal/config"
	feecalcdomain "github.com/packlane/packlane/internal/feecalc/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// RemoteCalculationError carries the upstream service's message for a
// non-success response. The client performs no retries; transient
// failures are the caller's concern.
type RemoteCalculationError struct {
	Status  int
	Message string
}

func (e *RemoteCalculationError) Error() string {
	return fmt.Sprintf("remote fee calculation failed (%d): %s", e.Status, e.Message)
}

type calculationRequest struct {
	JurisdictionCode string                            `json:"jurisdiction_code"`
	AnnualRevenue    float64                           `json:"annual_revenue"`
	AnnualTonnage    float64                           `json:"annual_tonnage"`
	Components       []feecalcdomain.MaterialComponent `json:"components"`
	Volume           float64                           `json:"volume"`
}

// CalculationResponse is the V1 wire shape. The remote engine is
// expected to match the local one numerically for the same inputs.
type CalculationResponse struct {
	JurisdictionCode string  `json:"jurisdiction_code"`
	BaseFee          float64 `json:"base_fee"`
	TotalFee         float64 `json:"total_fee"`
	TotalDiscount    float64 `json:"total_discount"`
	CurrencyCode     string  `json:"currency_code"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

type Client struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

type Params struct {
	fx.In

	Config config.Config
	Log    *zap.Logger
}

func NewClient(p Params) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(p.Config.RemoteFeeAPIBaseURL), "/"),
		client:  &http.Client{Timeout: 12 * time.Second},
		log:     p.Log.Named("feeapi.client"),
	}
}

func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// Calculate submits a producer's packaging profile to the V1 remote
// calculator.
func (c *Client) Calculate(
	ctx context.Context,
	jurisdictionCode string,
	annualRevenue, annualTonnage float64,
	components []feecalcdomain.MaterialComponent,
	volume float64,
) (*CalculationResponse, error) {
	if !c.Enabled() {
		return nil, &RemoteCalculationError{Status: http.StatusServiceUnavailable, Message: "remote fee API is not configured"}
	}

	payload, err := json.Marshal(calculationRequest{
		JurisdictionCode: jurisdictionCode,
		AnnualRevenue:    annualRevenue,
		AnnualTonnage:    annualTonnage,
		Components:       components,
		Volume:           volume,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/fees/calculate", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		message := "remote_calculation_failed"
		var remoteErr errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&remoteErr); err == nil {
			if m := strings.TrimSpace(remoteErr.Error.Message); m != "" {
				message = m
			}
		}
		return nil, &RemoteCalculationError{Status: resp.StatusCode, Message: message}
	}

	var result CalculationResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	if result.JurisdictionCode == "" {
		result.JurisdictionCode = jurisdictionCode
	}
	return &result, nil
}
