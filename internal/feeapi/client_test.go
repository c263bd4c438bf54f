package feeapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/packlane/packlane/internal/config"
	feecalcdomain "github.com/packlane/packlane/internal/feecalc/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestClient(baseURL string) *Client {
	return NewClient(Params{
		Config: config.Config{RemoteFeeAPIBaseURL: baseURL},
		Log:    zap.NewNop(),
	})
}

func TestCalculate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/fees/calculate", r.URL.Path)

		var req calculationRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "oregon", req.JurisdictionCode)
		assert.Len(t, req.Components, 1)

		json.NewEncoder(w).Encode(CalculationResponse{
			JurisdictionCode: "oregon",
			BaseFee:          0.9,
			TotalFee:         0.675,
			TotalDiscount:    0.225,
			CurrencyCode:     "USD",
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result, err := client.Calculate(context.Background(), "oregon", 6_000_000, 12,
		[]feecalcdomain.MaterialComponent{{Type: "Plastic (PET)", WeightGrams: 2000, Recyclable: true}}, 1)
	assert.NoError(t, err)
	assert.InDelta(t, 0.675, result.TotalFee, 1e-9)
	assert.Equal(t, "USD", result.CurrencyCode)
}

func TestCalculate_RemoteError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":{"message":"unknown jurisdiction"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Calculate(context.Background(), "atlantis", 0, 0, nil, 1)

	var remote *RemoteCalculationError
	assert.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusUnprocessableEntity, remote.Status)
	assert.Equal(t, "unknown jurisdiction", remote.Message)
}

func TestCalculate_UnparseableErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Calculate(context.Background(), "oregon", 0, 0, nil, 1)

	var remote *RemoteCalculationError
	assert.ErrorAs(t, err, &remote)
	assert.Equal(t, "remote_calculation_failed", remote.Message)
}

func TestCalculate_Unconfigured(t *testing.T) {
	client := newTestClient("")
	assert.False(t, client.Enabled())

	_, err := client.Calculate(context.Background(), "oregon", 0, 0, nil, 1)
	var remote *RemoteCalculationError
	assert.ErrorAs(t, err, &remote)
}
