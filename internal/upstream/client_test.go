package upstream

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicepro/internal/config"
	apperrors "invoicepro/internal/errors"
	"invoicepro/internal/models"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(config.UpstreamConfig{
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	}, slog.Default())
}

func TestGetShops(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shops", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"S1","name":"Ravi Stores","city":"Chennai","state":"Tamil Nadu","category":"Grocery"},
			{"id":"S2","name":"Lakshmi Textiles","category":"Textiles"}
		]`))
	}))

	shops, err := client.GetShops(context.Background())
	require.NoError(t, err)
	require.Len(t, shops, 2)
	assert.Equal(t, "Ravi Stores", shops[0].Name)
	assert.Equal(t, "Chennai", shops[0].City)
}

func TestGetInvoices_AmountCoercion(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"invoiceId":"I001","shopId":"S1","customerNumber":"9876543210","amount":100,"date":"2025-06-01","category":"Grocery"},
			{"invoiceId":"I002","shopId":"S1","customerNumber":"9876543210","amount":"200.5","date":"2025-06-02","category":"Grocery"},
			{"invoiceId":"I003","shopId":"S1","customerNumber":"9876543210","amount":"garbage","date":"2025-06-03","category":"Grocery"}
		]`))
	}))

	invoices, err := client.GetInvoices(context.Background())
	require.NoError(t, err)
	require.Len(t, invoices, 3)
	assert.Equal(t, models.Amount(100), invoices[0].Amount)
	assert.Equal(t, models.Amount(200.5), invoices[1].Amount)
	assert.Equal(t, models.Amount(0), invoices[2].Amount)
}

func TestClose(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))

	_, err := client.GetShops(context.Background())
	require.NoError(t, err)

	// Safe to call after traffic and again on an already-drained client
	client.Close()
	client.Close()
}

func TestGetInvoice(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/invoices/I001", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"invoiceId":"I001","shopId":"S1","customerNumber":"9876543210","amount":"100","date":"2025-06-01","category":"Grocery"}`))
	}))

	invoice, err := client.GetInvoice(context.Background(), "I001")
	require.NoError(t, err)
	assert.Equal(t, "I001", invoice.InvoiceID)
	assert.Equal(t, models.Amount(100), invoice.Amount)
}

func TestGet_ErrorEnvelopeMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"database on fire"}`))
	}))

	_, err := client.GetShops(context.Background())
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeUpstream, appErr.Code)
	assert.Equal(t, "database on fire", appErr.Message)
}

func TestGet_ErrorWithoutEnvelope(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`boom`))
	}))

	_, err := client.GetCustomers(context.Background())
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, "Unknown error", appErr.Message)
}

func TestGet_NotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Customer not found"}`))
	}))

	_, err := client.GetCustomer(context.Background(), "9999999999")
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
	assert.Equal(t, "Customer not found", appErr.Message)
}

func TestGet_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	client := New(config.UpstreamConfig{
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	}, slog.Default())
	srv.Close()

	_, err := client.GetShops(context.Background())
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeUpstream, appErr.Code)
	assert.NotEmpty(t, appErr.Message)
	assert.Error(t, appErr.Cause)
}

func TestGetDashboardAnalytics(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analytics/dashboard/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"totalInvoices":{"allTime":120,"last7Days":14,"today":3,"custom":null},
			"totalRevenue":{"allTime":50000,"last7Days":4000,"today":600,"custom":7},
			"revenueByShop":[{"shop":"Ravi Stores","revenue":150}],
			"categoryWisePurchases":[{"category":"Grocery","revenue":90}]
		}`))
	}))

	analytics, err := client.GetDashboardAnalytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, float64(120), analytics.TotalInvoices.AllTime)
	assert.Nil(t, analytics.TotalInvoices.Custom)
	require.NotNil(t, analytics.TotalRevenue.Custom)
	assert.Equal(t, float64(7), *analytics.TotalRevenue.Custom)
	require.Len(t, analytics.RevenueByShop, 1)
	assert.Equal(t, "Ravi Stores", analytics.RevenueByShop[0].Shop)
}

func TestCreateShop_Success(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/business/onboard/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"Shop created","shop":{"id":"S9","name":"Ravi Stores","category":"Grocery"}}`))
	}))

	result, err := client.CreateShop(context.Background(), models.OnboardRequest{Name: "Ravi Stores"})
	require.NoError(t, err)
	assert.True(t, result.Success)
	require.NotNil(t, result.Shop)
	assert.Equal(t, "S9", result.Shop.ID)
}

func TestCreateShop_FieldErrors(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"errors":{"gstNumber":"GST number already registered"}}`))
	}))

	_, err := client.CreateShop(context.Background(), models.OnboardRequest{})
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	assert.Equal(t, "GST number already registered", appErr.Fields["gstNumber"])
}

func TestCreateShop_RejectionMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"success":false,"message":"Shop already exists"}`))
	}))

	_, err := client.CreateShop(context.Background(), models.OnboardRequest{})
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeUpstream, appErr.Code)
	assert.Equal(t, "Shop already exists", appErr.Message)
}

func TestCreateShop_UnknownErrorFallback(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html>gateway error</html>`))
	}))

	_, err := client.CreateShop(context.Background(), models.OnboardRequest{})
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, "Unknown error", appErr.Message)
}
