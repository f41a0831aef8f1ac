package ksef_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magazyn-erp/magazyn-api/internal/application/billing"
	"github.com/magazyn-erp/magazyn-api/internal/domain"
	"github.com/magazyn-erp/magazyn-api/internal/domain/entity"
	"github.com/magazyn-erp/magazyn-api/internal/infrastructure/ksef"
	"github.com/magazyn-erp/magazyn-api/pkg/config"
	"github.com/magazyn-erp/magazyn-api/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

func submitArgs() (*entity.Invoice, billing.Company, *entity.Contractor, []entity.InvoiceLine) {
	inv := &entity.Invoice{
		ID:         "inv-1",
		Number:     "FV/2025/08/001",
		NetTotal:   decimal.NewFromInt(100),
		VATTotal:   decimal.NewFromInt(23),
		GrossTotal: decimal.NewFromInt(123),
		IssueDate:  time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC),
	}
	company := billing.Company{Name: "Magazyn Sp. z o.o.", NIP: "1234567890"}
	contractor := &entity.Contractor{ID: "ctr-1", Name: "Budimex S.A.", NIP: "5261003187"}
	lines := []entity.InvoiceLine{
		{Name: "Kabel YDY", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(10), VATRate: decimal.NewFromInt(23)},
	}
	return inv, company, contractor, lines
}

func newClient(baseURL string) *ksef.Client {
	return ksef.NewClient(config.KSeFConfig{
		BaseURL:    baseURL,
		Token:      "test-token",
		Timeout:    2 * time.Second,
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
	}, testLogger())
}

func TestSubmit_Success(t *testing.T) {
	var gotAuth, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		assert.Equal(t, "/api/online/Invoice/Send", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"referenceNumber":"20250814-EE-ABCDEF-12"}`))
	}))
	defer srv.Close()

	inv, company, contractor, lines := submitArgs()
	ref, err := newClient(srv.URL).Submit(context.Background(), inv, company, contractor, lines)
	require.NoError(t, err)
	assert.Equal(t, "20250814-EE-ABCDEF-12", ref)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.True(t, strings.HasPrefix(gotContentType, "application/xml"))
}

func TestSubmit_RejectionNotRetried(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"schema validation failed"}`))
	}))
	defer srv.Close()

	inv, company, contractor, lines := submitArgs()
	_, err := newClient(srv.URL).Submit(context.Background(), inv, company, contractor, lines)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 1, calls, "a rejected document must not be resubmitted")
}

func TestSubmit_ServerErrorRetriedThenSucceeds(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"referenceNumber":"REF-OK"}`))
	}))
	defer srv.Close()

	inv, company, contractor, lines := submitArgs()
	ref, err := newClient(srv.URL).Submit(context.Background(), inv, company, contractor, lines)
	require.NoError(t, err)
	assert.Equal(t, "REF-OK", ref)
	assert.Equal(t, 3, calls)
}

func TestSubmit_RetriesExhausted(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	inv, company, contractor, lines := submitArgs()
	_, err := newClient(srv.URL).Submit(context.Background(), inv, company, contractor, lines)
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
	assert.Equal(t, 3, calls)
}

func TestSubmit_EmptyReferenceIsAFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	inv, company, contractor, lines := submitArgs()
	_, err := newClient(srv.URL).Submit(context.Background(), inv, company, contractor, lines)
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
}

func TestSubmit_DevModeWithoutBaseURL(t *testing.T) {
	client := ksef.NewClient(config.KSeFConfig{}, testLogger())

	inv, company, contractor, lines := submitArgs()
	ref, err := client.Submit(context.Background(), inv, company, contractor, lines)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "DEV-"), "ref %q", ref)
}
