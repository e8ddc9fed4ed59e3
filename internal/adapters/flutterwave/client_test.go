package flutterwave

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/wallet_backend/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "FLWSECK_TEST-abc", time.Second)
}

func TestVerifyByID_Successful(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/transactions/4455/verify", r.URL.Path)
		assert.Equal(t, "Bearer FLWSECK_TEST-abc", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","message":"Transaction fetched successfully","data":{
			"id":4455,"tx_ref":"FLW-acct-1-123456","amount":1000,"currency":"NGN","status":"successful","payment_type":"card"}}`))
	})

	v, err := client.VerifyByID(context.Background(), "4455")

	require.NoError(t, err)
	assert.True(t, v.Successful())
	assert.True(t, v.Amount.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, "NGN", v.Currency)
	assert.Equal(t, "4455", v.ProviderID)
	assert.Equal(t, "FLW-acct-1-123456", v.Reference)
	assert.Equal(t, "card", v.PaymentType)
}

func TestVerifyByReference_EscapesRef(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/transactions/verify_by_reference", r.URL.Path)
		assert.Equal(t, "FLW-a b-1", r.URL.Query().Get("tx_ref"))
		_, _ = w.Write([]byte(`{"status":"success","data":{"id":1,"tx_ref":"FLW-a b-1","amount":"50.5","currency":"NGN","status":"failed"}}`))
	})

	v, err := client.VerifyByReference(context.Background(), "FLW-a b-1")

	require.NoError(t, err)
	assert.False(t, v.Successful())
	assert.True(t, v.Amount.Equal(decimal.RequireFromString("50.5")))
}

func TestVerify_ErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "not found", status: http.StatusNotFound, body: `{"status":"error","message":"No transaction was found for this id"}`, wantErr: apperrors.ErrVerificationRejected},
		{name: "bad request", status: http.StatusBadRequest, body: `{}`, wantErr: apperrors.ErrVerificationRejected},
		{name: "server error", status: http.StatusBadGateway, body: ``, wantErr: apperrors.ErrVerificationUnavailable},
		{name: "rate limited", status: http.StatusTooManyRequests, body: ``, wantErr: apperrors.ErrVerificationUnavailable},
		{name: "bad credentials", status: http.StatusUnauthorized, body: `{"status":"error"}`, wantErr: apperrors.ErrVerificationUnavailable},
		{name: "garbage", status: http.StatusOK, body: `<html>`, wantErr: apperrors.ErrVerificationUnavailable},
		{name: "error envelope", status: http.StatusOK, body: `{"status":"error","message":"nope"}`, wantErr: apperrors.ErrVerificationRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			v, err := client.VerifyByID(context.Background(), "1")

			assert.Nil(t, v)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestVerify_TimeoutIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL, "key", 20*time.Millisecond)

	_, err := client.VerifyByReference(context.Background(), "FLW-1")

	assert.ErrorIs(t, err, apperrors.ErrVerificationUnavailable)
}

func TestVerify_MissingSecretKey(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", "", time.Second)

	_, err := client.VerifyByID(context.Background(), "1")

	assert.ErrorIs(t, err, apperrors.ErrVerificationUnavailable)
}
