package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lifesure/lifesure-backend/internal/apperr"
)

func TestCreateIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/payment_intents", r.URL.Path)
		require.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		require.Equal(t, "12050", r.PostForm.Get("amount"))
		require.Equal(t, "usd", r.PostForm.Get("currency"))
		require.Equal(t, "a@x.com", r.PostForm.Get("receipt_email"))
		require.Equal(t, "Term Life Shield", r.PostForm.Get("metadata[policyName]"))

		json.NewEncoder(w).Encode(map[string]any{
			"id":            "pi_123",
			"client_secret": "pi_123_secret",
			"amount":        12050,
			"status":        "requires_payment_method",
		})
	}))
	defer srv.Close()

	g := NewStripeGatewayWithBaseURL("sk_test", srv.URL)
	secret, err := g.CreateIntent(context.Background(), 12050, "usd", "a@x.com", map[string]string{
		"policyName": "Term Life Shield",
	})
	require.NoError(t, err)
	require.Equal(t, "pi_123_secret", secret)
}

func TestRetrieveIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/payment_intents/pi_123", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]any{
			"id":     "pi_123",
			"amount": 12000,
			"status": "succeeded",
			"metadata": map[string]string{
				"policyId": "p1",
			},
		})
	}))
	defer srv.Close()

	g := NewStripeGatewayWithBaseURL("sk_test", srv.URL)
	intent, err := g.RetrieveIntent(context.Background(), "pi_123")
	require.NoError(t, err)
	require.Equal(t, "pi_123", intent.ID)
	require.Equal(t, int64(12000), intent.Amount)
	require.Equal(t, "succeeded", intent.Status)
	require.Equal(t, "p1", intent.Metadata["policyId"])
}

func TestGatewayErrorSurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "Your card was declined."},
		})
	}))
	defer srv.Close()

	g := NewStripeGatewayWithBaseURL("sk_test", srv.URL)
	_, err := g.RetrieveIntent(context.Background(), "pi_bad")
	require.Error(t, err)
	require.True(t, apperr.IsExternal(err))
	require.Contains(t, err.Error(), "Your card was declined.")
}

func TestGatewayUnreachable(t *testing.T) {
	g := NewStripeGatewayWithBaseURL("sk_test", "http://127.0.0.1:1")
	_, err := g.RetrieveIntent(context.Background(), "pi_123")
	require.True(t, apperr.IsExternal(err))
}
