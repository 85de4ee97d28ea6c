// Package gateway implements the payment collaborator against the Stripe
// PaymentIntents REST API. Only create and retrieve are needed; the gateway
// owns its own ledger and card handling.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lifesure/lifesure-backend/internal/apperr"
	"github.com/lifesure/lifesure-backend/internal/models"
)

const defaultBaseURL = "https://api.stripe.com/v1"

type StripeGateway struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func NewStripeGateway(secretKey string) *StripeGateway {
	return &StripeGateway{
		secretKey: secretKey,
		baseURL:   defaultBaseURL,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// NewStripeGatewayWithBaseURL exists for tests.
func NewStripeGatewayWithBaseURL(secretKey, baseURL string) *StripeGateway {
	g := NewStripeGateway(secretKey)
	g.baseURL = baseURL
	return g
}

type intentPayload struct {
	ID           string            `json:"id"`
	Amount       int64             `json:"amount"`
	Status       string            `json:"status"`
	ClientSecret string            `json:"client_secret"`
	Metadata     map[string]string `json:"metadata"`
	Error        *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amountMinor int64, currency, receiptEmail string, metadata map[string]string) (string, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountMinor, 10))
	form.Set("currency", currency)
	if receiptEmail != "" {
		form.Set("receipt_email", receiptEmail)
	}
	form.Set("payment_method_types[]", "card")
	for k, v := range metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	intent, err := g.do(ctx, http.MethodPost, "/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}

func (g *StripeGateway) RetrieveIntent(ctx context.Context, id string) (*models.PaymentIntent, error) {
	intent, err := g.do(ctx, http.MethodGet, "/payment_intents/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return &models.PaymentIntent{
		ID:       intent.ID,
		Amount:   intent.Amount,
		Status:   intent.Status,
		Metadata: intent.Metadata,
	}, nil
}

func (g *StripeGateway) do(ctx context.Context, method, path string, body io.Reader) (*intentPayload, error) {
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return nil, apperr.External("payment gateway request", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, apperr.External("payment gateway unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.External("payment gateway response", err)
	}

	var payload intentPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, apperr.External("payment gateway response", err)
	}

	if resp.StatusCode >= 400 {
		msg := "payment gateway error"
		if payload.Error != nil && payload.Error.Message != "" {
			msg = payload.Error.Message
		}
		return nil, apperr.External(msg, fmt.Errorf("status %d", resp.StatusCode))
	}
	return &payload, nil
}
