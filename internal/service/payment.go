package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/lifesure/lifesure-backend/internal/apperr"
	"github.com/lifesure/lifesure-backend/internal/interfaces"
	"github.com/lifesure/lifesure-backend/internal/models"
	"github.com/lifesure/lifesure-backend/internal/telemetry"
)

const reconcileLockTTL = 30 * time.Second

// PaymentService reconciles completed gateway payments with applications and
// appends the immutable transaction audit log.
type PaymentService struct {
	apps      interfaces.ApplicationRepository
	txs       interfaces.TransactionRepository
	gateway   interfaces.PaymentGateway
	locker    interfaces.Locker
	publisher interfaces.EventPublisher
}

func NewPaymentService(
	apps interfaces.ApplicationRepository,
	txs interfaces.TransactionRepository,
	gateway interfaces.PaymentGateway,
	locker interfaces.Locker,
	publisher interfaces.EventPublisher,
) *PaymentService {
	return &PaymentService{
		apps:      apps,
		txs:       txs,
		gateway:   gateway,
		locker:    locker,
		publisher: publisher,
	}
}

type CreateIntentInput struct {
	PolicyID      string  `json:"policyId"`
	PolicyName    string  `json:"policyName"`
	Amount        float64 `json:"amount"`
	CustomerEmail string  `json:"customerEmail"`
}

// CreateIntent delegates to the gateway; no local state is touched.
func (s *PaymentService) CreateIntent(ctx context.Context, in CreateIntentInput) (string, error) {
	if in.Amount <= 0 {
		return "", apperr.Validation("amount must be positive")
	}
	if in.CustomerEmail == "" {
		return "", apperr.Validation("customerEmail is required")
	}

	amountMinor := int64(math.Round(in.Amount * 100))
	return s.gateway.CreateIntent(ctx, amountMinor, "usd", in.CustomerEmail, map[string]string{
		"policyId":   in.PolicyID,
		"policyName": in.PolicyName,
	})
}

type ReconcileInput struct {
	PaymentIntentID string `json:"paymentIntentId"`
	Email           string `json:"email"`
	PolicyID        string `json:"policyId"`
	ApplicationID   string `json:"applicationId"`
}

type ReconcileResult struct {
	Transaction    models.Transaction `json:"transaction"`
	NextPaymentDue time.Time          `json:"nextPaymentDue"`
}

// Reconcile confirms the intent with the gateway, marks the application paid
// (and Approved) in a single document update, then appends the transaction
// record. The gateway's amount is authoritative; the caller's is ignored.
// The next due date is computed from the reconciliation instant, not from
// the previous due date.
func (s *PaymentService) Reconcile(ctx context.Context, in ReconcileInput) (*ReconcileResult, error) {
	switch {
	case in.PaymentIntentID == "":
		return nil, apperr.Validation("paymentIntentId is required")
	case in.Email == "":
		return nil, apperr.Validation("email is required")
	case in.PolicyID == "":
		return nil, apperr.Validation("policyId is required")
	case in.ApplicationID == "":
		return nil, apperr.Validation("applicationId is required")
	}

	appID, err := primitive.ObjectIDFromHex(in.ApplicationID)
	if err != nil {
		return nil, apperr.Validation("applicationId is malformed")
	}

	lockKey := fmt.Sprintf("reconcile_lock:%s", in.ApplicationID)
	locked, err := s.locker.Acquire(ctx, lockKey, reconcileLockTTL)
	if err != nil {
		return nil, apperr.Internal("acquire reconcile lock", err)
	}
	if !locked {
		return nil, apperr.Conflict("payment for application %s is already being processed", in.ApplicationID)
	}
	defer s.locker.Release(ctx, lockKey)

	intent, err := s.gateway.RetrieveIntent(ctx, in.PaymentIntentID)
	if err != nil {
		return nil, err
	}

	// The email match prevents reconciling someone else's application.
	app, err := s.apps.GetByIDAndEmail(ctx, appID, in.Email)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, apperr.NotFound("application %s not found for %s", in.ApplicationID, in.Email)
	}

	now := time.Now().UTC()
	nextDue := app.Payment.Frequency.NextDueFrom(now)

	matched, err := s.apps.MarkPaid(ctx, appID, intent.ID, now, nextDue)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, apperr.NotFound("application %s not found", in.ApplicationID)
	}

	policyName := intent.Metadata["policyName"]
	if app.PolicyDetails != nil {
		policyName = app.PolicyDetails.Title
	}

	tx := models.Transaction{
		TransactionID: intent.ID,
		ApplicationID: appID,
		PolicyID:      in.PolicyID,
		CustomerEmail: in.Email,
		PolicyName:    policyName,
		PaidAmount:    float64(intent.Amount) / 100,
		Date:          now,
		Status:        intent.Status,
	}
	if _, err := s.txs.Insert(ctx, &tx); err != nil {
		// The application is already marked Paid at this point. Transaction
		// is an audit log, not the source of truth, so the gap is logged and
		// the insert's error surfaced.
		telemetry.Logger.Error("Transaction insert failed after payment update",
			zap.String("application_id", in.ApplicationID),
			zap.String("payment_intent_id", intent.ID),
			zap.Error(err),
		)
		return nil, err
	}

	telemetry.PaymentsReconciled.Inc()
	publishEvent(ctx, s.publisher, in.ApplicationID, lifecycleEvent{
		Entity: "application",
		ID:     in.ApplicationID,
		Event:  "payment_reconciled",
		To:     string(models.PaymentPaid),
	})
	telemetry.Logger.Info("Payment reconciled",
		zap.String("application_id", in.ApplicationID),
		zap.String("payment_intent_id", intent.ID),
		zap.Float64("paid_amount", tx.PaidAmount),
	)

	return &ReconcileResult{Transaction: tx, NextPaymentDue: nextDue}, nil
}

func (s *PaymentService) ListTransactions(ctx context.Context, customerEmail string) ([]models.Transaction, error) {
	return s.txs.List(ctx, customerEmail)
}
