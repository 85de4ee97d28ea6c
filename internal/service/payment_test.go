package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lifesure/lifesure-backend/internal/apperr"
	"github.com/lifesure/lifesure-backend/internal/models"
	"github.com/lifesure/lifesure-backend/internal/service"
)

type paymentFixture struct {
	svc     *service.PaymentService
	apps    *fakeApplicationRepo
	txs     *fakeTransactionRepo
	gateway *fakeGateway
	locker  *fakeLocker
	appID   primitive.ObjectID
}

func newPaymentFixture(t *testing.T, frequency models.PaymentFrequency) *paymentFixture {
	t.Helper()
	apps := newFakeApplicationRepo()
	txs := &fakeTransactionRepo{}
	gw := newFakeGateway()
	locker := newFakeLocker()

	// An application that has been sitting since last year, with a stale due
	// date, to prove renewal is computed from now rather than from schedule.
	stale := time.Now().UTC().AddDate(-1, 0, 0)
	snapshot := models.PolicySnapshot{Title: "Term Life Shield", BasePremium: 120}
	policyID := primitive.NewObjectID()
	appID, err := apps.Insert(context.Background(), &models.Application{
		Name:          "Alice",
		Email:         "a@x.com",
		Phone:         "555",
		PolicyID:      &policyID,
		PolicyDetails: &snapshot,
		Status:        models.StatusPending,
		Payment: models.PaymentInfo{
			Status:         models.PaymentDue,
			Amount:         120,
			Frequency:      frequency,
			NextPaymentDue: stale,
		},
		CreatedAt: stale,
	})
	require.NoError(t, err)

	gw.intents["pi_123"] = &models.PaymentIntent{
		ID:     "pi_123",
		Amount: 12000,
		Status: "succeeded",
	}

	return &paymentFixture{
		svc:     service.NewPaymentService(apps, txs, gw, locker, &fakePublisher{}),
		apps:    apps,
		txs:     txs,
		gateway: gw,
		locker:  locker,
		appID:   appID,
	}
}

func (f *paymentFixture) reconcileInput() service.ReconcileInput {
	return service.ReconcileInput{
		PaymentIntentID: "pi_123",
		Email:           "a@x.com",
		PolicyID:        primitive.NewObjectID().Hex(),
		ApplicationID:   f.appID.Hex(),
	}
}

func TestReconcileRequiresAllFields(t *testing.T) {
	f := newPaymentFixture(t, models.FrequencyMonthly)

	for _, mutate := range []func(*service.ReconcileInput){
		func(in *service.ReconcileInput) { in.PaymentIntentID = "" },
		func(in *service.ReconcileInput) { in.Email = "" },
		func(in *service.ReconcileInput) { in.PolicyID = "" },
		func(in *service.ReconcileInput) { in.ApplicationID = "" },
	} {
		in := f.reconcileInput()
		mutate(&in)
		_, err := f.svc.Reconcile(context.Background(), in)
		require.True(t, apperr.IsValidation(err), "expected validation error, got %v", err)
	}
}

func TestReconcileMonthlyDueDateFromNow(t *testing.T) {
	f := newPaymentFixture(t, models.FrequencyMonthly)

	before := time.Now().UTC()
	result, err := f.svc.Reconcile(context.Background(), f.reconcileInput())
	require.NoError(t, err)

	// One calendar month after the reconciliation instant, regardless of the
	// stale nextPaymentDue the application carried.
	require.WithinDuration(t, before.AddDate(0, 1, 0), result.NextPaymentDue, 5*time.Second)

	app, _ := f.apps.GetByID(context.Background(), f.appID)
	require.Equal(t, models.StatusApproved, app.Status)
	require.Equal(t, models.PaymentPaid, app.Payment.Status)
	require.Equal(t, "pi_123", app.Payment.PaymentIntentID)
	require.NotNil(t, app.Payment.LastPaymentDate)
}

func TestReconcileYearlyDueDate(t *testing.T) {
	f := newPaymentFixture(t, models.FrequencyYearly)

	before := time.Now().UTC()
	result, err := f.svc.Reconcile(context.Background(), f.reconcileInput())
	require.NoError(t, err)
	require.WithinDuration(t, before.AddDate(1, 0, 0), result.NextPaymentDue, 5*time.Second)
}

func TestReconcileUsesGatewayAmount(t *testing.T) {
	f := newPaymentFixture(t, models.FrequencyMonthly)
	f.gateway.intents["pi_123"].Amount = 45500

	result, err := f.svc.Reconcile(context.Background(), f.reconcileInput())
	require.NoError(t, err)
	require.Equal(t, 455.0, result.Transaction.PaidAmount)
	require.Equal(t, "Term Life Shield", result.Transaction.PolicyName)
	require.Equal(t, "pi_123", result.Transaction.TransactionID)
}

func TestReconcileWrongEmailIsNotFound(t *testing.T) {
	f := newPaymentFixture(t, models.FrequencyMonthly)

	in := f.reconcileInput()
	in.Email = "intruder@x.com"
	_, err := f.svc.Reconcile(context.Background(), in)
	require.True(t, apperr.IsNotFound(err))
	require.Empty(t, f.txs.txs)
}

func TestReconcileSameIntentTwiceConflicts(t *testing.T) {
	f := newPaymentFixture(t, models.FrequencyMonthly)

	_, err := f.svc.Reconcile(context.Background(), f.reconcileInput())
	require.NoError(t, err)

	_, err = f.svc.Reconcile(context.Background(), f.reconcileInput())
	require.True(t, apperr.IsConflict(err))
	require.Len(t, f.txs.txs, 1)
}

func TestReconcileLockedApplicationConflicts(t *testing.T) {
	f := newPaymentFixture(t, models.FrequencyMonthly)
	f.locker.denied = true

	_, err := f.svc.Reconcile(context.Background(), f.reconcileInput())
	require.True(t, apperr.IsConflict(err))
}

func TestCreateIntentValidation(t *testing.T) {
	f := newPaymentFixture(t, models.FrequencyMonthly)

	_, err := f.svc.CreateIntent(context.Background(), service.CreateIntentInput{
		Amount: 0, CustomerEmail: "a@x.com",
	})
	require.True(t, apperr.IsValidation(err))

	_, err = f.svc.CreateIntent(context.Background(), service.CreateIntentInput{
		Amount: 120,
	})
	require.True(t, apperr.IsValidation(err))

	secret, err := f.svc.CreateIntent(context.Background(), service.CreateIntentInput{
		PolicyID:      "p1",
		PolicyName:    "Term Life Shield",
		Amount:        120.50,
		CustomerEmail: "a@x.com",
	})
	require.NoError(t, err)
	require.Equal(t, "secret_test", secret)
	// Minor units, rounded.
	require.Equal(t, []int64{12050}, f.gateway.created)
}
