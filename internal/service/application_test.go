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

func newApplicationFixture(t *testing.T) (*service.ApplicationService, *fakeApplicationRepo, *fakePolicyRepo, primitive.ObjectID) {
	t.Helper()
	apps := newFakeApplicationRepo()
	policies := newFakePolicyRepo()
	policyID, err := policies.Insert(context.Background(), &models.Policy{
		Title:       "Term Life Shield",
		Category:    "term",
		MinAge:      18,
		MaxAge:      65,
		Coverage:    500000,
		Duration:    20,
		BasePremium: 120,
	})
	require.NoError(t, err)
	svc := service.NewApplicationService(apps, policies, &fakePublisher{})
	return svc, apps, policies, policyID
}

func TestSubmitRequiresMandatoryFields(t *testing.T) {
	svc, _, _, policyID := newApplicationFixture(t)

	cases := []service.SubmitInput{
		{Email: "a@x.com", Phone: "555", PolicyID: policyID.Hex()},
		{Name: "Alice", Phone: "555", PolicyID: policyID.Hex()},
		{Name: "Alice", Email: "a@x.com", PolicyID: policyID.Hex()},
	}
	for _, in := range cases {
		_, err := svc.Submit(context.Background(), in)
		require.True(t, apperr.IsValidation(err), "expected validation error, got %v", err)
	}
}

func TestSubmitSnapshotsPolicyTerms(t *testing.T) {
	svc, apps, policies, policyID := newApplicationFixture(t)

	id, err := svc.Submit(context.Background(), service.SubmitInput{
		Name:     "Alice",
		Email:    "a@x.com",
		Phone:    "555",
		PolicyID: policyID.Hex(),
	})
	require.NoError(t, err)

	appID, err := primitive.ObjectIDFromHex(id)
	require.NoError(t, err)
	app, err := apps.GetByID(context.Background(), appID)
	require.NoError(t, err)
	require.NotNil(t, app)

	require.Equal(t, models.StatusPending, app.Status)
	require.Empty(t, app.Agent)
	require.Equal(t, models.PaymentDue, app.Payment.Status)
	require.Equal(t, 120.0, app.Payment.Amount)
	require.Equal(t, models.FrequencyMonthly, app.Payment.Frequency)
	require.NotNil(t, app.PolicyDetails)
	require.Equal(t, "Term Life Shield", app.PolicyDetails.Title)
	require.Equal(t, 120.0, app.PolicyDetails.BasePremium)

	// Catalog edits after submission never change the snapshot.
	policy, err := policies.GetByID(context.Background(), policyID)
	require.NoError(t, err)
	policy.BasePremium = 999
	_, err = policies.Update(context.Background(), policyID, policy)
	require.NoError(t, err)

	app, err = apps.GetByID(context.Background(), appID)
	require.NoError(t, err)
	require.Equal(t, 120.0, app.PolicyDetails.BasePremium)
}

func TestSubmitWithoutPolicySkipsSnapshot(t *testing.T) {
	svc, apps, _, _ := newApplicationFixture(t)

	id, err := svc.Submit(context.Background(), service.SubmitInput{
		Name:   "Bob",
		Email:  "b@x.com",
		Phone:  "556",
		Amount: 45,
	})
	require.NoError(t, err)

	appID, _ := primitive.ObjectIDFromHex(id)
	app, err := apps.GetByID(context.Background(), appID)
	require.NoError(t, err)
	require.Nil(t, app.PolicyID)
	require.Nil(t, app.PolicyDetails)
	require.Equal(t, 45.0, app.Payment.Amount)
}

func TestSubmitUnknownPolicyFails(t *testing.T) {
	svc, _, _, _ := newApplicationFixture(t)

	_, err := svc.Submit(context.Background(), service.SubmitInput{
		Name:     "Alice",
		Email:    "a@x.com",
		Phone:    "555",
		PolicyID: primitive.NewObjectID().Hex(),
	})
	require.True(t, apperr.IsNotFound(err))

	_, err = svc.Submit(context.Background(), service.SubmitInput{
		Name:     "Alice",
		Email:    "a@x.com",
		Phone:    "555",
		PolicyID: "not-a-hex-id",
	})
	require.True(t, apperr.IsValidation(err))
}

func TestApproveIncrementsCounterExactlyOnce(t *testing.T) {
	svc, _, policies, policyID := newApplicationFixture(t)

	id, err := svc.Submit(context.Background(), service.SubmitInput{
		Name: "Alice", Email: "a@x.com", Phone: "555", PolicyID: policyID.Hex(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.SetStatus(context.Background(), id, models.StatusApproved))
	require.NoError(t, svc.SetStatus(context.Background(), id, models.StatusApproved))

	policy, err := policies.GetByID(context.Background(), policyID)
	require.NoError(t, err)
	require.Equal(t, int64(1), policy.PurchaseCount)
}

func TestRejectAfterApproveKeepsCounter(t *testing.T) {
	svc, apps, policies, policyID := newApplicationFixture(t)

	id, err := svc.Submit(context.Background(), service.SubmitInput{
		Name: "Alice", Email: "a@x.com", Phone: "555", PolicyID: policyID.Hex(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.SetStatus(context.Background(), id, models.StatusApproved))
	require.NoError(t, svc.SetStatus(context.Background(), id, models.StatusRejected))

	policy, err := policies.GetByID(context.Background(), policyID)
	require.NoError(t, err)
	require.Equal(t, int64(1), policy.PurchaseCount)

	appID, _ := primitive.ObjectIDFromHex(id)
	app, _ := apps.GetByID(context.Background(), appID)
	require.Equal(t, models.StatusRejected, app.Status)

	// Approving again after a rejection is a fresh transition into Approved.
	require.NoError(t, svc.SetStatus(context.Background(), id, models.StatusApproved))
	policy, _ = policies.GetByID(context.Background(), policyID)
	require.Equal(t, int64(2), policy.PurchaseCount)
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	svc, apps, _, policyID := newApplicationFixture(t)

	id, err := svc.Submit(context.Background(), service.SubmitInput{
		Name: "Alice", Email: "a@x.com", Phone: "555", PolicyID: policyID.Hex(),
	})
	require.NoError(t, err)

	err = svc.SetStatus(context.Background(), id, models.ApplicationStatus("Cancelled"))
	require.True(t, apperr.IsValidation(err))

	appID, _ := primitive.ObjectIDFromHex(id)
	app, _ := apps.GetByID(context.Background(), appID)
	require.Equal(t, models.StatusPending, app.Status)
}

func TestSetStatusMissingApplication(t *testing.T) {
	svc, _, _, _ := newApplicationFixture(t)

	err := svc.SetStatus(context.Background(), primitive.NewObjectID().Hex(), models.StatusApproved)
	require.True(t, apperr.IsNotFound(err))
}

func TestAssignAgent(t *testing.T) {
	svc, apps, _, policyID := newApplicationFixture(t)

	id, err := svc.Submit(context.Background(), service.SubmitInput{
		Name: "Alice", Email: "a@x.com", Phone: "555", PolicyID: policyID.Hex(),
	})
	require.NoError(t, err)

	require.True(t, apperr.IsValidation(svc.AssignAgent(context.Background(), id, "")))
	require.True(t, apperr.IsNotFound(svc.AssignAgent(context.Background(), primitive.NewObjectID().Hex(), "agent@x.com")))

	require.NoError(t, svc.AssignAgent(context.Background(), id, "agent@x.com"))
	require.NoError(t, svc.AssignAgent(context.Background(), id, "other@x.com"))

	appID, _ := primitive.ObjectIDFromHex(id)
	app, _ := apps.GetByID(context.Background(), appID)
	require.Equal(t, "other@x.com", app.Agent)
}

func TestSubmitInitialDueDateIsNow(t *testing.T) {
	svc, apps, _, policyID := newApplicationFixture(t)

	before := time.Now().UTC()
	id, err := svc.Submit(context.Background(), service.SubmitInput{
		Name: "Alice", Email: "a@x.com", Phone: "555", PolicyID: policyID.Hex(),
	})
	require.NoError(t, err)

	appID, _ := primitive.ObjectIDFromHex(id)
	app, _ := apps.GetByID(context.Background(), appID)
	require.WithinDuration(t, before, app.Payment.NextPaymentDue, 5*time.Second)
}
