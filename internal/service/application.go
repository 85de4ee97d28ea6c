package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/lifesure/lifesure-backend/internal/apperr"
	"github.com/lifesure/lifesure-backend/internal/interfaces"
	"github.com/lifesure/lifesure-backend/internal/models"
	"github.com/lifesure/lifesure-backend/internal/telemetry"
)

// ApplicationService owns the application status machine and the purchase
// counter side effect. The counter moves exactly once per transition into
// Approved, enforced by a conditional update rather than read-then-write.
type ApplicationService struct {
	apps      interfaces.ApplicationRepository
	policies  interfaces.PolicyRepository
	publisher interfaces.EventPublisher
}

func NewApplicationService(
	apps interfaces.ApplicationRepository,
	policies interfaces.PolicyRepository,
	publisher interfaces.EventPublisher,
) *ApplicationService {
	return &ApplicationService{
		apps:      apps,
		policies:  policies,
		publisher: publisher,
	}
}

type SubmitInput struct {
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	Address          string   `json:"address"`
	NID              string   `json:"nid"`
	NomineeName      string   `json:"nomineeName"`
	NomineeRelation  string   `json:"nomineeRelation"`
	HealthConditions []string `json:"healthConditions"`
	PolicyID         string   `json:"policy_id"`
	Frequency        string   `json:"frequency"`
	Amount           float64  `json:"amount"`
}

// Submit creates a Pending application. When a policy id is given the
// policy's terms are frozen into the application; catalog edits afterwards
// never touch it. No counter moves at submission.
func (s *ApplicationService) Submit(ctx context.Context, in SubmitInput) (string, error) {
	switch {
	case in.Name == "":
		return "", apperr.Validation("name is required")
	case in.Email == "":
		return "", apperr.Validation("email is required")
	case in.Phone == "":
		return "", apperr.Validation("phone is required")
	}

	frequency := models.PaymentFrequency(in.Frequency)
	if frequency == "" {
		frequency = models.FrequencyMonthly
	}
	if frequency != models.FrequencyMonthly && frequency != models.FrequencyYearly {
		return "", apperr.Validation("frequency must be monthly or yearly")
	}

	now := time.Now().UTC()
	app := &models.Application{
		Name:             in.Name,
		Email:            in.Email,
		Phone:            in.Phone,
		Address:          in.Address,
		NID:              in.NID,
		NomineeName:      in.NomineeName,
		NomineeRelation:  in.NomineeRelation,
		HealthConditions: in.HealthConditions,
		Status:           models.StatusPending,
		Payment: models.PaymentInfo{
			Status:         models.PaymentDue,
			Amount:         in.Amount,
			Frequency:      frequency,
			NextPaymentDue: now,
		},
		CreatedAt: now,
	}
	if app.HealthConditions == nil {
		app.HealthConditions = []string{}
	}

	if in.PolicyID != "" {
		policyID, err := primitive.ObjectIDFromHex(in.PolicyID)
		if err != nil {
			return "", apperr.Validation("policy_id is malformed")
		}
		policy, err := s.policies.GetByID(ctx, policyID)
		if err != nil {
			return "", err
		}
		if policy == nil {
			return "", apperr.NotFound("policy %s not found", in.PolicyID)
		}
		snapshot := policy.Snapshot()
		app.PolicyID = &policyID
		app.PolicyDetails = &snapshot
		app.Payment.Amount = policy.BasePremium
	}

	id, err := s.apps.Insert(ctx, app)
	if err != nil {
		return "", err
	}

	publishEvent(ctx, s.publisher, id.Hex(), lifecycleEvent{
		Entity: "application",
		ID:     id.Hex(),
		Event:  "submitted",
	})

	telemetry.Logger.Info("Application submitted",
		zap.String("application_id", id.Hex()),
		zap.String("email", in.Email),
	)
	return id.Hex(), nil
}

// AssignAgent sets the agent on an application. Re-assignment overwrites.
func (s *ApplicationService) AssignAgent(ctx context.Context, applicationID, agentEmail string) error {
	if agentEmail == "" {
		return apperr.Validation("agent is required")
	}
	id, err := primitive.ObjectIDFromHex(applicationID)
	if err != nil {
		return apperr.Validation("application id is malformed")
	}

	matched, err := s.apps.SetAgent(ctx, id, agentEmail)
	if err != nil {
		return err
	}
	if matched == 0 {
		return apperr.NotFound("application %s not found", applicationID)
	}

	telemetry.Logger.Info("Agent assigned",
		zap.String("application_id", applicationID),
		zap.String("agent", agentEmail),
	)
	return nil
}

// SetStatus transitions the application's status. A transition into Approved
// increments the policy's purchase counter exactly once: the guarded update
// matches nothing when the application is already Approved, so retries and
// concurrent approvals are no-ops on the counter. Rejecting an approved
// application is allowed and does not decrement.
func (s *ApplicationService) SetStatus(ctx context.Context, applicationID string, status models.ApplicationStatus) error {
	if !models.ValidApplicationStatus(status) {
		return apperr.Validation("status must be Pending, Approved or Rejected")
	}
	id, err := primitive.ObjectIDFromHex(applicationID)
	if err != nil {
		return apperr.Validation("application id is malformed")
	}

	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if app == nil {
		return apperr.NotFound("application %s not found", applicationID)
	}

	if status != models.StatusApproved {
		if _, err := s.apps.SetStatus(ctx, id, status); err != nil {
			return err
		}
		s.logTransition(applicationID, app.Status, status)
		return nil
	}

	matched, err := s.apps.ApproveIfNotApproved(ctx, id)
	if err != nil {
		return err
	}
	if matched == 0 {
		// Already Approved; nothing to do, and in particular no counter move.
		return nil
	}

	if app.PolicyID != nil {
		if err := s.policies.IncrementPurchaseCount(ctx, *app.PolicyID); err != nil {
			return err
		}
	}
	telemetry.ApplicationsApproved.Inc()
	s.logTransition(applicationID, app.Status, models.StatusApproved)
	return nil
}

func (s *ApplicationService) logTransition(id string, from, to models.ApplicationStatus) {
	publishEvent(context.Background(), s.publisher, id, lifecycleEvent{
		Entity: "application",
		ID:     id,
		Event:  "status_changed",
		From:   string(from),
		To:     string(to),
	})
	telemetry.Logger.Info("Application status transition",
		zap.String("application_id", id),
		zap.String("from_status", string(from)),
		zap.String("to_status", string(to)),
	)
}

func (s *ApplicationService) GetByID(ctx context.Context, applicationID string) (*models.Application, error) {
	id, err := primitive.ObjectIDFromHex(applicationID)
	if err != nil {
		return nil, apperr.Validation("application id is malformed")
	}
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, apperr.NotFound("application %s not found", applicationID)
	}
	return app, nil
}

func (s *ApplicationService) List(ctx context.Context, status models.ApplicationStatus) ([]models.Application, error) {
	if status != "" && !models.ValidApplicationStatus(status) {
		return nil, apperr.Validation("status must be Pending, Approved or Rejected")
	}
	return s.apps.List(ctx, status)
}

func (s *ApplicationService) ListByCustomer(ctx context.Context, email string) ([]models.Application, error) {
	if email == "" {
		return nil, apperr.Validation("email is required")
	}
	return s.apps.ListByCustomer(ctx, email)
}

func (s *ApplicationService) ListByAgent(ctx context.Context, agent string) ([]models.Application, error) {
	if agent == "" {
		return nil, apperr.Validation("agent is required")
	}
	return s.apps.ListByAgent(ctx, agent)
}
