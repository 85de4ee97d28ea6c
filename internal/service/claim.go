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

// ClaimService owns the claim lifecycle. One claim per (policy, customer):
// the pre-insert check gives a friendly error, the unique index makes the
// invariant hold under races. Claim approval uses the same guarded-update
// idiom as application approval, so re-approving cannot double-increment the
// purchase counter.
type ClaimService struct {
	claims    interfaces.ClaimRepository
	policies  interfaces.PolicyRepository
	publisher interfaces.EventPublisher
}

func NewClaimService(
	claims interfaces.ClaimRepository,
	policies interfaces.PolicyRepository,
	publisher interfaces.EventPublisher,
) *ClaimService {
	return &ClaimService{
		claims:    claims,
		policies:  policies,
		publisher: publisher,
	}
}

type FileClaimInput struct {
	PolicyID      string `json:"policy_id"`
	CustomerEmail string `json:"customerEmail"`
	Reason        string `json:"reason"`
	Document      string `json:"document"`
}

func (s *ClaimService) FileClaim(ctx context.Context, in FileClaimInput) (string, error) {
	switch {
	case in.PolicyID == "":
		return "", apperr.Validation("policy_id is required")
	case in.CustomerEmail == "":
		return "", apperr.Validation("customerEmail is required")
	case in.Reason == "":
		return "", apperr.Validation("reason is required")
	}

	policyID, err := primitive.ObjectIDFromHex(in.PolicyID)
	if err != nil {
		return "", apperr.Validation("policy_id is malformed")
	}

	existing, err := s.claims.FindByPolicyAndEmail(ctx, policyID, in.CustomerEmail)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", apperr.Conflict("claim already submitted for this policy")
	}

	claim := &models.Claim{
		PolicyID:      policyID,
		CustomerEmail: in.CustomerEmail,
		Reason:        in.Reason,
		Document:      in.Document,
		Status:        models.StatusPending,
		CreatedAt:     time.Now().UTC(),
	}
	id, err := s.claims.Insert(ctx, claim)
	if err != nil {
		return "", err
	}

	publishEvent(ctx, s.publisher, id.Hex(), lifecycleEvent{
		Entity: "claim",
		ID:     id.Hex(),
		Event:  "filed",
	})
	telemetry.Logger.Info("Claim filed",
		zap.String("claim_id", id.Hex()),
		zap.String("policy_id", in.PolicyID),
		zap.String("customer", in.CustomerEmail),
	)
	return id.Hex(), nil
}

// ResolveClaim sets the claim's final status. On approval the policy's
// purchase counter moves by one, only when the guarded update actually
// transitioned the claim.
func (s *ClaimService) ResolveClaim(ctx context.Context, claimID string, status models.ApplicationStatus, agentEmail string) error {
	if status != models.StatusApproved && status != models.StatusRejected {
		return apperr.Validation("status must be Approved or Rejected")
	}
	if agentEmail == "" {
		return apperr.Validation("agentEmail is required")
	}
	id, err := primitive.ObjectIDFromHex(claimID)
	if err != nil {
		return apperr.Validation("claim id is malformed")
	}

	claim, err := s.claims.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if claim == nil {
		return apperr.NotFound("claim %s not found", claimID)
	}

	var approvedAt *time.Time
	if status == models.StatusApproved {
		now := time.Now().UTC()
		approvedAt = &now
	}

	matched, err := s.claims.ResolveIfNot(ctx, id, status, agentEmail, approvedAt)
	if err != nil {
		return err
	}
	if matched == 0 {
		// Already in the target status; no-op, counter untouched.
		return nil
	}

	if status == models.StatusApproved {
		if err := s.policies.IncrementPurchaseCount(ctx, claim.PolicyID); err != nil {
			return err
		}
		telemetry.ClaimsApproved.Inc()
	}

	publishEvent(ctx, s.publisher, claimID, lifecycleEvent{
		Entity: "claim",
		ID:     claimID,
		Event:  "resolved",
		From:   string(claim.Status),
		To:     string(status),
	})
	telemetry.Logger.Info("Claim resolved",
		zap.String("claim_id", claimID),
		zap.String("status", string(status)),
		zap.String("agent", agentEmail),
	)
	return nil
}

func (s *ClaimService) List(ctx context.Context, status models.ApplicationStatus) ([]models.Claim, error) {
	if status != "" && !models.ValidApplicationStatus(status) {
		return nil, apperr.Validation("status must be Pending, Approved or Rejected")
	}
	return s.claims.List(ctx, status)
}

func (s *ClaimService) ListByCustomer(ctx context.Context, email string) ([]models.Claim, error) {
	if email == "" {
		return nil, apperr.Validation("email is required")
	}
	return s.claims.ListByCustomer(ctx, email)
}
