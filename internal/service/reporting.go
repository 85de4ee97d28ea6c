package service

import (
	"context"
	"time"

	"github.com/lifesure/lifesure-backend/internal/apperr"
	"github.com/lifesure/lifesure-backend/internal/interfaces"
	"github.com/lifesure/lifesure-backend/internal/models"
)

// ReportingService serves derived, read-only dashboard views. Nothing here
// feeds back into the lifecycle.
type ReportingService struct {
	apps   interfaces.ApplicationRepository
	claims interfaces.ClaimRepository
}

func NewReportingService(apps interfaces.ApplicationRepository, claims interfaces.ClaimRepository) *ReportingService {
	return &ReportingService{apps: apps, claims: claims}
}

func (s *ReportingService) AgentDashboard(ctx context.Context, agent string) (*models.AgentDashboard, error) {
	if agent == "" {
		return nil, apperr.Validation("agent is required")
	}

	now := time.Now().UTC()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -5, 0)

	monthly, err := s.apps.CountMonthly(ctx, since)
	if err != nil {
		return nil, err
	}
	recent, err := s.apps.RecentByAgent(ctx, agent, 5)
	if err != nil {
		return nil, err
	}
	pending, err := s.claims.CountPending(ctx)
	if err != nil {
		return nil, err
	}

	return &models.AgentDashboard{
		MonthlyApplications: monthly,
		RecentApplications:  recent,
		PendingClaims:       pending,
	}, nil
}
