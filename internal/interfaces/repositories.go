package interfaces

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lifesure/lifesure-backend/internal/models"
)

// Repositories translate storage errors into the apperr taxonomy; lookups
// return (nil, nil) when no document matches, and updates report how many
// documents matched so callers can decide between not-found and no-op.

// PolicyRepository is the contract for catalog data access.
type PolicyRepository interface {
	Insert(ctx context.Context, p *models.Policy) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Policy, error)
	List(ctx context.Context, category, search string) ([]models.Policy, error)
	Update(ctx context.Context, id primitive.ObjectID, p *models.Policy) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	// IncrementPurchaseCount adds one to the policy's purchase counter
	// with a single atomic update.
	IncrementPurchaseCount(ctx context.Context, id primitive.ObjectID) error
}

// ApplicationRepository is the contract for application lifecycle data access.
type ApplicationRepository interface {
	Insert(ctx context.Context, a *models.Application) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Application, error)
	GetByIDAndEmail(ctx context.Context, id primitive.ObjectID, email string) (*models.Application, error)
	List(ctx context.Context, status models.ApplicationStatus) ([]models.Application, error)
	ListByCustomer(ctx context.Context, email string) ([]models.Application, error)
	ListByAgent(ctx context.Context, agent string) ([]models.Application, error)
	SetAgent(ctx context.Context, id primitive.ObjectID, agent string) (int64, error)
	// SetStatus writes status unconditionally and reports the match count.
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.ApplicationStatus) (int64, error)
	// ApproveIfNotApproved transitions status to Approved only when the
	// current status is not already Approved. A zero match count means the
	// application is missing or was already approved; callers disambiguate
	// with GetByID.
	ApproveIfNotApproved(ctx context.Context, id primitive.ObjectID) (int64, error)
	// MarkPaid applies the whole payment transition in one document update:
	// status=Approved, payment.status=Paid, lastPaymentDate, nextPaymentDue
	// and the gateway's intent id.
	MarkPaid(ctx context.Context, id primitive.ObjectID, intentID string, paidAt, nextDue time.Time) (int64, error)
	CountMonthly(ctx context.Context, since time.Time) ([]models.MonthlyCount, error)
	RecentByAgent(ctx context.Context, agent string, limit int64) ([]models.Application, error)
}

// ClaimRepository is the contract for claim lifecycle data access.
type ClaimRepository interface {
	// Insert returns a conflict error when the (policy_id, customerEmail)
	// unique index rejects the document.
	Insert(ctx context.Context, c *models.Claim) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Claim, error)
	FindByPolicyAndEmail(ctx context.Context, policyID primitive.ObjectID, email string) (*models.Claim, error)
	List(ctx context.Context, status models.ApplicationStatus) ([]models.Claim, error)
	ListByCustomer(ctx context.Context, email string) ([]models.Claim, error)
	// ResolveIfNot writes status, agentEmail and approvedAt only when the
	// current status differs from the target status.
	ResolveIfNot(ctx context.Context, id primitive.ObjectID, status models.ApplicationStatus, agentEmail string, approvedAt *time.Time) (int64, error)
	CountPending(ctx context.Context) (int64, error)
}

// TransactionRepository is the contract for the append-only audit log.
type TransactionRepository interface {
	// Insert returns a conflict error when the transactionId unique index
	// rejects the document.
	Insert(ctx context.Context, t *models.Transaction) (primitive.ObjectID, error)
	List(ctx context.Context, customerEmail string) ([]models.Transaction, error)
}

// UserRepository is the contract for user records.
type UserRepository interface {
	Insert(ctx context.Context, u *models.User) (primitive.ObjectID, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	SetRole(ctx context.Context, id primitive.ObjectID, role models.UserRole) (int64, error)
}
