package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Claim is a customer's payout request against a policy they hold.
// At most one claim exists per (policy_id, customerEmail) pair; the
// claims collection carries a unique compound index on those fields.
type Claim struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	PolicyID      primitive.ObjectID `bson:"policy_id" json:"policy_id"`
	CustomerEmail string             `bson:"customerEmail" json:"customerEmail"`
	Reason        string             `bson:"reason" json:"reason"`
	Document      string             `bson:"document,omitempty" json:"document,omitempty"`
	Status        ApplicationStatus  `bson:"status" json:"status"`
	AgentEmail    string             `bson:"agentEmail,omitempty" json:"agentEmail,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	ApprovedAt    *time.Time         `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
}
