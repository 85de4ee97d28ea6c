package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "Pending"
	StatusApproved ApplicationStatus = "Approved"
	StatusRejected ApplicationStatus = "Rejected"
)

// ValidApplicationStatus reports whether s is one of the three known states.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentDue  PaymentStatus = "Due"
	PaymentPaid PaymentStatus = "Paid"
)

type PaymentFrequency string

const (
	FrequencyMonthly PaymentFrequency = "monthly"
	FrequencyYearly  PaymentFrequency = "yearly"
)

// NextDueFrom returns the due date one billing period after t.
func (f PaymentFrequency) NextDueFrom(t time.Time) time.Time {
	if f == FrequencyYearly {
		return t.AddDate(1, 0, 0)
	}
	return t.AddDate(0, 1, 0)
}

// PaymentInfo is the payment sub-document embedded in an application.
type PaymentInfo struct {
	Status          PaymentStatus    `bson:"status" json:"status"`
	Amount          float64          `bson:"amount" json:"amount"`
	Frequency       PaymentFrequency `bson:"frequency" json:"frequency"`
	LastPaymentDate *time.Time       `bson:"lastPaymentDate,omitempty" json:"lastPaymentDate,omitempty"`
	NextPaymentDue  time.Time        `bson:"nextPaymentDue" json:"nextPaymentDue"`
	PaymentIntentID string           `bson:"paymentIntentId,omitempty" json:"paymentIntentId,omitempty"`
}

// Application is a customer's request to purchase a policy. PolicyDetails is a
// frozen snapshot of the policy's terms at submission time; later catalog
// edits never change it.
type Application struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"_id,omitempty"`
	Name             string              `bson:"name" json:"name"`
	Email            string              `bson:"email" json:"email"`
	Phone            string              `bson:"phone" json:"phone"`
	Address          string              `bson:"address,omitempty" json:"address,omitempty"`
	NID              string              `bson:"nid,omitempty" json:"nid,omitempty"`
	NomineeName      string              `bson:"nomineeName,omitempty" json:"nomineeName,omitempty"`
	NomineeRelation  string              `bson:"nomineeRelation,omitempty" json:"nomineeRelation,omitempty"`
	HealthConditions []string            `bson:"healthConditions" json:"healthConditions"`
	PolicyID         *primitive.ObjectID `bson:"policy_id,omitempty" json:"policy_id,omitempty"`
	PolicyDetails    *PolicySnapshot     `bson:"policyDetails,omitempty" json:"policyDetails,omitempty"`
	Status           ApplicationStatus   `bson:"status" json:"status"`
	Agent            string              `bson:"agent,omitempty" json:"agent,omitempty"`
	Payment          PaymentInfo         `bson:"payment" json:"payment"`
	CreatedAt        time.Time           `bson:"createdAt" json:"createdAt"`
}
