package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transaction is an immutable audit record of one payment reconciliation.
// TransactionID is the external payment intent reference and is unique.
type Transaction struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	ApplicationID primitive.ObjectID `bson:"applicationId" json:"applicationId"`
	PolicyID      string             `bson:"policyId" json:"policyId"`
	CustomerEmail string             `bson:"customerEmail" json:"customerEmail"`
	PolicyName    string             `bson:"policyName" json:"policyName"`
	PaidAmount    float64            `bson:"paidAmount" json:"paidAmount"`
	Date          time.Time          `bson:"date" json:"date"`
	Status        string             `bson:"status" json:"status"`
}
