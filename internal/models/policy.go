package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Policy is an insurance product definition in the catalog.
// PurchaseCount is mutated only by the lifecycle services, via atomic $inc.
type Policy struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title         string             `bson:"title" json:"title"`
	Category      string             `bson:"category" json:"category"`
	Description   string             `bson:"description" json:"description"`
	Image         string             `bson:"image,omitempty" json:"image,omitempty"`
	MinAge        int                `bson:"minAge" json:"minAge"`
	MaxAge        int                `bson:"maxAge" json:"maxAge"`
	Coverage      float64            `bson:"coverage" json:"coverage"`
	Duration      float64            `bson:"duration" json:"duration"`
	BasePremium   float64            `bson:"basePremium" json:"basePremium"`
	PurchaseCount int64              `bson:"purchaseCount" json:"purchaseCount"`
}

// PolicySnapshot is the frozen copy of a policy's terms embedded in an
// application at submission time. It is never re-read from the catalog.
type PolicySnapshot struct {
	Title       string  `bson:"title" json:"title"`
	Category    string  `bson:"category" json:"category"`
	Coverage    float64 `bson:"coverage" json:"coverage"`
	Duration    float64 `bson:"duration" json:"duration"`
	BasePremium float64 `bson:"basePremium" json:"basePremium"`
	MinAge      int     `bson:"minAge" json:"minAge"`
	MaxAge      int     `bson:"maxAge" json:"maxAge"`
	Image       string  `bson:"image,omitempty" json:"image,omitempty"`
}

// Snapshot freezes the policy's current terms.
func (p *Policy) Snapshot() PolicySnapshot {
	return PolicySnapshot{
		Title:       p.Title,
		Category:    p.Category,
		Coverage:    p.Coverage,
		Duration:    p.Duration,
		BasePremium: p.BasePremium,
		MinAge:      p.MinAge,
		MaxAge:      p.MaxAge,
		Image:       p.Image,
	}
}
