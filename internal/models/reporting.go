package models

// MonthlyCount is one bucket of the applications-per-month aggregation.
type MonthlyCount struct {
	Month string `bson:"_id" json:"month"` // YYYY-MM
	Count int64  `bson:"count" json:"count"`
}

// AgentDashboard is the derived view served to agent dashboards.
// Read-only; nothing feeds back from it.
type AgentDashboard struct {
	MonthlyApplications []MonthlyCount `json:"monthlyApplications"`
	RecentApplications  []Application  `json:"recentApplications"`
	PendingClaims       int64          `json:"pendingClaims"`
}

// PaymentIntent is the gateway's view of a payment, as retrieved from the
// external collaborator. Amount is in minor currency units.
type PaymentIntent struct {
	ID       string            `json:"id"`
	Amount   int64             `json:"amount"`
	Status   string            `json:"status"`
	Metadata map[string]string `json:"metadata"`
}
