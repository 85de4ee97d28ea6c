package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/lifesure/lifesure-backend/internal/interfaces"
	"github.com/lifesure/lifesure-backend/internal/telemetry"
)

type lifecycleEvent struct {
	Entity    string    `json:"entity"`
	ID        string    `json:"id"`
	Event     string    `json:"event"`
	From      string    `json:"from,omitempty"`
	To        string    `json:"to,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// publishEvent is fire-and-forget: a broker outage must never fail the
// request that triggered the event.
func publishEvent(ctx context.Context, pub interfaces.EventPublisher, key string, ev lifecycleEvent) {
	if pub == nil {
		return
	}
	ev.Timestamp = time.Now().UTC()
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if err := pub.Publish(ctx, key, payload); err != nil {
		telemetry.Logger.Warn("Failed to publish lifecycle event",
			zap.String("entity", ev.Entity),
			zap.String("id", ev.ID),
			zap.String("event", ev.Event),
			zap.Error(err),
		)
	}
}
