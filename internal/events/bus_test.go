package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"pathways-backend-go/internal/models"
)

func TestBusDeliversActivity(t *testing.T) {
	bus := NewBus(slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan models.ActivityLog, 1)
	if err := bus.SubscribeActivity(ctx, func(entry models.ActivityLog) { received <- entry }); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	userID := "user-1"
	bus.PublishActivity(models.ActivityLog{
		ID:      "log-1",
		UserID:  &userID,
		Action:  "goal_created",
		Details: json.RawMessage(`{"goal_id":"g1"}`),
	})

	select {
	case entry := <-received:
		if entry.Action != "goal_created" || entry.UserID == nil || *entry.UserID != userID {
			t.Fatalf("unexpected entry: %+v", entry)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for activity event")
	}
}

func TestNilBusPublishIsNoop(t *testing.T) {
	var bus *Bus
	bus.PublishActivity(models.ActivityLog{Action: "login"})
}
