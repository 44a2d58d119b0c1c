package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"gearguard/internal/events"
	"gearguard/pkg/eventbus"
)

// NotificationListener reacts to request lifecycle events. For now it only
// logs; delivery channels (mail, push) can subscribe the same way later.
type NotificationListener struct {
	logger *zap.Logger
}

func NewNotificationListener(logger *zap.Logger) *NotificationListener {
	return &NotificationListener{logger: logger}
}

// Register subscribes the listener on the bus.
func (l *NotificationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.RequestCreatedEvent{}.Name(), l.onRequestCreated)
	bus.Subscribe(events.RequestStatusChangedEvent{}.Name(), l.onStatusChanged)
}

func (l *NotificationListener) onRequestCreated(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.RequestCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %q", event.Name())
	}
	l.logger.Info("maintenance request created",
		zap.Uint64("request_id", e.Request.ID),
		zap.String("subject", e.Request.Subject),
		zap.Uint64("actor_id", e.ActorID),
	)
	return nil
}

func (l *NotificationListener) onStatusChanged(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.RequestStatusChangedEvent)
	if !ok {
		return fmt.Errorf("unexpected event payload for %q", event.Name())
	}
	l.logger.Info("maintenance request status changed",
		zap.Uint64("request_id", e.Request.ID),
		zap.String("from", e.OldStatus),
		zap.String("to", e.NewStatus),
		zap.Uint64("actor_id", e.ActorID),
	)
	return nil
}
