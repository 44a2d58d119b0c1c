package events

import "gearguard/internal/entities"

// RequestCreatedEvent fires after a maintenance request is persisted.
type RequestCreatedEvent struct {
	Request entities.MaintenanceRequest
	ActorID uint64
}

func (e RequestCreatedEvent) Name() string { return "request.created" }

// RequestStatusChangedEvent fires after a status transition commits.
type RequestStatusChangedEvent struct {
	Request   entities.MaintenanceRequest
	OldStatus string
	NewStatus string
	ActorID   uint64
}

func (e RequestStatusChangedEvent) Name() string { return "request.status.changed" }
