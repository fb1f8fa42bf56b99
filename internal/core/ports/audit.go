package ports

import (
	"context"
	"time"
)

// AuthEventInput is the DTO handed from the transport layer to the audit
// pipeline. Email shards the dispatcher so per-account ordering holds.
type AuthEventInput struct {
	Email     string
	Kind      string
	Timestamp time.Time
	RequestID string
}

// AuditService records auth events in the audit trail.
type AuditService interface {
	Process(ctx context.Context, event AuthEventInput) error
}

// AuditRepository persists processed auth events.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event AuthEventInput) error
}
