package port

import (
	"context"
	"time"
)

// Span is a transport-agnostic span handle so repositories can emit telemetry
// without importing an exporter.
type Span interface {
	End()
	SetAttributes(attrs map[string]interface{})
	RecordError(err error)
}

// Telemetry lets the core emit spans and counters without knowing the
// implementation. The OTel probe is wired in production, the no-op in tests.
type Telemetry interface {
	StartRepositorySpan(ctx context.Context, operation string, entity string, attrs map[string]interface{}) (context.Context, Span)
	StartServiceSpan(ctx context.Context, service string, operation string, userID int) (context.Context, Span)

	RecordRepositoryOperation(ctx context.Context, operation string, entity string, duration time.Duration, err error)
	RecordBusinessEvent(ctx context.Context, event string, entity string, entityID string, userID int)
}
