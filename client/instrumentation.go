package processing

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
)

const scopeName = "github.com/lverhagen/agentlink/client"

var (
	tracer = otel.Tracer(scopeName)
	meter  = otel.Meter(scopeName)
	logger = otelslog.NewLogger(scopeName)

	droppedNotifications, _ = meter.Int64Counter("agentlink.notifications.dropped")
	dispatchedEvents, _     = meter.Int64Counter("agentlink.events.dispatched")
)
