package toolpolicy

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const scopeName = "github.com/lverhagen/agentlink/client/toolpolicy"

var logger = otelslog.NewLogger(scopeName)
