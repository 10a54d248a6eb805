// Package dispatch turns a routed message into a structured backend query
// and a formatted reply. Per destination agent it applies an ordered set of
// pattern rules (first match wins) that each select one backend operation
// and its parameters. Any fault raised by the data-access capability is
// caught here and converted into a caller-safe reply string exactly once;
// it never propagates to the orchestrator.
package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/confmesh/confmesh/backend"
	"github.com/confmesh/confmesh/core"
	"github.com/confmesh/confmesh/logging"
)

// FormDisplaySentinel instructs the caller to render the business
// registration form instead of displaying the reply verbatim.
const FormDisplaySentinel = "DISPLAY_BUSINESS_FORM"

// Result is the outcome of one dispatch: the reply text and the name of the
// backend tool that produced it (empty when no backend call was made).
type Result struct {
	Reply string
	Tool  string
}

// Dispatcher maps (agent, context, message) to a backend query and formats
// the result. It is stateless and safe for concurrent use.
type Dispatcher struct {
	data   backend.DataAccess
	logger logging.Logger
}

// New constructs a Dispatcher over the given data-access capability.
func New(data backend.DataAccess, logger logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Dispatcher{data: data, logger: logger}
}

// Dispatch resolves the message against the destination agent's rule set.
// Unknown agents fall back to the triage capability overview.
func (d *Dispatcher) Dispatch(ctx context.Context, agentName string, convCtx *core.ConversationContext, message string) Result {
	switch agentName {
	case core.AgentSchedule:
		return d.schedule(ctx, message)
	case core.AgentNetworking:
		return d.networking(ctx, convCtx, message)
	default:
		return Result{Reply: triageOverview(convCtx)}
	}
}

func triageOverview(convCtx *core.ConversationContext) string {
	name := core.DefaultConferenceName
	if convCtx != nil && convCtx.ConferenceName != "" {
		name = convCtx.ConferenceName
	}
	return fmt.Sprintf("I'm your conference assistant for %s. I can help you with:\n\n"+
		"🗓️ Conference Schedule - Find sessions, speakers, timings, and rooms\n"+
		"🤝 Networking - Connect with attendees and explore business opportunities\n\n"+
		"What would you like to know about the conference?", name)
}

func containsAny(lowered string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}
