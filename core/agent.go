package core

// Registered agent names. The session's current-agent field always holds one
// of these three values; unknown names resolve to the triage agent.
const (
	AgentTriage     = "Triage Agent"
	AgentSchedule   = "Schedule Agent"
	AgentNetworking = "Networking Agent"
)

// FormSubmissionMarker is the introductory phrase (matched case-insensitively)
// of a structured business-registration submission. Both the router and the
// networking dispatch rules key off it.
const FormSubmissionMarker = "business registration details"

// AgentDescriptor is the immutable static description of one agent: its
// identity, capability tools and allowed handoffs. "Missing" optional fields
// are simply empty slices, so serialization never needs defensive
// introspection.
//
// Handoff sets form a star topology: every non-triage agent includes the
// triage agent in its handoff set.
type AgentDescriptor struct {
	Name            string
	Description     string
	Instructions    string
	Tools           []string
	Handoffs        []string
	InputGuardrails []string
}

// CanHandOffTo reports whether the descriptor allows a transition to the
// named agent.
func (d AgentDescriptor) CanHandOffTo(name string) bool {
	for _, h := range d.Handoffs {
		if h == name {
			return true
		}
	}
	return false
}
