// Package registry holds the static descriptions of the three agents. The
// descriptors are fully-populated value types: absent tools or handoffs are
// empty slices, never nil maps probed at serialization time.
package registry

import "github.com/confmesh/confmesh/core"

// Tool names exposed by the specialist agents.
const (
	ToolGetConferenceSchedule = "get_conference_schedule"
	ToolSearchAttendees       = "search_attendees"
	ToolSearchBusinesses      = "search_businesses"
	ToolGetUserBusinesses     = "get_user_businesses"
	ToolDisplayBusinessForm   = "display_business_form"
	ToolAddBusiness           = "add_business"
	ToolGetOrganizationInfo   = "get_organization_info"
)

var agents = []core.AgentDescriptor{
	{
		Name:        core.AgentTriage,
		Description: "Main entry point for conference assistance - routes users to appropriate specialists.",
		Instructions: "You are a Conference Triage Agent. Understand what the user needs and " +
			"route them to the Schedule Agent for sessions, speakers, timings, rooms, tracks " +
			"and dates, or to the Networking Agent for attendees, businesses and business " +
			"registration. For general greetings or unclear requests, give a helpful overview " +
			"of the available assistance.",
		Tools:           []string{},
		Handoffs:        []string{core.AgentSchedule, core.AgentNetworking},
		InputGuardrails: []string{"relevance_guardrail", "jailbreak_guardrail"},
	},
	{
		Name:        core.AgentSchedule,
		Description: "An agent to provide conference schedule information and help find sessions.",
		Instructions: "You are a Conference Schedule Agent. Help attendees find sessions by " +
			"speaker name, topic, room, track or date using the get_conference_schedule tool. " +
			"Always search for actual schedule information instead of answering generically. " +
			"If the user asks unrelated questions, transfer back to the triage agent.",
		Tools:           []string{ToolGetConferenceSchedule},
		Handoffs:        []string{core.AgentTriage, core.AgentNetworking},
		InputGuardrails: []string{},
	},
	{
		Name:        core.AgentNetworking,
		Description: "An agent to help with networking, finding attendees, and business connections.",
		Instructions: "You are a Networking Agent. Help attendees connect with other " +
			"participants and explore business opportunities: search attendees and businesses, " +
			"look up a user's own businesses, show the business registration form only when the " +
			"user explicitly asks to add a business, and provide organization information. " +
			"If the user asks unrelated questions, transfer back to the triage agent.",
		Tools: []string{
			ToolSearchAttendees,
			ToolSearchBusinesses,
			ToolGetUserBusinesses,
			ToolDisplayBusinessForm,
			ToolAddBusiness,
			ToolGetOrganizationInfo,
		},
		Handoffs:        []string{core.AgentTriage, core.AgentSchedule},
		InputGuardrails: []string{},
	},
}

// List returns the registered descriptors in fixed order: Triage, Schedule,
// Networking. The returned slice is a copy.
func List() []core.AgentDescriptor {
	out := make([]core.AgentDescriptor, len(agents))
	copy(out, agents)
	return out
}

// Find returns the descriptor with the given name, defaulting to the triage
// agent when the name is unknown.
func Find(name string) core.AgentDescriptor {
	for _, a := range agents {
		if a.Name == name {
			return a
		}
	}
	return agents[0]
}

// AgentView is the introspection shape of a descriptor. Slices are always
// non-nil so clients never see null where a list belongs.
type AgentView struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Handoffs        []string `json:"handoffs"`
	Tools           []string `json:"tools"`
	InputGuardrails []string `json:"input_guardrails"`
}

// Serialize converts a descriptor into its introspection shape.
func Serialize(d core.AgentDescriptor) AgentView {
	view := AgentView{
		Name:            d.Name,
		Description:     d.Description,
		Handoffs:        append([]string{}, d.Handoffs...),
		Tools:           append([]string{}, d.Tools...),
		InputGuardrails: append([]string{}, d.InputGuardrails...),
	}
	return view
}

// SerializeAll converts every registered descriptor, preserving order.
func SerializeAll() []AgentView {
	views := make([]AgentView, 0, len(agents))
	for _, a := range agents {
		views = append(views, Serialize(a))
	}
	return views
}
