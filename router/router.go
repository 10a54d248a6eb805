// Package router maps an inbound message to the destination agent. Routing
// is an ordered table of (predicate, destination) rules with first-match-wins
// semantics: deterministic, case-insensitive substring matching with no
// model involvement, so every rule is auditable and testable on its own.
package router

import (
	"strings"

	"github.com/confmesh/confmesh/core"
)

var scheduleTerms = []string{
	"schedule", "session", "speaker", "event", "track", "room", "date", "time",
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

var networkingTerms = []string{
	"business", "attendee", "networking", "company", "people", "participant",
}

type rule struct {
	name        string
	matches     func(lowered string) bool
	destination string
}

// Router resolves the destination agent for a message.
type Router struct {
	rules []rule
}

// New builds the fixed rule table.
func New() *Router {
	return &Router{rules: []rule{
		// The form-submission rule precedes the generic term rules so a
		// submitted registration form is never mistaken for a plain search.
		{
			name: "form_submission",
			matches: func(m string) bool {
				return strings.Contains(m, core.FormSubmissionMarker)
			},
			destination: core.AgentNetworking,
		},
		{
			name:        "schedule_terms",
			matches:     func(m string) bool { return containsAny(m, scheduleTerms) },
			destination: core.AgentSchedule,
		},
		{
			name:        "networking_terms",
			matches:     func(m string) bool { return containsAny(m, networkingTerms) },
			destination: core.AgentNetworking,
		},
	}}
}

// Route returns the destination agent for the message. The currentAgent
// parameter is accepted but not consulted: routing is stateless today and
// the parameter is reserved for a future sticky-agent policy.
func (r *Router) Route(currentAgent, message string) string {
	_ = currentAgent
	lowered := strings.ToLower(message)
	for _, rl := range r.rules {
		if rl.matches(lowered) {
			return rl.destination
		}
	}
	return core.AgentTriage
}

func containsAny(lowered string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}
