package router

import (
	"testing"

	"github.com/confmesh/confmesh/core"
	"github.com/stretchr/testify/assert"
)

func TestRoute(t *testing.T) {
	r := New()

	cases := []struct {
		message string
		want    string
	}{
		{"Find AI sessions", core.AgentSchedule},
		{"events on september 1st", core.AgentSchedule},
		{"who is speaking in the Grand Ballroom", core.AgentSchedule},
		{"find healthcare businesses", core.AgentNetworking},
		{"show me all attendees", core.AgentNetworking},
		{"i want to add my business", core.AgentNetworking},
		{"Business Registration Details:\nCompany Name: Acme", core.AgentNetworking},
		{"hello", core.AgentTriage},
		{"help", core.AgentTriage},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, r.Route(core.AgentTriage, c.message), "message: %q", c.message)
	}
}

func TestRoute_FormMarkerWinsOverScheduleTerms(t *testing.T) {
	r := New()
	// The form body mentions "time" (a schedule term); the marker rule must
	// win because it is evaluated first.
	msg := "Business Registration Details:\nCompany Name: Part Time Labs"
	assert.Equal(t, core.AgentNetworking, r.Route(core.AgentTriage, msg))
}

func TestRoute_IgnoresCurrentAgent(t *testing.T) {
	r := New()
	msg := "show me the schedule"
	for _, current := range []string{core.AgentTriage, core.AgentSchedule, core.AgentNetworking, "unknown"} {
		assert.Equal(t, core.AgentSchedule, r.Route(current, msg))
	}
}

func TestRoute_Pure(t *testing.T) {
	r := New()
	first := r.Route(core.AgentTriage, "find attendees from Chennai")
	second := r.Route(core.AgentNetworking, "find attendees from Chennai")
	assert.Equal(t, first, second)
}
