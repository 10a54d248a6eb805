package dispatch

import (
	"context"
	"testing"

	"github.com/confmesh/confmesh/backend"
	"github.com/confmesh/confmesh/core"
	"github.com/confmesh/confmesh/internal/testutil"
	"github.com/confmesh/confmesh/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleFilterDetection(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    backend.ScheduleFilter
	}{
		{"iso date", "what's on 2025-09-01?", backend.ScheduleFilter{Date: "2025-09-01"}},
		{"month and ordinal day", "sessions on september 1st please", backend.ScheduleFilter{Date: "2025-09-01"}},
		{"month without day is not a date", "any security sessions in september?", backend.ScheduleFilter{Topic: "Security"}},
		{"speaker name", "when does Priya Sharma speak?", backend.ScheduleFilter{Speaker: "Priya Sharma"}},
		{"date wins over speaker", "is Priya Sharma on 2025-09-02?", backend.ScheduleFilter{Date: "2025-09-02"}},
		{"topic keyword", "show me the AI sessions", backend.ScheduleFilter{Topic: "AI"}},
		{"topic needs a word boundary", "what's in the main auditorium?", backend.ScheduleFilter{Room: "Main Auditorium"}},
		{"track name", "what's on the innovation track?", backend.ScheduleFilter{Track: "Innovation"}},
		{"room name", "sessions in hall a", backend.ScheduleFilter{Room: "Hall A"}},
		{"no criteria", "show me the full schedule", backend.ScheduleFilter{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scheduleFilter(tt.message))
		})
	}
}

func TestScheduleEmptyResultNamesTheFilter(t *testing.T) {
	stub := &testutil.StubBackend{}
	d := New(stub, nil)

	res := d.Dispatch(context.Background(), core.AgentSchedule, nil, "show me the AI sessions")

	assert.Equal(t, "No conference sessions found for topic 'AI'.", res.Reply)
	assert.Equal(t, registry.ToolGetConferenceSchedule, res.Tool)
	require.Len(t, stub.SessionCalls, 1)
	assert.Equal(t, backend.ScheduleFilter{Topic: "AI"}, stub.SessionCalls[0])
}

func TestScheduleEmptyResultWithoutFilter(t *testing.T) {
	stub := &testutil.StubBackend{}
	d := New(stub, nil)

	res := d.Dispatch(context.Background(), core.AgentSchedule, nil, "show me the schedule")

	assert.Equal(t, "No conference sessions found for your criteria.", res.Reply)
}

func TestScheduleFormatting(t *testing.T) {
	stub := &testutil.StubBackend{
		Sessions: []backend.ConferenceSession{
			{
				Topic:     "AI in Healthcare",
				Speaker:   "Alice Wonderland",
				StartTime: "2025-09-01T09:00:00Z",
				EndTime:   "2025-09-01T10:00:00Z",
				Room:      "Grand Ballroom",
				Track:     "Innovation",
				Date:      "2025-09-01",
			},
			{
				Topic:       "Cloud at Scale",
				Speaker:     "David Chen",
				StartTime:   "2025-09-01T14:30:00Z",
				EndTime:     "2025-09-01T15:30:00Z",
				Room:        "Hall B",
				Track:       "Growth",
				Date:        "2025-09-01",
				Description: "Lessons from large deployments.",
			},
		},
	}
	d := New(stub, nil)

	res := d.Dispatch(context.Background(), core.AgentSchedule, nil, "sessions on 2025-09-01")

	want := "Found 2 conference session(s):\n\n" +
		"**AI in Healthcare**\n" +
		"Speaker: Alice Wonderland\n" +
		"Time: 09:00 AM - 10:00 AM\n" +
		"Room: Grand Ballroom\n" +
		"Track: Innovation\n" +
		"Date: 2025-09-01\n\n" +
		"**Cloud at Scale**\n" +
		"Speaker: David Chen\n" +
		"Time: 02:30 PM - 03:30 PM\n" +
		"Room: Hall B\n" +
		"Track: Growth\n" +
		"Date: 2025-09-01\n" +
		"Description: Lessons from large deployments.\n\n"
	assert.Equal(t, want, res.Reply)
}

func TestScheduleMissingFieldsRenderAsTBD(t *testing.T) {
	stub := &testutil.StubBackend{
		Sessions: []backend.ConferenceSession{{Topic: "Data Pipelines"}},
	}
	d := New(stub, nil)

	res := d.Dispatch(context.Background(), core.AgentSchedule, nil, "data sessions")

	assert.Contains(t, res.Reply, "**Data Pipelines**\n")
	assert.Contains(t, res.Reply, "Speaker: TBD\n")
	assert.Contains(t, res.Reply, "Time: TBD - TBD\n")
	assert.Contains(t, res.Reply, "Room: TBD\n")
}

func TestScheduleBackendFailureIsCaught(t *testing.T) {
	stub := &testutil.StubBackend{Err: assert.AnError}
	d := New(stub, nil)

	res := d.Dispatch(context.Background(), core.AgentSchedule, nil, "show me the schedule")

	assert.Equal(t, "Sorry, I couldn't retrieve the conference schedule right now. Please try again.", res.Reply)
	assert.Equal(t, registry.ToolGetConferenceSchedule, res.Tool)
}

func TestScheduleFilterIsDeterministic(t *testing.T) {
	for i := 0; i < 5; i++ {
		assert.Equal(t, backend.ScheduleFilter{Speaker: "Sarah Johnson"},
			scheduleFilter("talks by sarah johnson"))
	}
}
