package dispatch

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/confmesh/confmesh/backend"
	"github.com/confmesh/confmesh/registry"
)

// conferenceYear anchors day-ordinal date mentions ("september 1st") that
// carry no explicit year.
const conferenceYear = 2025

// speakerRoster is the fixed set of speaker names recognized in messages.
var speakerRoster = []string{
	"Alice Wonderland",
	"Rajesh Kumar",
	"Priya Sharma",
	"David Chen",
	"Sarah Johnson",
}

var trackNames = []string{"Innovation", "Leadership", "Startup", "Growth"}

var roomNames = []string{"Grand Ballroom", "Main Auditorium", "Hall A", "Hall B"}

// topicPattern matches topic keywords on word boundaries; plain substring
// matching is too loose for short terms ("ai" would match "main auditorium").
var topicPattern = regexp.MustCompile(`\b(ai|cloud|data|web|security)\b`)

var topicCanonical = map[string]string{
	"ai":       "AI",
	"cloud":    "Cloud",
	"data":     "Data",
	"web":      "Web",
	"security": "Security",
}

var isoDatePattern = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)

var ordinalDatePattern = regexp.MustCompile(
	`\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{1,2})(?:st|nd|rd|th)?\b`)

var monthNumbers = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// schedule resolves a schedule-agent message: build the filter from the
// first matching rule, run the query, format the result.
func (d *Dispatcher) schedule(ctx context.Context, message string) Result {
	filter := scheduleFilter(message)

	sessions, err := d.data.QuerySessions(ctx, filter)
	if err != nil {
		d.logger.Error("dispatch.schedule.query_failed", "error", err.Error())
		return Result{
			Reply: "Sorry, I couldn't retrieve the conference schedule right now. Please try again.",
			Tool:  registry.ToolGetConferenceSchedule,
		}
	}

	if len(sessions) == 0 {
		return Result{Reply: emptyScheduleReply(filter), Tool: registry.ToolGetConferenceSchedule}
	}
	return Result{Reply: formatSessions(sessions), Tool: registry.ToolGetConferenceSchedule}
}

// scheduleFilter applies the ordered schedule rules: date, speaker, topic,
// track, room; no match means an unfiltered query returning all sessions.
func scheduleFilter(message string) backend.ScheduleFilter {
	lowered := strings.ToLower(message)

	if date := detectDate(lowered); date != "" {
		return backend.ScheduleFilter{Date: date}
	}
	for _, speaker := range speakerRoster {
		if strings.Contains(lowered, strings.ToLower(speaker)) {
			return backend.ScheduleFilter{Speaker: speaker}
		}
	}
	if m := topicPattern.FindString(lowered); m != "" {
		return backend.ScheduleFilter{Topic: topicCanonical[m]}
	}
	for _, track := range trackNames {
		if strings.Contains(lowered, strings.ToLower(track)) {
			return backend.ScheduleFilter{Track: track}
		}
	}
	for _, room := range roomNames {
		if strings.Contains(lowered, strings.ToLower(room)) {
			return backend.ScheduleFilter{Room: room}
		}
	}
	return backend.ScheduleFilter{}
}

// detectDate recognizes explicit YYYY-MM-DD dates and month + day-ordinal
// mentions; the latter are anchored to the conference year. A month without
// a day is not a date mention.
func detectDate(lowered string) string {
	if m := isoDatePattern.FindString(lowered); m != "" {
		if _, err := time.Parse("2006-01-02", m); err == nil {
			return m
		}
	}
	if groups := ordinalDatePattern.FindStringSubmatch(lowered); groups != nil {
		month := monthNumbers[groups[1]]
		var day int
		fmt.Sscanf(groups[2], "%d", &day)
		if day >= 1 && day <= 31 {
			return fmt.Sprintf("%04d-%02d-%02d", conferenceYear, int(month), day)
		}
	}
	return ""
}

func emptyScheduleReply(f backend.ScheduleFilter) string {
	var filters []string
	if f.Speaker != "" {
		filters = append(filters, fmt.Sprintf("speaker '%s'", f.Speaker))
	}
	if f.Topic != "" {
		filters = append(filters, fmt.Sprintf("topic '%s'", f.Topic))
	}
	if f.Room != "" {
		filters = append(filters, fmt.Sprintf("room '%s'", f.Room))
	}
	if f.Track != "" {
		filters = append(filters, fmt.Sprintf("track '%s'", f.Track))
	}
	if f.Date != "" {
		filters = append(filters, fmt.Sprintf("date '%s'", f.Date))
	}

	criteria := "your criteria"
	if len(filters) > 0 {
		criteria = strings.Join(filters, " and ")
	}
	return fmt.Sprintf("No conference sessions found for %s.", criteria)
}

func formatSessions(sessions []backend.ConferenceSession) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d conference session(s):\n\n", len(sessions))

	for _, s := range sessions {
		topic := s.Topic
		if topic == "" {
			topic = "Unknown Topic"
		}
		fmt.Fprintf(&b, "**%s**\n", topic)
		fmt.Fprintf(&b, "Speaker: %s\n", orTBD(s.Speaker))
		fmt.Fprintf(&b, "Time: %s - %s\n", formatClock(s.StartTime), formatClock(s.EndTime))
		fmt.Fprintf(&b, "Room: %s\n", orTBD(s.Room))
		fmt.Fprintf(&b, "Track: %s\n", orTBD(s.Track))
		fmt.Fprintf(&b, "Date: %s\n", orTBD(s.Date))
		if s.Description != "" {
			fmt.Fprintf(&b, "Description: %s\n", s.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// formatClock renders an RFC 3339 timestamp as a zone-normalized (UTC)
// time of day; values that do not parse pass through unchanged.
func formatClock(value string) string {
	if value == "" {
		return "TBD"
	}
	if !strings.Contains(value, "T") {
		return value
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	return ts.UTC().Format("03:04 PM")
}

func orTBD(value string) string {
	if value == "" {
		return "TBD"
	}
	return value
}
