package core

import (
	"time"

	"github.com/google/uuid"
)

// NewID generates a unique identifier for sessions, messages, events and
// guardrail verdicts.
func NewID() string { return uuid.NewString() }

// MessageRecord is one exchanged message within a session, authored either
// by the user or by the named agent.
type MessageRecord struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Agent     string    `json:"agent"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMessageRecord creates an agent-authored message record.
func NewMessageRecord(agent, content string) MessageRecord {
	return MessageRecord{
		ID:        NewID(),
		Content:   content,
		Agent:     agent,
		Timestamp: time.Now().UTC(),
	}
}

// Event types raised by the orchestration pipeline.
const (
	EventHandoff  = "handoff"
	EventToolCall = "tool_call"
)

// AgentEvent records one orchestration side-effect (an agent handoff or a
// backend tool invocation) for observability. After emission it should be
// treated as immutable.
type AgentEvent struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Agent     string            `json:"agent"`
	Content   string            `json:"content"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// NewAgentEvent creates an event authored by the named agent.
func NewAgentEvent(eventType, agent, content string) AgentEvent {
	return AgentEvent{
		ID:        NewID(),
		Type:      eventType,
		Agent:     agent,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// GuardrailVerdict is the result of one guardrail check: pass/fail plus a
// human-readable justification. Produced and consumed within a single
// request; no persisted identity beyond the generated ID.
type GuardrailVerdict struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Passed    bool      `json:"passed"`
	Reasoning string    `json:"reasoning"`
	Timestamp time.Time `json:"timestamp"`
}

// NewGuardrailVerdict creates a verdict for the named check.
func NewGuardrailVerdict(name string, passed bool, reasoning string) GuardrailVerdict {
	return GuardrailVerdict{
		ID:        NewID(),
		Name:      name,
		Passed:    passed,
		Reasoning: reasoning,
		Timestamp: time.Now().UTC(),
	}
}
