package core

import "time"

// Session is the persisted unit of conversation state keyed by a session
// identifier. It holds the conversation context, the name of the currently
// active agent, the ordered message history and the ordered pipeline events.
//
// Contract:
//   - The identifier is unique and stable for the lifetime of a conversation
//   - CurrentAgent always names one of the three registered agents
//   - Mutations update the Updated timestamp
//   - Clone performs deep copies of slices/maps for safe divergence
type Session struct {
	ID           string              `json:"id"`
	Context      ConversationContext `json:"context"`
	CurrentAgent string              `json:"current_agent"`
	Messages     []MessageRecord     `json:"messages"`
	Events       []AgentEvent        `json:"events"`
	Created      time.Time           `json:"created"`
	Updated      time.Time           `json:"updated"`
}

// NewSession creates a session with default context and the triage agent
// active. An empty id is replaced with a generated one.
func NewSession(id string) *Session {
	if id == "" {
		id = NewID()
	}
	now := time.Now().UTC()
	return &Session{
		ID:           id,
		Context:      NewConversationContext(),
		CurrentAgent: AgentTriage,
		Messages:     []MessageRecord{},
		Events:       []AgentEvent{},
		Created:      now,
		Updated:      now,
	}
}

// AddMessage appends a message to the history.
func (s *Session) AddMessage(m MessageRecord) {
	s.Messages = append(s.Messages, m)
	s.Updated = time.Now().UTC()
}

// AddEvent appends a pipeline event to the history.
func (s *Session) AddEvent(ev AgentEvent) {
	s.Events = append(s.Events, ev)
	s.Updated = time.Now().UTC()
}

// Clone returns a deep copy of the session safe for independent mutation.
func (s *Session) Clone() *Session {
	clone := &Session{
		ID:           s.ID,
		Context:      s.Context.Clone(),
		CurrentAgent: s.CurrentAgent,
		Messages:     make([]MessageRecord, len(s.Messages)),
		Events:       make([]AgentEvent, len(s.Events)),
		Created:      s.Created,
		Updated:      s.Updated,
	}
	copy(clone.Messages, s.Messages)
	copy(clone.Events, s.Events)
	return clone
}

// SessionStore persists sessions across request cycles.
//
// GetOrCreate returns the stored session for the given id unchanged, or
// allocates a fresh one (generating an identifier when id is empty) and
// reports created=true. Save overwrites the stored entry keyed by session
// id: last-writer-wins, no merge. Implementations must not let callers
// mutate stored state except through Save.
type SessionStore interface {
	GetOrCreate(id string) (session *Session, created bool, err error)
	Save(session *Session) error
}
