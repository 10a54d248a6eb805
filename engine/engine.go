// Package engine runs the per-request orchestration cycle: load or create
// the session, screen the message through the guardrail pipeline, route it
// to an agent, dispatch the resulting backend query and persist the updated
// session. Each cycle is independent; all conversational state lives in the
// session store.
package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/confmesh/confmesh/backend"
	"github.com/confmesh/confmesh/core"
	"github.com/confmesh/confmesh/dispatch"
	"github.com/confmesh/confmesh/guardrail"
	"github.com/confmesh/confmesh/logging"
	"github.com/confmesh/confmesh/registry"
	"github.com/confmesh/confmesh/router"
	"github.com/confmesh/confmesh/session"
)

// ChatRequest is one inbound chat turn. ConversationID empty means start a
// new conversation; AccountNumber optionally identifies the user so the
// conversation context can be seeded from the identity record.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
	AccountNumber  string `json:"account_number,omitempty"`
}

// CustomerInfo wraps the resolved identity for the response envelope.
type CustomerInfo struct {
	Customer *backend.Identity `json:"customer,omitempty"`
}

// ChatResponse is the state snapshot returned after a cycle. Messages and
// Events carry only the records produced by this request; the full history
// stays in the session store.
type ChatResponse struct {
	ConversationID string                   `json:"conversation_id"`
	CurrentAgent   string                   `json:"current_agent"`
	Messages       []core.MessageRecord     `json:"messages"`
	Events         []core.AgentEvent        `json:"events"`
	Context        core.ConversationContext `json:"context"`
	Agents         []registry.AgentView     `json:"agents"`
	Guardrails     []core.GuardrailVerdict  `json:"guardrails"`
	CustomerInfo   *CustomerInfo            `json:"customer_info,omitempty"`
}

// Options configures the Engine. Any unset service is initialized with its
// default implementation.
type Options struct {
	// SessionStore persists conversations (defaults to in-memory).
	SessionStore core.SessionStore

	// Pipeline screens inbound messages (defaults to the standard
	// relevance + safety pipeline).
	Pipeline *guardrail.Pipeline

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// Engine orchestrates one chat cycle at a time. Safe for concurrent use as
// long as the session store is.
type Engine struct {
	store      core.SessionStore
	data       backend.DataAccess
	pipeline   *guardrail.Pipeline
	router     *router.Router
	dispatcher *dispatch.Dispatcher
	logger     logging.Logger
}

// New creates an Engine over the given data-access capability with optional
// overrides.
func New(data backend.DataAccess, optFns ...func(o *Options)) *Engine {
	opts := Options{
		SessionStore: session.NewInMemoryStore(),
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.Pipeline == nil {
		opts.Pipeline = guardrail.NewPipeline(opts.Logger)
	}

	return &Engine{
		store:      opts.SessionStore,
		data:       data,
		pipeline:   opts.Pipeline,
		router:     router.New(),
		dispatcher: dispatch.New(data, opts.Logger),
		logger:     opts.Logger,
	}
}

// ProcessChat runs one request cycle and returns the resulting conversation
// snapshot. Failures of the session store are the only errors surfaced;
// backend faults are absorbed into reply text by the dispatch layer.
func (e *Engine) ProcessChat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	sess, created, err := e.store.GetOrCreate(req.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	msgMark, evMark := len(sess.Messages), len(sess.Events)

	if created && req.AccountNumber != "" {
		e.seedContext(ctx, sess, req.AccountNumber)
	}

	if strings.TrimSpace(req.Message) == "" {
		if err := e.store.Save(sess); err != nil {
			return nil, fmt.Errorf("save session: %w", err)
		}
		e.logger.Info("engine.cycle.empty_message", "conversation_id", sess.ID)
		return e.respond(ctx, sess, msgMark, evMark, nil, req.AccountNumber), nil
	}

	verdicts, passed := e.pipeline.Evaluate(&sess.Context, req.Message)
	if !passed {
		sess.AddMessage(core.NewMessageRecord(sess.CurrentAgent, guardrail.RefusalMessage))
		if err := e.store.Save(sess); err != nil {
			return nil, fmt.Errorf("save session: %w", err)
		}
		e.logger.Info("engine.cycle.refused",
			"conversation_id", sess.ID, "agent", sess.CurrentAgent)
		return e.respond(ctx, sess, msgMark, evMark, verdicts, req.AccountNumber), nil
	}

	destination := e.router.Route(sess.CurrentAgent, req.Message)
	if destination != sess.CurrentAgent {
		sess.AddEvent(core.NewAgentEvent(core.EventHandoff, destination,
			fmt.Sprintf("%s -> %s", sess.CurrentAgent, destination)))
		sess.CurrentAgent = destination
	}

	result := e.dispatcher.Dispatch(ctx, sess.CurrentAgent, &sess.Context, req.Message)
	if result.Tool != "" {
		sess.AddEvent(core.NewAgentEvent(core.EventToolCall, sess.CurrentAgent, result.Tool))
	}
	sess.AddMessage(core.NewMessageRecord(sess.CurrentAgent, result.Reply))

	if err := e.store.Save(sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	e.logger.Info("engine.cycle.completed",
		"conversation_id", sess.ID, "agent", sess.CurrentAgent, "tool", result.Tool)
	return e.respond(ctx, sess, msgMark, evMark, verdicts, req.AccountNumber), nil
}

// seedContext populates a fresh session's context from the identity record
// behind the supplied account reference. Lookup faults and unknown
// references leave the default context in place.
func (e *Engine) seedContext(ctx context.Context, sess *core.Session, accountNumber string) {
	identity, err := e.data.LookupIdentity(ctx, accountNumber)
	if err != nil {
		e.logger.Warn("engine.seed_context.lookup_failed",
			"conversation_id", sess.ID, "error", err.Error())
		return
	}
	if identity == nil {
		return
	}

	sess.Context.DisplayName = identity.Name
	sess.Context.CustomerID = identity.ID
	sess.Context.AccountNumber = identity.AccountNumber
	sess.Context.CustomerEmail = identity.Email
	sess.Context.OrganizationID = identity.OrganizationID
	sess.Context.IsAttendee = identity.IsAttendee
	sess.Context.RegistrationID = identity.RegistrationID
	sess.Context.ConferencePackage = identity.ConferencePackage
	sess.Context.PrimaryStream = identity.PrimaryStream
	sess.Context.SecondaryStream = identity.SecondaryStream
	sess.Context.Location = identity.Location
	sess.Context.Company = identity.Company
	if identity.ConferenceName != "" {
		sess.Context.ConferenceName = identity.ConferenceName
	}
}

// respond builds the response snapshot. Only the messages and events
// appended past the given marks are included, so a resumed conversation
// never replays earlier turns. The customer record is re-resolved on every
// request carrying an account reference so the envelope reflects current
// data.
func (e *Engine) respond(ctx context.Context, sess *core.Session, msgMark, evMark int, verdicts []core.GuardrailVerdict, accountNumber string) *ChatResponse {
	resp := &ChatResponse{
		ConversationID: sess.ID,
		CurrentAgent:   sess.CurrentAgent,
		Messages:       append([]core.MessageRecord{}, sess.Messages[msgMark:]...),
		Events:         append([]core.AgentEvent{}, sess.Events[evMark:]...),
		Context:        sess.Context.Clone(),
		Agents:         registry.SerializeAll(),
		Guardrails:     append([]core.GuardrailVerdict{}, verdicts...),
	}

	if accountNumber != "" {
		identity, err := e.data.LookupIdentity(ctx, accountNumber)
		if err != nil {
			e.logger.Warn("engine.respond.lookup_failed",
				"conversation_id", sess.ID, "error", err.Error())
		} else if identity != nil {
			resp.CustomerInfo = &CustomerInfo{Customer: identity}
		}
	}
	return resp
}
