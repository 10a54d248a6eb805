// Package confmesh provides a high-level façade over the orchestration
// engine and its services (sessions, guardrails, routing, dispatch) for
// building conference-assistant backends. Most applications interact with
// this package by:
//  1. Creating a Mesh via New() with a data-access implementation
//     (optionally overriding the default in-memory session store)
//  2. Calling Chat() once per inbound user message
//
// The façade delegates orchestration to engine.Engine while keeping setup
// ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply a durable session store
// and a structured logger.
package confmesh

import (
	"context"

	"github.com/confmesh/confmesh/backend"
	"github.com/confmesh/confmesh/core"
	"github.com/confmesh/confmesh/engine"
	"github.com/confmesh/confmesh/logging"
	"github.com/confmesh/confmesh/registry"
	"github.com/confmesh/confmesh/session"
)

// Options configures the Mesh instance.
type Options struct {
	// SessionStore persists conversations (defaults to in-memory).
	SessionStore core.SessionStore

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// Mesh is the high-level façade aggregating the orchestration engine.
type Mesh struct {
	opts   Options
	engine *engine.Engine
}

// New creates a Mesh over the given data-access capability with optional
// overrides. Any unset service is initialized with its default
// implementation.
func New(data backend.DataAccess, optFns ...func(o *Options)) *Mesh {
	opts := Options{
		SessionStore: session.NewInMemoryStore(),
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	e := engine.New(data, func(o *engine.Options) {
		o.SessionStore = opts.SessionStore
		o.Logger = opts.Logger
	})

	return &Mesh{opts: opts, engine: e}
}

// Chat runs one orchestration cycle for the inbound message and returns the
// resulting conversation snapshot.
func (m *Mesh) Chat(ctx context.Context, req engine.ChatRequest) (*engine.ChatResponse, error) {
	return m.engine.ProcessChat(ctx, req)
}

// Agents returns the registered agent descriptors in serialized form.
func (m *Mesh) Agents() []registry.AgentView {
	return registry.SerializeAll()
}
