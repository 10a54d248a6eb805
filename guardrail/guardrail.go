// Package guardrail implements the pre-dispatch policy checks (relevance,
// safety) that can short-circuit normal processing with a deterministic
// refusal.
package guardrail

import (
	"strings"

	"github.com/confmesh/confmesh/core"
	"github.com/confmesh/confmesh/logging"
)

// RefusalMessage is the deterministic reply produced when any check fails.
const RefusalMessage = "Sorry, I can only answer questions related to conference assistance."

// Check evaluates one policy against an inbound message. A returned error
// marks a transient evaluation failure; the pipeline logs it and treats the
// check as skipped rather than aborting the request.
type Check interface {
	Name() string
	Evaluate(convCtx *core.ConversationContext, message string) (core.GuardrailVerdict, error)
}

// conferenceTerms is the fixed conference-domain vocabulary for the
// relevance check.
var conferenceTerms = []string{
	"conference", "session", "speaker", "schedule", "attendee", "business",
	"networking", "track", "room", "event", "presentation", "workshop",
	"company", "organization", "meeting", "agenda", "registration",
}

// generalTerms covers greetings and question words so small talk is not
// refused outright.
var generalTerms = []string{
	"hello", "hi", "help", "what", "how", "when", "where", "who", "can you",
}

// jailbreakTerms is the fixed instruction-override vocabulary for the
// safety check.
var jailbreakTerms = []string{
	"ignore", "system", "prompt", "instruction", "override", "bypass",
	"pretend", "roleplay", "act as", "forget", "disregard",
}

func containsAny(lowered string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}

// RelevanceCheck passes when the message mentions the conference domain or
// reads as general conversation.
type RelevanceCheck struct{}

// Name returns the stable check identifier used in verdict records.
func (RelevanceCheck) Name() string { return "relevance_guardrail" }

// Evaluate applies the fixed vocabularies against the lowercased message.
func (c RelevanceCheck) Evaluate(_ *core.ConversationContext, message string) (core.GuardrailVerdict, error) {
	lowered := strings.ToLower(message)
	if containsAny(lowered, conferenceTerms) || containsAny(lowered, generalTerms) {
		return core.NewGuardrailVerdict(c.Name(), true,
			"User input is related to conference assistance or is a general inquiry."), nil
	}
	return core.NewGuardrailVerdict(c.Name(), false,
		"User input does not appear to be related to conference assistance."), nil
}

// JailbreakCheck fails when the message contains an instruction-override
// pattern.
type JailbreakCheck struct{}

// Name returns the stable check identifier used in verdict records.
func (JailbreakCheck) Name() string { return "jailbreak_guardrail" }

// Evaluate scans the lowercased message for override vocabulary.
func (c JailbreakCheck) Evaluate(_ *core.ConversationContext, message string) (core.GuardrailVerdict, error) {
	if containsAny(strings.ToLower(message), jailbreakTerms) {
		return core.NewGuardrailVerdict(c.Name(), false,
			"Detected potential jailbreak attempt."), nil
	}
	return core.NewGuardrailVerdict(c.Name(), true,
		"No jailbreak patterns detected."), nil
}

// Pipeline runs checks in fixed order with short-circuit semantics:
// relevance first, then safety; the first failing verdict stops evaluation.
type Pipeline struct {
	checks []Check
	logger logging.Logger
}

// NewPipeline builds the standard two-check pipeline.
func NewPipeline(logger logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Pipeline{
		checks: []Check{RelevanceCheck{}, JailbreakCheck{}},
		logger: logger,
	}
}

// NewPipelineWithChecks builds a pipeline over an explicit ordered check
// list. Used by tests to inject failing checks.
func NewPipelineWithChecks(logger logging.Logger, checks ...Check) *Pipeline {
	p := NewPipeline(logger)
	p.checks = checks
	return p
}

// Evaluate runs the checks in order against the message. It returns the
// verdicts of every check that ran and whether the message passed. A check
// that errors is logged and skipped; it contributes no verdict and never
// aborts the request.
func (p *Pipeline) Evaluate(convCtx *core.ConversationContext, message string) ([]core.GuardrailVerdict, bool) {
	verdicts := make([]core.GuardrailVerdict, 0, len(p.checks))
	for _, check := range p.checks {
		verdict, err := check.Evaluate(convCtx, message)
		if err != nil {
			p.logger.Warn("guardrail.check.skipped", "check", check.Name(), "error", err.Error())
			continue
		}
		verdicts = append(verdicts, verdict)
		if !verdict.Passed {
			return verdicts, false
		}
	}
	return verdicts, true
}
