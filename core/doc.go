// Package core defines the shared value types of the conference assistant:
// conversation context, sessions, message and event records, guardrail
// verdicts and agent descriptors. It carries no behavior beyond defensive
// copying and identifier normalization so higher layers (guardrail, router,
// dispatch, engine) can depend on it without cycles.
package core
