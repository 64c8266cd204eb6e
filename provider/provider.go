// Package provider defines the LLM completion contract consumed by the llm
// component, plus a scripted Fake implementation for tests and examples.
// Concrete adapters for the Anthropic and OpenAI APIs live in the anthropic
// and openai subpackages.
package provider

import (
	"context"

	"github.com/hupe1980/agentworld/core"
)

// DefaultKey is the provider-map fallback consulted during snapshot restore
// when no provider is registered for a component's model name.
const DefaultKey = "default"

// Provider produces one completion for a conversation. Provider values are
// live external resources: they are never serialized, and snapshot restore
// re-resolves them from a caller-supplied Map by the component's model name.
type Provider interface {
	// Complete returns the model's next message for the given history.
	// Tools, when non-empty, are offered to the model for function calling.
	Complete(ctx context.Context, messages []core.Message, tools []core.ToolSchema) (*core.CompletionResult, error)
}

// Map keys providers by model name. The DefaultKey entry, when present, is
// used for any model without its own entry.
type Map = map[string]Provider
