package core

import (
	"context"

	"github.com/google/uuid"
)

// NewID returns a random unique identifier. Used for tool call ids, which
// must be unique within a conversation but carry no other meaning.
func NewID() string { return uuid.NewString() }

// ToolCall is a request by a model to invoke a named tool with JSON
// arguments.
type ToolCall struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// Message is one entry in a conversation history.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ToolSchema describes a callable tool: name, description and a JSON Schema
// object for its parameters.
type ToolSchema struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Usage captures token usage statistics for one completion.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// CompletionResult is the outcome of one model completion.
type CompletionResult struct {
	Message Message `json:"message"`
	Usage   *Usage  `json:"usage,omitempty"`
}

// ToolHandler executes one tool call and returns its textual result. Handler
// maps are live references and are never serialized; snapshot restore
// re-injects them from the caller.
type ToolHandler func(ctx context.Context, args map[string]any) (string, error)
