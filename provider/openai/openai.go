// Package openai provides a Provider adapter for the OpenAI Chat
// Completions API (including function/tool calling). It converts the
// runtime's message structures into the SDK's message format and back.
package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/hupe1980/agentworld/core"
	"github.com/hupe1980/agentworld/provider"
)

// Options configure the OpenAI provider adapter. Fields mirror a subset of
// Chat Completion parameters intentionally kept minimal; extend via
// functional options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Provider wraps the OpenAI Chat Completions API behind the generic
// provider.Provider interface.
type Provider struct {
	client *openai.Client
	opts   Options
}

var _ provider.Provider = (*Provider)(nil)

// New creates a new OpenAI provider using the official client.
func New(optFns ...func(o *Options)) *Provider {
	client := openai.NewClient()
	return NewFromClient(&client, optFns...)
}

// NewFromClient creates a new OpenAI provider from an existing client.
func NewFromClient(client *openai.Client, optFns ...func(o *Options)) *Provider {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Provider{client: client, opts: opts}
}

// Complete adapts one conversation turn onto the Chat Completions API and
// converts the first choice back into a core.CompletionResult.
func (p *Provider) Complete(
	ctx context.Context,
	messages []core.Message,
	tools []core.ToolSchema,
) (*core.CompletionResult, error) {
	params := p.buildParams(buildMessages(messages), tools)

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned")
	}

	choice := resp.Choices[0]
	message := core.Message{Role: "assistant", Content: choice.Message.Content}
	for _, tc := range choice.Message.ToolCalls {
		args := map[string]any{}
		if tc.Function.Arguments != "" {
			_ = json.Unmarshal([]byte(tc.Function.Arguments), &args)
		}
		message.ToolCalls = append(message.ToolCalls, core.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: args,
		})
	}

	return &core.CompletionResult{
		Message: message,
		Usage: &core.Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}, nil
}

// buildMessages converts conversation history into OpenAI chat messages,
// attaching tool responses immediately after the assistant turn that
// requested them.
func buildMessages(messages []core.Message) []openai.ChatCompletionMessageParamUnion {
	toolResponses := make(map[string]string)
	var order []string
	for _, m := range messages {
		if m.Role != "tool" || m.ToolCallID == "" {
			continue
		}
		if _, exists := toolResponses[m.ToolCallID]; exists {
			continue
		}
		toolResponses[m.ToolCallID] = m.Content
		order = append(order, m.ToolCallID)
	}

	var out []openai.ChatCompletionMessageParamUnion
	for _, m := range messages {
		switch m.Role {
		case "tool":
			continue
		case "system":
			out = append(out, openai.SystemMessage(m.Content))
		case "user":
			out = append(out, openai.UserMessage(m.Content))
		case "assistant":
			if len(m.ToolCalls) == 0 {
				out = append(out, openai.AssistantMessage(m.Content))
				continue
			}
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfAssistant: &openai.ChatCompletionAssistantMessageParam{
					Role:      "assistant",
					ToolCalls: buildToolCalls(m.ToolCalls),
				},
			})
			for _, tc := range m.ToolCalls {
				if resp, ok := toolResponses[tc.ID]; ok {
					out = append(out, openai.ToolMessage(resp, tc.ID))
					delete(toolResponses, tc.ID)
				}
			}
		default:
			if m.Content != "" {
				out = append(out, openai.UserMessage(m.Content))
			}
		}
	}

	// Orphaned tool responses (no matching assistant turn) go at the end in
	// first-seen order.
	for _, id := range order {
		if resp, ok := toolResponses[id]; ok {
			out = append(out, openai.ToolMessage(resp, id))
		}
	}
	return out
}

// buildToolCalls converts runtime tool calls to OpenAI formatted tool calls.
func buildToolCalls(toolCalls []core.ToolCall) []openai.ChatCompletionMessageToolCallParam {
	out := make([]openai.ChatCompletionMessageToolCallParam, len(toolCalls))
	for i, tc := range toolCalls {
		args := "{}"
		if tc.Arguments != nil {
			if b, err := json.Marshal(tc.Arguments); err == nil {
				args = string(b)
			}
		}
		out[i] = openai.ChatCompletionMessageToolCallParam{
			ID:   tc.ID,
			Type: "function",
			Function: openai.ChatCompletionMessageToolCallFunctionParam{
				Name:      tc.Name,
				Arguments: args,
			},
		}
	}
	return out
}

// buildParams assembles the request parameters including tool definitions.
func (p *Provider) buildParams(
	messages []openai.ChatCompletionMessageParamUnion,
	tools []core.ToolSchema,
) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Messages:            messages,
		Model:               p.opts.Model,
		Temperature:         openai.Float(p.opts.Temperature),
		MaxCompletionTokens: openai.Int(p.opts.MaxCompletionTokens),
	}
	if len(tools) == 0 {
		return params
	}

	defs := make([]openai.ChatCompletionToolParam, len(tools))
	for i, tool := range tools {
		defs[i] = openai.ChatCompletionToolParam{
			Type: "function",
			Function: openai.FunctionDefinitionParam{
				Name:        tool.Name,
				Description: openai.String(tool.Description),
				Parameters:  tool.Parameters,
			},
		}
	}
	params.Tools = defs
	return params
}
