package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/agentworld/core"
)

// Fake is a lightweight in-memory Provider returning pre-defined completion
// results sequentially. Useful for tests and examples; input messages and
// tools are ignored.
type Fake struct {
	mu        sync.Mutex
	responses []core.CompletionResult
	index     int
}

var _ Provider = (*Fake)(nil)

// NewFake constructs a Fake that returns the given results in order.
func NewFake(responses ...core.CompletionResult) *Fake {
	return &Fake{responses: responses}
}

// Complete returns the next scripted result, or an error once all responses
// have been consumed.
func (f *Fake) Complete(_ context.Context, _ []core.Message, _ []core.ToolSchema) (*core.CompletionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.index >= len(f.responses) {
		return nil, fmt.Errorf("fake provider exhausted after %d responses", len(f.responses))
	}
	result := f.responses[f.index]
	f.index++
	return &result, nil
}

// Calls reports how many completions have been served so far.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.index
}
