package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentworld/core"
)

func TestFake_Complete(t *testing.T) {
	fake := NewFake(
		core.CompletionResult{Message: core.Message{Role: "assistant", Content: "first"}},
		core.CompletionResult{Message: core.Message{Role: "assistant", Content: "second"}},
	)

	result, err := fake.Complete(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "first", result.Message.Content)

	result, err = fake.Complete(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "second", result.Message.Content)
	assert.Equal(t, 2, fake.Calls())

	_, err = fake.Complete(context.Background(), nil, nil)
	assert.ErrorContains(t, err, "exhausted after 2 responses")
}

func TestFake_EmptyScript(t *testing.T) {
	fake := NewFake()

	_, err := fake.Complete(context.Background(), nil, nil)
	assert.Error(t, err)
	assert.Equal(t, 0, fake.Calls())
}
