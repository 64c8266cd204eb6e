package snapshot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentworld/component"
	"github.com/hupe1980/agentworld/core"
	"github.com/hupe1980/agentworld/provider"
)

func echoHandler(_ context.Context, args map[string]any) (string, error) {
	return "echo", nil
}

// buildWorld assembles a world touching most of the component catalogue.
func buildWorld(p provider.Provider) (*core.World, core.EntityID, core.EntityID) {
	w := core.NewWorld()

	agent := w.CreateEntity()
	w.AddComponent(agent, &component.LLM{
		Provider:     p,
		Model:        "test-model",
		SystemPrompt: "be helpful",
	})
	w.AddComponent(agent, &component.Conversation{
		Messages: []core.Message{
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "", ToolCalls: []core.ToolCall{
				{ID: "tc-1", Name: "echo", Arguments: map[string]any{"text": "hi"}},
			}},
			{Role: "tool", Content: "hi", ToolCallID: "tc-1"},
		},
		MaxMessages: 50,
	})
	w.AddComponent(agent, &component.ToolRegistry{
		Tools: map[string]core.ToolSchema{
			"echo": {Name: "echo", Description: "echoes", Parameters: map[string]any{"type": "object"}},
		},
		Handlers: map[string]core.ToolHandler{"echo": echoHandler},
	})

	peer := w.CreateEntity()
	w.AddComponent(peer, &component.KVStore{Store: map[string]any{"visits": float64(3), "name": "peer"}})
	w.AddComponent(peer, &component.Plan{Steps: []string{"a", "b"}, CurrentStep: 1})
	w.AddComponent(peer, &component.Owner{OwnerID: agent})
	w.AddComponent(peer, &component.Collaboration{
		Peers: []core.EntityID{agent},
		Inbox: []component.InboxEntry{{From: agent, Message: core.Message{Role: "user", Content: "ping"}}},
	})
	w.AddComponent(peer, &component.ToolRegistry{
		Tools:    map[string]core.ToolSchema{},
		Handlers: map[string]core.ToolHandler{"echo": echoHandler},
	})

	bookkeeping := w.CreateEntity()
	w.AddComponent(bookkeeping, &component.RunnerState{CurrentTick: 4, IsPaused: true})

	return w, agent, peer
}

func TestCapture_MasksLiveResources(t *testing.T) {
	w, agent, _ := buildWorld(provider.NewFake())

	snap, err := Capture(w)
	require.NoError(t, err)

	assert.Equal(t, int64(4), snap.NextEntityID)
	assert.Len(t, snap.Entities, 3)

	record := snap.Entities["1"]
	require.NotNil(t, record)
	assert.Equal(t, Sentinel, record[string(component.KindLLM)]["provider"])
	assert.Equal(t, "test-model", record[string(component.KindLLM)]["model"])
	assert.Equal(t, Sentinel, record[string(component.KindToolRegistry)]["handlers"])

	// Capture shares no mutable state with the live world.
	conv, _ := core.Get[*component.Conversation](w, agent)
	conv.Messages = append(conv.Messages, core.Message{Role: "user", Content: "more"})
	messages := record[string(component.KindConversation)]["messages"].([]any)
	assert.Len(t, messages, 3)
}

func TestRestore_RoundTripIdempotent(t *testing.T) {
	fake := provider.NewFake()
	w, _, _ := buildWorld(fake)

	snap, err := Capture(w)
	require.NoError(t, err)

	handlers := map[string]core.ToolHandler{"echo": echoHandler}
	restored, err := Restore(snap, provider.Map{"test-model": fake}, handlers)
	require.NoError(t, err)

	llm, ok := core.Get[*component.LLM](restored, 1)
	require.True(t, ok)
	assert.Equal(t, "test-model", llm.Model)
	assert.Equal(t, "be helpful", llm.SystemPrompt)
	assert.Same(t, fake, llm.Provider.(*provider.Fake))

	conv, ok := core.Get[*component.Conversation](restored, 1)
	require.True(t, ok)
	assert.Equal(t, 50, conv.MaxMessages)
	require.Len(t, conv.Messages, 3)
	assert.Equal(t, "tc-1", conv.Messages[1].ToolCalls[0].ID)
	assert.Equal(t, "tc-1", conv.Messages[2].ToolCallID)

	owner, ok := core.Get[*component.Owner](restored, 2)
	require.True(t, ok)
	assert.Equal(t, core.EntityID(1), owner.OwnerID)

	state, ok := core.Get[*component.RunnerState](restored, 3)
	require.True(t, ok)
	assert.Equal(t, 4, state.CurrentTick)
	assert.True(t, state.IsPaused)

	// Re-serializing the restored world yields the same document.
	again, err := Capture(restored)
	require.NoError(t, err)
	assert.Equal(t, snap, again)
}

func TestRestore_EntityIDContinuity(t *testing.T) {
	fake := provider.NewFake()
	w, _, _ := buildWorld(fake)

	snap, err := Capture(w)
	require.NoError(t, err)

	restored, err := Restore(snap, provider.Map{"test-model": fake}, nil)
	require.NoError(t, err)

	assert.Equal(t, core.EntityID(4), restored.NextEntityID())
	assert.Equal(t, core.EntityID(4), restored.CreateEntity())
}

func TestRestore_SharedToolHandlerTable(t *testing.T) {
	fake := provider.NewFake()
	w, _, _ := buildWorld(fake)

	snap, err := Capture(w)
	require.NoError(t, err)

	handlers := map[string]core.ToolHandler{"echo": echoHandler}
	restored, err := Restore(snap, provider.Map{provider.DefaultKey: fake}, handlers)
	require.NoError(t, err)

	// The caller-supplied table is installed verbatim on every restored
	// registry; mutating it through one entity is visible through the other.
	first, _ := core.Get[*component.ToolRegistry](restored, 1)
	second, _ := core.Get[*component.ToolRegistry](restored, 2)
	first.Handlers["extra"] = echoHandler
	assert.Len(t, second.Handlers, 2)
}

func TestRestore_ProviderFallbackToDefault(t *testing.T) {
	w := core.NewWorld()
	w.AddComponent(w.CreateEntity(), &component.LLM{Provider: provider.NewFake(), Model: "unmapped"})

	snap, err := Capture(w)
	require.NoError(t, err)

	fallback := provider.NewFake()
	restored, err := Restore(snap, provider.Map{provider.DefaultKey: fallback}, nil)
	require.NoError(t, err)

	llm, _ := core.Get[*component.LLM](restored, 1)
	assert.Same(t, fallback, llm.Provider.(*provider.Fake))
}

func TestRestore_UnresolvedProviderFailsLoudly(t *testing.T) {
	w := core.NewWorld()
	w.AddComponent(w.CreateEntity(), &component.LLM{Provider: provider.NewFake(), Model: "ghost"})

	snap, err := Capture(w)
	require.NoError(t, err)

	_, err = Restore(snap, provider.Map{"other": provider.NewFake()}, nil)
	assert.ErrorIs(t, err, ErrNoProvider)
	assert.Contains(t, err.Error(), "ghost")
}

func TestRestore_SkipsUnknownKinds(t *testing.T) {
	snap := &core.Snapshot{
		NextEntityID: 2,
		Entities: map[string]core.EntityRecord{
			"1": {
				"mystery":                          {"field": "value"},
				string(component.KindSystemPrompt): {"content": "hello"},
			},
		},
	}

	restored, err := Restore(snap, nil, nil)
	require.NoError(t, err)

	prompt, ok := core.Get[*component.SystemPrompt](restored, 1)
	require.True(t, ok)
	assert.Equal(t, "hello", prompt.Content)
	assert.Equal(t, []core.Kind{component.KindSystemPrompt}, restored.ComponentKinds())
}

func TestCapture_NestedCheckpointRing(t *testing.T) {
	w := core.NewWorld()
	subject := w.CreateEntity()
	w.AddComponent(subject, &component.KVStore{Store: map[string]any{"k": "v"}})

	inner, err := Capture(w)
	require.NoError(t, err)

	w.AddComponent(subject, &component.Checkpoint{Snapshots: []*core.Snapshot{inner}, MaxSnapshots: 3})

	snap, err := Capture(w)
	require.NoError(t, err)

	restored, err := Restore(snap, nil, nil)
	require.NoError(t, err)

	ring, ok := core.Get[*component.Checkpoint](restored, subject)
	require.True(t, ok)
	assert.Equal(t, 3, ring.MaxSnapshots)
	require.Len(t, ring.Snapshots, 1)
	assert.Equal(t, inner.NextEntityID, ring.Snapshots[0].NextEntityID)
}
