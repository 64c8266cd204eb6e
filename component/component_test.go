package component

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/agentworld/core"
)

func TestNew_CoversCatalogue(t *testing.T) {
	kinds := []core.Kind{
		KindLLM,
		KindConversation,
		KindKVStore,
		KindToolRegistry,
		KindPendingToolCalls,
		KindToolResults,
		KindPlan,
		KindCollaboration,
		KindOwner,
		KindError,
		KindTerminal,
		KindSystemPrompt,
		KindToolApproval,
		KindCheckpoint,
		KindRunnerState,
		KindCompactionConfig,
		KindConversationArchive,
	}

	for _, kind := range kinds {
		c, ok := New(kind)
		assert.True(t, ok, "missing factory entry for %q", kind)
		assert.Equal(t, kind, c.Kind())
	}
}

func TestNew_UnknownKind(t *testing.T) {
	_, ok := New("does_not_exist")
	assert.False(t, ok)
}

func TestKind_NilReceiverSafe(t *testing.T) {
	// The typed Get helper resolves kinds on zero (nil) receivers.
	var llm *LLM
	assert.Equal(t, KindLLM, llm.Kind())

	var ring *Checkpoint
	assert.Equal(t, KindCheckpoint, ring.Kind())
}
