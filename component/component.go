package component

import (
	"github.com/hupe1980/agentworld/core"
	"github.com/hupe1980/agentworld/provider"
)

// Kind constants for the closed catalogue. Serialized snapshots key
// components by these names.
const (
	KindLLM                 core.Kind = "llm"
	KindConversation        core.Kind = "conversation"
	KindKVStore             core.Kind = "kv_store"
	KindToolRegistry        core.Kind = "tool_registry"
	KindPendingToolCalls    core.Kind = "pending_tool_calls"
	KindToolResults         core.Kind = "tool_results"
	KindPlan                core.Kind = "plan"
	KindCollaboration       core.Kind = "collaboration"
	KindOwner               core.Kind = "owner"
	KindError               core.Kind = "error"
	KindTerminal            core.Kind = "terminal"
	KindSystemPrompt        core.Kind = "system_prompt"
	KindToolApproval        core.Kind = "tool_approval"
	KindCheckpoint          core.Kind = "checkpoint"
	KindRunnerState         core.Kind = "runner_state"
	KindCompactionConfig    core.Kind = "compaction_config"
	KindConversationArchive core.Kind = "conversation_archive"
)

// LLM links an entity to an LLM provider. The Provider handle is a live
// external resource; snapshots record only the Model name and restore
// resolves the provider from a caller-supplied map.
type LLM struct {
	Provider     provider.Provider `json:"-"`
	Model        string            `json:"model"`
	SystemPrompt string            `json:"system_prompt"`
}

// Kind implements core.Component.
func (*LLM) Kind() core.Kind { return KindLLM }

// Conversation holds an entity's message history.
type Conversation struct {
	Messages    []core.Message `json:"messages"`
	MaxMessages int            `json:"max_messages"`
}

// Kind implements core.Component.
func (*Conversation) Kind() core.Kind { return KindConversation }

// KVStore is simple key-value memory.
type KVStore struct {
	Store map[string]any `json:"store"`
}

// Kind implements core.Component.
func (*KVStore) Kind() core.Kind { return KindKVStore }

// ToolRegistry holds registered tool schemas and their handlers. Handlers
// are live callables; snapshots record only the schemas and restore installs
// the caller-supplied handler map.
type ToolRegistry struct {
	Tools    map[string]core.ToolSchema  `json:"tools"`
	Handlers map[string]core.ToolHandler `json:"-"`
}

// Kind implements core.Component.
func (*ToolRegistry) Kind() core.Kind { return KindToolRegistry }

// PendingToolCalls queues tool calls awaiting execution.
type PendingToolCalls struct {
	ToolCalls []core.ToolCall `json:"tool_calls"`
}

// Kind implements core.Component.
func (*PendingToolCalls) Kind() core.Kind { return KindPendingToolCalls }

// ToolResults maps tool call ids to their result strings.
type ToolResults struct {
	Results map[string]string `json:"results"`
}

// Kind implements core.Component.
func (*ToolResults) Kind() core.Kind { return KindToolResults }

// Plan tracks step-wise plan execution.
type Plan struct {
	Steps       []string `json:"steps"`
	CurrentStep int      `json:"current_step"`
	Completed   bool     `json:"completed"`
}

// Kind implements core.Component.
func (*Plan) Kind() core.Kind { return KindPlan }

// InboxEntry is one delivered peer message.
type InboxEntry struct {
	From    core.EntityID `json:"from"`
	Message core.Message  `json:"message"`
}

// Collaboration wires multi-agent messaging: known peers and an inbox of
// delivered messages. Peer ids stay valid across undo and resume because
// entity ids are never recycled.
type Collaboration struct {
	Peers []core.EntityID `json:"peers"`
	Inbox []InboxEntry    `json:"inbox"`
}

// Kind implements core.Component.
func (*Collaboration) Kind() core.Kind { return KindCollaboration }

// Owner records an entity ownership relationship.
type Owner struct {
	OwnerID core.EntityID `json:"owner_id"`
}

// Kind implements core.Component.
func (*Owner) Kind() core.Kind { return KindOwner }

// Error captures a system failure attached to an entity.
type Error struct {
	Error      string  `json:"error"`
	SystemName string  `json:"system_name"`
	Timestamp  float64 `json:"timestamp"`
}

// Kind implements core.Component.
func (*Error) Kind() core.Kind { return KindError }

// Terminal marks run completion. Its mere presence on any entity stops the
// runner; Reason explains why.
type Terminal struct {
	Reason string `json:"reason"`
}

// Kind implements core.Component.
func (*Terminal) Kind() core.Kind { return KindTerminal }

// SystemPrompt holds a standalone system prompt.
type SystemPrompt struct {
	Content string `json:"content"`
}

// Kind implements core.Component.
func (*SystemPrompt) Kind() core.Kind { return KindSystemPrompt }

// ApprovalPolicy governs how tool calls are approved.
type ApprovalPolicy string

const (
	// ApprovalAlwaysApprove auto-approves every tool call.
	ApprovalAlwaysApprove ApprovalPolicy = "always_approve"
	// ApprovalAlwaysDeny rejects every tool call.
	ApprovalAlwaysDeny ApprovalPolicy = "always_deny"
	// ApprovalRequire forwards tool calls for explicit approval.
	ApprovalRequire ApprovalPolicy = "require_approval"
)

// ToolApproval configures the approval policy for an entity's tool calls.
type ToolApproval struct {
	Policy  ApprovalPolicy `json:"policy"`
	Timeout float64        `json:"timeout"`
}

// Kind implements core.Component.
func (*ToolApproval) Kind() core.Kind { return KindToolApproval }

// Checkpoint is the bounded FIFO ring of world snapshots attached to one
// subject entity. Insertion at the tail, eviction from the head once
// MaxSnapshots is exceeded.
type Checkpoint struct {
	Snapshots    []*core.Snapshot `json:"snapshots"`
	MaxSnapshots int              `json:"max_snapshots"`
}

// Kind implements core.Component.
func (*Checkpoint) Kind() core.Kind { return KindCheckpoint }

// RunnerState is the runner's bookkeeping, stored as a component on a
// dedicated entity so the same snapshot machinery captures and restores it.
type RunnerState struct {
	CurrentTick int  `json:"current_tick"`
	IsPaused    bool `json:"is_paused"`
}

// Kind implements core.Component.
func (*RunnerState) Kind() core.Kind { return KindRunnerState }

// CompactionConfig tunes conversation compaction for an entity.
type CompactionConfig struct {
	ThresholdTokens int    `json:"threshold_tokens"`
	SummaryModel    string `json:"summary_model"`
}

// Kind implements core.Component.
func (*CompactionConfig) Kind() core.Kind { return KindCompactionConfig }

// ConversationArchive accumulates summaries of compacted conversation
// segments.
type ConversationArchive struct {
	ArchivedSummaries []string `json:"archived_summaries"`
}

// Kind implements core.Component.
func (*ConversationArchive) Kind() core.Kind { return KindConversationArchive }

// New returns a fresh zero component of the given kind. The switch is the
// closed catalogue: decoding an unknown kind returns false, and adding a
// kind here is the single place the catalogue grows.
func New(kind core.Kind) (core.Component, bool) {
	switch kind {
	case KindLLM:
		return &LLM{}, true
	case KindConversation:
		return &Conversation{}, true
	case KindKVStore:
		return &KVStore{}, true
	case KindToolRegistry:
		return &ToolRegistry{}, true
	case KindPendingToolCalls:
		return &PendingToolCalls{}, true
	case KindToolResults:
		return &ToolResults{}, true
	case KindPlan:
		return &Plan{}, true
	case KindCollaboration:
		return &Collaboration{}, true
	case KindOwner:
		return &Owner{}, true
	case KindError:
		return &Error{}, true
	case KindTerminal:
		return &Terminal{}, true
	case KindSystemPrompt:
		return &SystemPrompt{}, true
	case KindToolApproval:
		return &ToolApproval{}, true
	case KindCheckpoint:
		return &Checkpoint{}, true
	case KindRunnerState:
		return &RunnerState{}, true
	case KindCompactionConfig:
		return &CompactionConfig{}, true
	case KindConversationArchive:
		return &ConversationArchive{}, true
	default:
		return nil, false
	}
}
