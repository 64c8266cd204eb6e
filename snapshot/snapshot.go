// Package snapshot implements full-state (de)serialization of a World. It
// produces the documented JSON checkpoint shape: every entity's components
// as kind-name → field maps, with live external resources (LLM providers,
// tool handlers) replaced by the Sentinel placeholder. Restore replays the
// document into a fresh World and re-injects the live resources from
// caller-supplied lookup tables.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/hupe1980/agentworld/component"
	"github.com/hupe1980/agentworld/core"
	"github.com/hupe1980/agentworld/provider"
)

// Sentinel is the fixed placeholder substituted for any field that cannot be
// serialized. It appears verbatim in checkpoint files.
const Sentinel = "<non-serializable>"

// ErrNoProvider is returned by Restore when a serialized llm component's
// model resolves to neither a configured provider nor the "default" entry.
var ErrNoProvider = errors.New("no provider configured")

// Capture serializes every entity with at least one component into an
// immutable Snapshot. Provider handles and tool handler maps are replaced by
// Sentinel; everything else is copied byte-identically through JSON, so the
// snapshot shares no mutable state with the live world.
func Capture(w *core.World) (*core.Snapshot, error) {
	entities := make(map[string]core.EntityRecord)

	for _, id := range w.EntityIDs() {
		record := make(core.EntityRecord)
		for _, kind := range w.ComponentKinds() {
			c, ok := w.GetComponent(id, kind)
			if !ok {
				continue
			}
			fields, err := encodeComponent(c)
			if err != nil {
				return nil, fmt.Errorf("serialize entity %d component %q: %w", id, kind, err)
			}
			record[string(kind)] = fields
		}
		entities[strconv.FormatInt(int64(id), 10)] = record
	}

	return &core.Snapshot{
		NextEntityID: int64(w.NextEntityID()),
		Entities:     entities,
	}, nil
}

// Restore replays a Snapshot into a fresh World. Wherever Sentinel appears
// on an llm component's provider field, the concrete provider is resolved
// from providers by the component's own model name, falling back to the
// "default" key, and failing with ErrNoProvider if neither resolves.
// Wherever Sentinel appears on a tool registry's handlers field, the
// caller-supplied toolHandlers map is installed verbatim — every restored
// registry shares the same map, matching the recorded behavior of the
// snapshot format (per-entity handler scoping is not recorded).
//
// The entity id counter is restored from the snapshot so ids issued after a
// load never collide with pre-snapshot ids. Components of unknown kinds are
// skipped.
func Restore(
	snap *core.Snapshot,
	providers provider.Map,
	toolHandlers map[string]core.ToolHandler,
) (*core.World, error) {
	w := core.NewWorld()

	for idStr, record := range snap.Entities {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid entity id %q: %w", idStr, err)
		}
		for kindName, fields := range record {
			c, ok := decodeTarget(core.Kind(kindName))
			if !ok {
				continue
			}
			if err := decodeComponent(c, fields, providers, toolHandlers); err != nil {
				return nil, fmt.Errorf("restore entity %s component %q: %w", idStr, kindName, err)
			}
			w.AddComponent(core.EntityID(id), c)
		}
	}

	w.ResetEntityCounter(core.EntityID(snap.NextEntityID))
	return w, nil
}

// encodeComponent converts a component into its serialized field map and
// masks live-resource fields with Sentinel.
func encodeComponent(c core.Component) (map[string]any, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]any)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}

	switch c.Kind() {
	case component.KindLLM:
		fields["provider"] = Sentinel
	case component.KindToolRegistry:
		fields["handlers"] = Sentinel
	}
	return fields, nil
}

// decodeTarget returns a fresh component for the kind, or false for kinds
// outside the catalogue.
func decodeTarget(kind core.Kind) (core.Component, bool) {
	return component.New(kind)
}

// decodeComponent fills c from its serialized field map, resolving sentinel
// fields against the caller-supplied live resources.
func decodeComponent(
	c core.Component,
	fields map[string]any,
	providers provider.Map,
	toolHandlers map[string]core.ToolHandler,
) error {
	// Sentinel fields are not part of the component's JSON shape; strip them
	// before unmarshaling and resolve them afterwards.
	data := fields
	switch c.Kind() {
	case component.KindLLM, component.KindToolRegistry:
		data = make(map[string]any, len(fields))
		for k, v := range fields {
			if k == "provider" || k == "handlers" {
				continue
			}
			data[k] = v
		}
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, c); err != nil {
		return err
	}

	switch typed := c.(type) {
	case *component.LLM:
		if fields["provider"] != Sentinel {
			return nil
		}
		p, ok := providers[typed.Model]
		if !ok {
			p, ok = providers[provider.DefaultKey]
		}
		if !ok || p == nil {
			return fmt.Errorf("%w for model %q and no default provider found", ErrNoProvider, typed.Model)
		}
		typed.Provider = p
	case *component.ToolRegistry:
		if fields["handlers"] == Sentinel {
			typed.Handlers = toolHandlers
		}
	}
	return nil
}
