// Copyright © 2025 OpenCHAMI a Series of LF Projects, LLC
//
// SPDX-License-Identifier: MIT

// Package audit publishes one CloudEvent per sub-patch a PatchSorter emits.
//
// This is purely an observability side-channel (spec.md §5 / §9): it never
// participates in validation or the search, and a publish failure never
// aborts or alters a sort. It is adapted from the teacher's pkg/events
// (EventConfig, CloudEvents event construction, EventBus contract), trimmed
// to the synchronous, single-threaded shape spec.md §5 mandates for the
// sorter itself — Bus.Publish here runs on the caller's goroutine with no
// worker pool or queue, unlike the teacher's InMemoryEventBus.
package audit

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"

	"github.com/alexlovelltroy/patchsort/pkg/jsonpatch"
)

// Config controls whether and how sub-patch events are published.
type Config struct {
	// Enabled gates publishing entirely. Defaults to off, matching the
	// teacher's EventConfig.Enabled default.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// EventTypePrefix namespaces the emitted CloudEvent type, e.g.
	// "io.patchsort" generates "io.patchsort.change.applied".
	EventTypePrefix string `json:"eventTypePrefix" yaml:"eventTypePrefix"`

	// Source is the CloudEvents source attribute for every event this
	// package emits.
	Source string `json:"source" yaml:"source"`
}

// DefaultConfig returns sensible defaults, disabled until explicitly
// turned on by the caller.
func DefaultConfig() Config {
	return Config{
		Enabled:         false,
		EventTypePrefix: "io.patchsort",
		Source:          "patchsort",
	}
}

// ChangeEvent is the payload of a published sub-patch event.
type ChangeEvent struct {
	// SortID groups every ChangeEvent emitted by one PatchSorter.Sort
	// invocation.
	SortID string `json:"sortId"`

	// Index is this change's position in the emitted sequence.
	Index int `json:"index"`

	// Patch is the single-operation JSON Patch this change carries.
	Patch jsonpatch.Patch `json:"patch"`

	// EmittedAt is when the sorter produced this change.
	EmittedAt time.Time `json:"emittedAt"`
}

// Bus is the publish surface audit depends on. EventBus in the teacher's
// pkg/events carries Subscribe/Unsubscribe too; audit only ever needs to
// publish, so the contract here is narrowed to that.
type Bus interface {
	Publish(ctx context.Context, event cloudevents.Event) error
}

// Logger is the minimal contract audit needs to report a publish failure
// without aborting the sort that triggered it.
type Logger interface {
	Warnf(format string, args ...interface{})
}

// Trail publishes one CloudEvent per sub-patch via Bus. A nil Bus, or
// Config.Enabled == false, makes Publish a no-op.
type Trail struct {
	Config Config
	Bus    Bus
	Logger Logger
}

// NewTrail builds a Trail. bus may be nil to disable publishing regardless
// of cfg.Enabled.
func NewTrail(cfg Config, bus Bus, logger Logger) Trail {
	return Trail{Config: cfg, Bus: bus, Logger: logger}
}

// Publish emits one CloudEvent for each change in sequence, tagged with
// sortID and its index. Publish failures are logged and swallowed — the
// audit trail is best-effort and must never change a sort's outcome.
func (t Trail) Publish(ctx context.Context, sortID string, changes []jsonpatch.Patch) {
	if !t.Config.Enabled || t.Bus == nil {
		return
	}
	for i, p := range changes {
		payload := ChangeEvent{SortID: sortID, Index: i, Patch: p, EmittedAt: time.Now()}
		event, err := t.newEvent(payload)
		if err != nil {
			t.warnf("audit: building event for change %d: %v", i, err)
			continue
		}
		if err := t.Bus.Publish(ctx, *event); err != nil {
			t.warnf("audit: publishing change %d: %v", i, err)
		}
	}
}

func (t Trail) newEvent(payload ChangeEvent) (*cloudevents.Event, error) {
	event := cloudevents.NewEvent()
	event.SetID(generateEventID())
	event.SetType(fmt.Sprintf("%s.change.applied", t.Config.EventTypePrefix))
	event.SetSource(t.Config.Source)
	event.SetTime(time.Now())
	event.SetExtension("sortid", payload.SortID)
	event.SetExtension("index", payload.Index)
	if err := event.SetData(cloudevents.ApplicationJSON, payload); err != nil {
		return nil, fmt.Errorf("failed to set event data: %w", err)
	}
	return &event, nil
}

func (t Trail) warnf(format string, args ...interface{}) {
	if t.Logger != nil {
		t.Logger.Warnf(format, args...)
	}
}

func generateEventID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return "evt-" + hex.EncodeToString(b)[:12]
}
