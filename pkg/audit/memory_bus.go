// Copyright © 2025 OpenCHAMI a Series of LF Projects, LLC
//
// SPDX-License-Identifier: MIT

package audit

import (
	"context"
	"strings"
	"sync"

	cloudevents "github.com/cloudevents/sdk-go/v2"
)

// Handler processes one published event.
type Handler func(ctx context.Context, event cloudevents.Event) error

// SyncBus is an in-memory Bus that dispatches to subscribers synchronously
// on the publisher's goroutine — no queue, no worker pool, no dropped
// events. This is the shape spec.md §5 requires of everything inside a
// sort call; the teacher's InMemoryEventBus instead queues onto worker
// goroutines, which would reintroduce the suspension points this module's
// concurrency model rules out.
type SyncBus struct {
	mu          sync.Mutex
	subscribers map[string]Handler
}

// NewSyncBus returns an empty, ready-to-use SyncBus.
func NewSyncBus() *SyncBus {
	return &SyncBus{subscribers: make(map[string]Handler)}
}

// Publish calls every subscriber whose pattern matches event.Type(),
// stopping at the first handler error.
func (b *SyncBus) Publish(ctx context.Context, event cloudevents.Event) error {
	b.mu.Lock()
	handlers := make(map[string]Handler, len(b.subscribers))
	for id, h := range b.subscribers {
		handlers[id] = h
	}
	b.mu.Unlock()

	for pattern, h := range handlers {
		if !matchesPattern(event.Type(), pattern) {
			continue
		}
		if err := h(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

// Subscribe registers handler for every future Publish whose event type
// matches pattern ("*" for one segment, "**" for the remainder).
func (b *SyncBus) Subscribe(pattern string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[pattern] = handler
}

// matchesPattern mirrors the teacher's dot-segment wildcard matching
// (pkg/events.matchesPattern): "*" matches one segment, "**" matches the
// remaining segments.
func matchesPattern(eventType, pattern string) bool {
	if eventType == pattern {
		return true
	}
	eventParts := strings.Split(eventType, ".")
	patternParts := strings.Split(pattern, ".")

	for i, p := range patternParts {
		if p == "**" {
			return true
		}
		if i >= len(eventParts) {
			return false
		}
		if p == "*" {
			continue
		}
		if p != eventParts[i] {
			return false
		}
	}
	return len(eventParts) == len(patternParts)
}
