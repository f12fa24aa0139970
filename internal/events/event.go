// Package events defines the domain events exchanged between modules.
// Infrastructure (Bus, Handler) lives in platform/events.
package events

import (
	"numbering_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// Registry change sources.
const (
	SourceAdmin  = "admin"
	SourceStore  = "store"
	SourceRemote = "remote"
)

// RegistryChanged is published after the territory registry received a bulk
// replace or append.
type RegistryChanged struct {
	BaseEvent
	Operation string `json:"operation"` // "replace" or "append"
	Version   int64  `json:"version"`
	Size      int    `json:"size"`
	Source    string `json:"source"`
}

func (e RegistryChanged) EventName() string { return "numbering.registry.changed" }
