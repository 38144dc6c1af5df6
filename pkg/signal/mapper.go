// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package signal

import (
	"sync"
)

// Mapper maps one raw event type to trigger emissions.
// This allows extending the processor with custom log types.
type Mapper interface {
	// EventType returns the raw event type this mapper handles (e.g., "KILL").
	EventType() string

	// Map converts the event into zero or more emissions.
	Map(event *GameEvent) []Emission
}

// MapperRegistry manages registered mappers.
// It provides thread-safe registration and lookup of mappers.
type MapperRegistry struct {
	mappers map[string]Mapper
	mu      sync.RWMutex
}

// NewMapperRegistry creates a new empty mapper registry.
func NewMapperRegistry() *MapperRegistry {
	return &MapperRegistry{
		mappers: make(map[string]Mapper),
	}
}

// Register adds a mapper to the registry.
// If a mapper for the same event type already exists, it will be replaced.
func (r *MapperRegistry) Register(mapper Mapper) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mappers[mapper.EventType()] = mapper
}

// Get returns the mapper for an event type, or nil.
func (r *MapperRegistry) Get(eventType string) Mapper {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mappers[eventType]
}

// Count returns the number of registered mappers.
func (r *MapperRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.mappers)
}
