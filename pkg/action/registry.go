// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package action

import (
	"context"
	"fmt"
	"sync"
)

// Handler performs one action on behalf of a batch.
type Handler interface {
	Handle(ctx context.Context, batch *Batch, a Action) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, batch *Batch, a Action) error

func (f HandlerFunc) Handle(ctx context.Context, batch *Batch, a Action) error {
	return f(ctx, batch, a)
}

// Registry maps action types to their handlers.
// It provides thread-safe registration and lookup.
type Registry struct {
	handlers map[Type]Handler
	mu       sync.RWMutex
}

// NewRegistry creates a new empty handler registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[Type]Handler),
	}
}

// Register binds a handler to an action type.
// Returns an error if the type is unknown or already bound.
func (r *Registry) Register(t Type, h Handler) error {
	if _, ok := Lookup(t); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownActionType, t)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[t]; exists {
		return fmt.Errorf("handler for %s already registered", t)
	}

	r.handlers[t] = h
	return nil
}

// Get returns the handler for an action type, or nil.
func (r *Registry) Get(t Type) Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.handlers[t]
}

// Missing lists known action types without a handler.
func (r *Registry) Missing() []Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var missing []Type
	for _, t := range Types() {
		if _, ok := r.handlers[t]; !ok {
			missing = append(missing, t)
		}
	}
	return missing
}

// Count returns the number of registered handlers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}
