// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/AccelByte/extend-conditional-actions/pkg/service"
)

// FactProvider is a mock implementation of service.FactProvider for testing.
type FactProvider struct {
	Players  map[string]*service.PlayerInfo
	State    *service.GameState
	Profiles map[string]*service.PlayerProfile

	// DefaultError is returned by every call when set.
	DefaultError error
	// ProfileError is returned by GetPlayerProfile when set.
	ProfileError error

	mu           sync.Mutex
	profileCalls []string
}

// NewFactProvider creates a new mock FactProvider with an empty server.
func NewFactProvider() *FactProvider {
	return &FactProvider{
		Players:  make(map[string]*service.PlayerInfo),
		State:    &service.GameState{},
		Profiles: make(map[string]*service.PlayerProfile),
	}
}

// WithPlayer adds an online player.
func (m *FactProvider) WithPlayer(p *service.PlayerInfo) *FactProvider {
	m.Players[p.PlayerID] = p
	return m
}

// WithGameState sets the match state.
func (m *FactProvider) WithGameState(gs *service.GameState) *FactProvider {
	m.State = gs
	return m
}

// WithProfile adds a player profile.
func (m *FactProvider) WithProfile(p *service.PlayerProfile) *FactProvider {
	m.Profiles[p.PlayerID] = p
	return m
}

// ProfileCalls returns the player ids whose profile was requested.
func (m *FactProvider) ProfileCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.profileCalls))
	copy(out, m.profileCalls)
	return out
}

func (m *FactProvider) GetDetailedPlayers(ctx context.Context) (map[string]*service.PlayerInfo, error) {
	if m.DefaultError != nil {
		return nil, m.DefaultError
	}
	out := make(map[string]*service.PlayerInfo, len(m.Players))
	for k, v := range m.Players {
		out[k] = v
	}
	return out, nil
}

func (m *FactProvider) GetGameState(ctx context.Context) (*service.GameState, error) {
	if m.DefaultError != nil {
		return nil, m.DefaultError
	}
	return m.State, nil
}

func (m *FactProvider) GetPlayerProfile(ctx context.Context, playerID string) (*service.PlayerProfile, error) {
	m.mu.Lock()
	m.profileCalls = append(m.profileCalls, playerID)
	m.mu.Unlock()

	if m.DefaultError != nil {
		return nil, m.DefaultError
	}
	if m.ProfileError != nil {
		return nil, m.ProfileError
	}
	p, ok := m.Profiles[playerID]
	if !ok {
		return nil, fmt.Errorf("profile not found: %s", playerID)
	}
	return p, nil
}
