// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package pipeline

import (
	"context"
	"testing"

	"github.com/AccelByte/extend-conditional-actions/pkg/action"
	actionBuiltin "github.com/AccelByte/extend-conditional-actions/pkg/action/builtin"
	"github.com/AccelByte/extend-conditional-actions/pkg/engine"
	"github.com/AccelByte/extend-conditional-actions/pkg/metrics"
	"github.com/AccelByte/extend-conditional-actions/pkg/ruleset"
	"github.com/AccelByte/extend-conditional-actions/pkg/service"
	"github.com/AccelByte/extend-conditional-actions/pkg/service/mock"
	"github.com/AccelByte/extend-conditional-actions/pkg/signal"
	signalBuiltin "github.com/AccelByte/extend-conditional-actions/pkg/signal/builtin"
	"github.com/AccelByte/extend-conditional-actions/pkg/tracker"
	"github.com/stretchr/testify/require"
)

// fixture wires the real pipeline against mock game server and facts.
type fixture struct {
	manager      *Manager
	configurator *Configurator
	holder       *ruleset.Holder
	store        *ruleset.MemoryStore
	tracker      *tracker.MemoryTracker
	game         *mock.GameServer
	facts        *mock.FactProvider
	actions      *action.Registry
	processor    *signal.Processor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		holder:  ruleset.NewHolder(nil),
		store:   ruleset.NewMemoryStore(),
		tracker: tracker.NewMemoryTracker(tracker.MemoryTrackerConfig{}),
		game:    mock.NewGameServer(),
		facts: mock.NewFactProvider().
			WithPlayer(&service.PlayerInfo{PlayerID: "p1", Name: "Alice", Kills: 12, Deaths: 2, Team: "allies"}).
			WithPlayer(&service.PlayerInfo{PlayerID: "p2", Name: "Bob", Kills: 1, Deaths: 9, Team: "axis"}).
			WithGameState(&service.GameState{NumAlliedPlayers: 1, NumAxisPlayers: 1, CurrentMap: "stmariedumont_warfare"}),
		actions: action.NewRegistry(),
	}

	require.NoError(t, actionBuiltin.RegisterActions(f.actions, &actionBuiltin.Dependencies{
		GameServer: f.game,
		Webhook:    &mock.Webhook{},
	}))

	f.processor = signal.NewProcessor(f.facts)
	signalBuiltin.RegisterBuiltinMappers(f.processor.GetMapperRegistry())

	m := metrics.New()
	eng := engine.New(f.holder, f.tracker, action.NewCommandExecutor(f.actions), engine.Config{Metrics: m})
	f.manager = NewManager(f.processor, eng)
	f.configurator = NewConfigurator(f.holder, f.store, f.tracker, m)
	return f
}

func (f *fixture) set(t *testing.T, doc string) {
	t.Helper()
	require.NoError(t, f.configurator.Set(context.Background(), []byte(doc)))
}
