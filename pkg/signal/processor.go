// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package signal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AccelByte/extend-conditional-actions/pkg/condition"
	"github.com/AccelByte/extend-conditional-actions/pkg/ruleset"
	"github.com/AccelByte/extend-conditional-actions/pkg/service"
	"github.com/sirupsen/logrus"
)

// ErrUnknownEventType is returned for raw events with no registered mapper.
var ErrUnknownEventType = errors.New("unknown game event type")

// Processor converts raw events into signals with enriched fact snapshots.
type Processor struct {
	facts          service.FactProvider
	mapperRegistry *MapperRegistry
	clock          func() time.Time
}

// NewProcessor creates a new signal processor.
func NewProcessor(facts service.FactProvider) *Processor {
	return &Processor{
		facts:          facts,
		mapperRegistry: NewMapperRegistry(),
		clock:          time.Now,
	}
}

// GetMapperRegistry returns the mapper registry for this processor.
// This allows registering custom mappers.
func (p *Processor) GetMapperRegistry() *MapperRegistry {
	return p.mapperRegistry
}

// Process maps a raw event and builds one signal per emission.
func (p *Processor) Process(ctx context.Context, event *GameEvent) ([]Signal, error) {
	if event == nil {
		return nil, fmt.Errorf("game event is nil")
	}

	mapper := p.mapperRegistry.Get(event.Type)
	if mapper == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEventType, event.Type)
	}

	emissions := mapper.Map(event)
	if len(emissions) == 0 {
		logrus.Debugf("game event %s produced no triggers", event.Type)
		return nil, nil
	}

	ts := event.Timestamp
	if ts.IsZero() {
		ts = p.clock()
	}

	// Facts are fetched once per raw event and shared by its emissions.
	live := p.loadLive(ctx)

	signals := make([]Signal, 0, len(emissions))
	for _, em := range emissions {
		signals = append(signals, Signal{
			Trigger:   em.Trigger,
			Snapshot:  p.snapshot(ctx, live, em),
			Timestamp: ts,
		})
	}

	logrus.Debugf("processed game event %s into %d signal(s)", event.Type, len(signals))
	return signals, nil
}

// ForOnlinePlayers builds one signal per online player for trigger.
func (p *Processor) ForOnlinePlayers(ctx context.Context, trigger ruleset.Trigger) ([]Signal, error) {
	live := p.loadLive(ctx)
	if live.playersErr != nil {
		return nil, fmt.Errorf("failed to list online players: %w", live.playersErr)
	}

	now := p.clock()
	signals := make([]Signal, 0, len(live.players))
	for id, info := range live.players {
		em := Emission{Trigger: trigger, PlayerID: id, PlayerName: info.Name}
		signals = append(signals, Signal{Trigger: trigger, Snapshot: p.snapshot(ctx, live, em), Timestamp: now})
	}
	return signals, nil
}

// liveState is the server state read once per raw event.
type liveState struct {
	players    map[string]*service.PlayerInfo
	playersErr error
	game       *service.GameState
}

func (p *Processor) loadLive(ctx context.Context) *liveState {
	live := &liveState{}

	live.players, live.playersErr = p.facts.GetDetailedPlayers(ctx)
	if live.playersErr != nil {
		logrus.Warnf("failed to get detailed players, player facts unavailable: %v", live.playersErr)
	}

	game, err := p.facts.GetGameState(ctx)
	if err != nil {
		logrus.Warnf("failed to get game state, match facts unavailable: %v", err)
	} else {
		live.game = game
	}

	return live
}

// snapshot assembles the facts for one emission. Facts whose source could
// not be read are left out, so conditions on them fail for that rule only.
func (p *Processor) snapshot(ctx context.Context, live *liveState, em Emission) *condition.Snapshot {
	var info *service.PlayerInfo
	if em.PlayerID != "" {
		info = live.players[em.PlayerID]
	}

	name := em.PlayerName
	if name == "" && info != nil {
		name = info.Name
	}
	snap := condition.NewSnapshot(em.PlayerID, name)

	if live.game != nil {
		snap.SetNumber(condition.FieldServerPlayerCount, float64(live.game.PlayerCount()))
		snap.Set(condition.FieldMapName, condition.StringValue(string(live.game.CurrentMap)))
		snap.SetNumber(condition.FieldMatchTimeRemaining, float64(live.game.TimeRemainingSeconds()))
	}

	if info != nil {
		setPlayerFacts(snap, info)
		if live.game != nil {
			if n, ok := live.game.TeamPlayerCount(info.Team); ok {
				snap.SetNumber(condition.FieldTeamPlayerCount, float64(n))
			}
		}
	}

	if em.PlayerID != "" {
		profile, err := p.facts.GetPlayerProfile(ctx, em.PlayerID)
		if err != nil {
			logrus.Warnf("failed to get player profile for %s: %v", em.PlayerID, err)
		} else if profile != nil {
			snap.SetNumber(condition.FieldTotalPlaytimeSeconds, float64(profile.TotalPlaytimeSeconds))
			snap.SetNumber(condition.FieldSessionsCount, float64(profile.SessionsCount))
			snap.SetNumber(condition.FieldPenaltyCount, float64(profile.PenaltyCount))
		}
	}

	for field, v := range em.Facts {
		snap.Set(field, v)
	}
	return snap
}

func setPlayerFacts(snap *condition.Snapshot, info *service.PlayerInfo) {
	snap.SetNumber(condition.FieldPlayerLevel, float64(info.Level))
	snap.Set(condition.FieldIsVIP, condition.BoolValue(info.IsVIP))
	snap.Set(condition.FieldPlayerTeam, condition.StringValue(info.Team))
	snap.SetNumber(condition.FieldKills, float64(info.Kills))
	snap.SetNumber(condition.FieldDeaths, float64(info.Deaths))
	snap.SetNumber(condition.FieldKillDeathRatio, info.KillDeathRatio())
	snap.SetNumber(condition.FieldTeamkills, float64(info.Teamkills))
	snap.SetNumber(condition.FieldCombat, float64(info.Combat))
	snap.SetNumber(condition.FieldOffense, float64(info.Offense))
	snap.SetNumber(condition.FieldDefense, float64(info.Defense))
	snap.SetNumber(condition.FieldSupport, float64(info.Support))
	snap.SetNumber(condition.FieldKillsPerMinute, info.KillsPerMinute)
	snap.SetNumber(condition.FieldDeathsPerMinute, info.DeathsPerMinute)
	snap.SetNumber(condition.FieldKillStreak, float64(info.KillsStreak))
	snap.SetNumber(condition.FieldTimeSeconds, float64(info.MapPlaytimeSeconds))
}
