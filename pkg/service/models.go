// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"encoding/json"
	"strconv"
	"strings"
)

// PlayerInfo is the live state of an online player.
type PlayerInfo struct {
	PlayerID           string  `json:"player_id"`
	Name               string  `json:"name"`
	Level              int     `json:"level"`
	IsVIP              bool    `json:"is_vip"`
	Team               string  `json:"team"`
	Kills              int     `json:"kills"`
	Deaths             int     `json:"deaths"`
	Teamkills          int     `json:"teamkills"`
	Combat             int     `json:"combat"`
	Offense            int     `json:"offense"`
	Defense            int     `json:"defense"`
	Support            int     `json:"support"`
	KillsPerMinute     float64 `json:"kills_per_minute"`
	DeathsPerMinute    float64 `json:"deaths_per_minute"`
	KillsStreak        int     `json:"kills_streak"`
	MapPlaytimeSeconds int     `json:"map_playtime_seconds"`
}

// KillDeathRatio returns kills per death, or kills when there are no deaths.
func (p *PlayerInfo) KillDeathRatio() float64 {
	if p.Deaths > 0 {
		return float64(p.Kills) / float64(p.Deaths)
	}
	return float64(p.Kills)
}

// GameState is the current match state.
type GameState struct {
	NumAlliedPlayers int     `json:"num_allied_players"`
	NumAxisPlayers   int     `json:"num_axis_players"`
	CurrentMap       MapName `json:"current_map"`
	RawTimeRemaining string  `json:"raw_time_remaining"`
}

// PlayerCount returns the number of players on both teams.
func (g *GameState) PlayerCount() int {
	return g.NumAlliedPlayers + g.NumAxisPlayers
}

// TeamPlayerCount returns the player count of a team, false for unknown teams.
func (g *GameState) TeamPlayerCount(team string) (int, bool) {
	switch strings.ToLower(team) {
	case "allies":
		return g.NumAlliedPlayers, true
	case "axis":
		return g.NumAxisPlayers, true
	}
	return 0, false
}

// TimeRemainingSeconds parses RawTimeRemaining (H:MM:SS). Malformed values yield 0.
func (g *GameState) TimeRemainingSeconds() int {
	parts := strings.Split(g.RawTimeRemaining, ":")
	if len(parts) != 3 {
		return 0
	}
	total := 0
	for i, mult := range []int{3600, 60, 1} {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return 0
		}
		total += n * mult
	}
	return total
}

// MapName accepts either a plain string or a map object with an id.
type MapName string

func (m *MapName) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*m = MapName(s)
		return nil
	}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*m = MapName(obj.ID)
	return nil
}

// PlayerProfile is the long term history of a player.
type PlayerProfile struct {
	PlayerID             string `json:"player_id"`
	TotalPlaytimeSeconds int    `json:"total_playtime_seconds"`
	SessionsCount        int    `json:"sessions_count"`
	PenaltyCount         int    `json:"penalty_count"`
}
