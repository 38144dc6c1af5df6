// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package condition evaluates typed comparisons against a fact snapshot and
// combines them with logical operators.
package condition

import "sort"

// ValueType is the declared type of a fact field.
type ValueType string

const (
	TypeString ValueType = "string"
	TypeNumber ValueType = "number"
	TypeBool   ValueType = "boolean"
)

// Field names a fact that conditions can test.
type Field string

const (
	FieldAlwaysTrue           Field = "always_true"
	FieldPlayerName           Field = "player_name"
	FieldPlayerID             Field = "player_id"
	FieldPlayerLevel          Field = "player_level"
	FieldPlayerTeam           Field = "player_team"
	FieldIsVIP                Field = "is_vip"
	FieldKills                Field = "kills"
	FieldDeaths               Field = "deaths"
	FieldKillDeathRatio       Field = "kill_death_ratio"
	FieldTeamkills            Field = "teamkills"
	FieldCombat               Field = "combat"
	FieldOffense              Field = "offense"
	FieldDefense              Field = "defense"
	FieldSupport              Field = "support"
	FieldKillsPerMinute       Field = "kills_per_minute"
	FieldDeathsPerMinute      Field = "deaths_per_minute"
	FieldKillStreak           Field = "kills_streak"
	FieldTimeSeconds          Field = "time_seconds"
	FieldTotalPlaytimeSeconds Field = "total_playtime_seconds"
	FieldSessionsCount        Field = "sessions_count"
	FieldPenaltyCount         Field = "penalty_count"
	FieldServerPlayerCount    Field = "server_player_count"
	FieldTeamPlayerCount      Field = "team_player_count"
	FieldMapName              Field = "map_name"
	FieldMatchTimeRemaining   Field = "match_time_remaining"
	FieldChatMessage          Field = "chat_message"
)

var fieldTypes = map[Field]ValueType{
	FieldAlwaysTrue:           TypeBool,
	FieldPlayerName:           TypeString,
	FieldPlayerID:             TypeString,
	FieldPlayerLevel:          TypeNumber,
	FieldPlayerTeam:           TypeString,
	FieldIsVIP:                TypeBool,
	FieldKills:                TypeNumber,
	FieldDeaths:               TypeNumber,
	FieldKillDeathRatio:       TypeNumber,
	FieldTeamkills:            TypeNumber,
	FieldCombat:               TypeNumber,
	FieldOffense:              TypeNumber,
	FieldDefense:              TypeNumber,
	FieldSupport:              TypeNumber,
	FieldKillsPerMinute:       TypeNumber,
	FieldDeathsPerMinute:      TypeNumber,
	FieldKillStreak:           TypeNumber,
	FieldTimeSeconds:          TypeNumber,
	FieldTotalPlaytimeSeconds: TypeNumber,
	FieldSessionsCount:        TypeNumber,
	FieldPenaltyCount:         TypeNumber,
	FieldServerPlayerCount:    TypeNumber,
	FieldTeamPlayerCount:      TypeNumber,
	FieldMapName:              TypeString,
	FieldMatchTimeRemaining:   TypeNumber,
	FieldChatMessage:          TypeString,
}

// TypeOf returns the declared type of a field.
func TypeOf(f Field) (ValueType, bool) {
	t, ok := fieldTypes[f]
	return t, ok
}

// Fields returns every known field in lexical order.
func Fields() []Field {
	fields := make([]Field, 0, len(fieldTypes))
	for f := range fieldTypes {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}
