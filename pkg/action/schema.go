// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package action

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"strings"
)

// ParamKind is the wire type of an action parameter.
type ParamKind string

const (
	KindString  ParamKind = "string"
	KindInteger ParamKind = "integer"
	KindURL     ParamKind = "url"
)

// Param describes one named parameter of an action type.
type Param struct {
	Name        string
	Kind        ParamKind
	Required    bool
	Description string
}

// Schema describes an action type: its parameters, whether it needs a
// target player, and how to build the typed variant.
type Schema struct {
	Type           Type
	Description    string
	Params         []Param
	PlayerTargeted bool

	build func(v values) Action
}

// Spec is the wire form of an action.
type Spec struct {
	ActionType Type                   `json:"action_type"`
	Parameters map[string]interface{} `json:"parameters"`
}

// ParamError reports a problem with one parameter.
type ParamError struct {
	Param   string
	Message string
}

func (e ParamError) Error() string {
	if e.Param == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Param, e.Message)
}

var schemas = []*Schema{
	{
		Type:           TypeMessagePlayer,
		Description:    "Send a private message to the player",
		Params:         []Param{{Name: "message", Kind: KindString, Required: true}},
		PlayerTargeted: true,
		build:          func(v values) Action { return MessagePlayer{Message: v.str("message")} },
	},
	{
		Type:        TypeMessageAllPlayers,
		Description: "Send a message to every player on the server",
		Params:      []Param{{Name: "message", Kind: KindString, Required: true}},
		build:       func(v values) Action { return MessageAllPlayers{Message: v.str("message")} },
	},
	{
		Type:           TypeKickPlayer,
		Description:    "Kick the player",
		Params:         []Param{{Name: "reason", Kind: KindString, Required: true}},
		PlayerTargeted: true,
		build:          func(v values) Action { return KickPlayer{Reason: v.str("reason")} },
	},
	{
		Type:           TypePunishPlayer,
		Description:    "Punish (kill) the player",
		Params:         []Param{{Name: "reason", Kind: KindString, Required: true}},
		PlayerTargeted: true,
		build:          func(v values) Action { return PunishPlayer{Reason: v.str("reason")} },
	},
	{
		Type:        TypeTempBanPlayer,
		Description: "Temporarily ban the player",
		Params: []Param{
			{Name: "reason", Kind: KindString, Required: true},
			{Name: "duration_hours", Kind: KindInteger, Required: true, Description: "Ban length in hours"},
		},
		PlayerTargeted: true,
		build: func(v values) Action {
			return TempBanPlayer{Reason: v.str("reason"), DurationHours: v.integer("duration_hours")}
		},
	},
	{
		Type:           TypePermaBanPlayer,
		Description:    "Permanently ban the player",
		Params:         []Param{{Name: "reason", Kind: KindString, Required: true}},
		PlayerTargeted: true,
		build:          func(v values) Action { return PermaBanPlayer{Reason: v.str("reason")} },
	},
	{
		Type:        TypeAddPlayerFlag,
		Description: "Add a flag to the player",
		Params: []Param{
			{Name: "flag", Kind: KindString, Required: true},
			{Name: "comment", Kind: KindString},
		},
		PlayerTargeted: true,
		build: func(v values) Action {
			return AddPlayerFlag{Flag: v.str("flag"), Comment: v.str("comment")}
		},
	},
	{
		Type:           TypeRemovePlayerFlag,
		Description:    "Remove a flag from the player",
		Params:         []Param{{Name: "flag", Kind: KindString, Required: true}},
		PlayerTargeted: true,
		build:          func(v values) Action { return RemovePlayerFlag{Flag: v.str("flag")} },
	},
	{
		Type:           TypeAddToWatchlist,
		Description:    "Add the player to the watchlist",
		Params:         []Param{{Name: "reason", Kind: KindString, Required: true}},
		PlayerTargeted: true,
		build:          func(v values) Action { return AddToWatchlist{Reason: v.str("reason")} },
	},
	{
		Type:        TypeBroadcastMessage,
		Description: "Set the server broadcast message",
		Params:      []Param{{Name: "message", Kind: KindString, Required: true}},
		build:       func(v values) Action { return BroadcastMessage{Message: v.str("message")} },
	},
	{
		Type:        TypeTemporaryBroadcast,
		Description: "Set the broadcast message and restore the previous one afterwards",
		Params: []Param{
			{Name: "message", Kind: KindString, Required: true},
			{Name: "duration_seconds", Kind: KindInteger, Required: true, Description: "How long the message stays up"},
		},
		build: func(v values) Action {
			return TemporaryBroadcast{Message: v.str("message"), DurationSeconds: v.integer("duration_seconds")}
		},
	},
	{
		Type:        TypeSendDiscordWebhook,
		Description: "Post a message to a Discord webhook",
		Params: []Param{
			{Name: "webhook_url", Kind: KindURL, Required: true},
			{Name: "message", Kind: KindString, Required: true},
		},
		build: func(v values) Action {
			return SendDiscordWebhook{WebhookURL: v.str("webhook_url"), Message: v.str("message")}
		},
	},
	{
		Type:           TypeSwitchPlayerTeam,
		Description:    "Move the player to the opposite team",
		PlayerTargeted: true,
		build:          func(values) Action { return SwitchPlayerTeam{} },
	},
}

var schemaByType = func() map[Type]*Schema {
	m := make(map[Type]*Schema, len(schemas))
	for _, s := range schemas {
		m[s.Type] = s
	}
	return m
}()

// Lookup returns the schema for an action type.
func Lookup(t Type) (*Schema, bool) {
	s, ok := schemaByType[t]
	return s, ok
}

// Schemas returns every schema in declaration order.
func Schemas() []*Schema {
	out := make([]*Schema, len(schemas))
	copy(out, schemas)
	return out
}

// Types returns every known action type in declaration order.
func Types() []Type {
	out := make([]Type, len(schemas))
	for i, s := range schemas {
		out[i] = s.Type
	}
	return out
}

// TargetsPlayer reports whether actions of type t need a player.
func TargetsPlayer(t Type) bool {
	s, ok := schemaByType[t]
	return ok && s.PlayerTargeted
}

// Decode checks a spec against its schema and builds the typed variant.
// Unknown parameters are ignored.
func Decode(spec Spec) (Action, []ParamError) {
	schema, ok := Lookup(spec.ActionType)
	if !ok {
		return nil, []ParamError{{Message: fmt.Sprintf("%v: %q", ErrUnknownActionType, spec.ActionType)}}
	}

	v := values{}
	var errs []ParamError
	for _, p := range schema.Params {
		raw, present := spec.Parameters[p.Name]
		if !present || raw == nil {
			if p.Required {
				errs = append(errs, ParamError{Param: p.Name, Message: "required parameter is missing"})
			}
			continue
		}
		parsed, err := coerce(p, raw)
		if err != nil {
			errs = append(errs, ParamError{Param: p.Name, Message: err.Error()})
			continue
		}
		v[p.Name] = parsed
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return schema.build(v), nil
}

// Encode returns the wire form of an action.
func Encode(a Action) Spec {
	return Spec{ActionType: a.Type(), Parameters: a.Parameters()}
}

func coerce(p Param, raw interface{}) (interface{}, error) {
	switch p.Kind {
	case KindInteger:
		n, err := toInteger(raw)
		if err != nil {
			return nil, err
		}
		if n <= 0 {
			return nil, fmt.Errorf("must be a positive integer, got %d", n)
		}
		return n, nil
	case KindURL:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("must be a string, got %T", raw)
		}
		u, err := url.Parse(s)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("must be an http(s) URL")
		}
		return s, nil
	default:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("must be a string, got %T", raw)
		}
		if p.Required && strings.TrimSpace(s) == "" {
			return nil, fmt.Errorf("must not be empty")
		}
		return s, nil
	}
}

func toInteger(raw interface{}) (int, error) {
	var f float64
	switch n := raw.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("must be an integer, got %q", n.String())
		}
		f = parsed
	default:
		return 0, fmt.Errorf("must be an integer, got %T", raw)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("must be an integer, got %v", f)
	}
	return int(f), nil
}

type values map[string]interface{}

func (v values) str(name string) string {
	s, _ := v[name].(string)
	return s
}

func (v values) integer(name string) int {
	n, _ := v[name].(int)
	return n
}
