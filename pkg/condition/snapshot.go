// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package condition

// Snapshot holds the facts observed when a trigger event fired.
// It is populated once by its producer and only read afterwards.
type Snapshot struct {
	PlayerID   string
	PlayerName string

	facts map[Field]Value
}

// NewSnapshot creates a snapshot for a player. Empty ids produce a
// server scoped snapshot.
func NewSnapshot(playerID, playerName string) *Snapshot {
	s := &Snapshot{
		PlayerID:   playerID,
		PlayerName: playerName,
		facts:      make(map[Field]Value),
	}
	if playerID != "" {
		s.facts[FieldPlayerID] = StringValue(playerID)
	}
	if playerName != "" {
		s.facts[FieldPlayerName] = StringValue(playerName)
	}
	return s
}

// Set records a fact and returns the snapshot for chaining.
func (s *Snapshot) Set(f Field, v Value) *Snapshot {
	s.facts[f] = v
	return s
}

// SetNumber is shorthand for Set(f, NumberValue(n)).
func (s *Snapshot) SetNumber(f Field, n float64) *Snapshot {
	return s.Set(f, NumberValue(n))
}

// Lookup returns the fact for a field.
func (s *Snapshot) Lookup(f Field) (Value, bool) {
	if s == nil {
		return Value{}, false
	}
	v, ok := s.facts[f]
	return v, ok
}

// HasPlayer reports whether the snapshot is bound to a player.
func (s *Snapshot) HasPlayer() bool {
	return s != nil && s.PlayerID != ""
}

// Facts returns the recorded facts as plain scalars keyed by field name,
// suitable for structured log fields.
func (s *Snapshot) Facts() map[string]interface{} {
	if s == nil {
		return map[string]interface{}{}
	}
	out := make(map[string]interface{}, len(s.facts))
	for k, v := range s.facts {
		out[string(k)] = v.Interface()
	}
	return out
}
