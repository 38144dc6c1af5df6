// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package ruleset

import (
	"sync/atomic"
	"time"
)

// Snapshot is an immutable, versioned view of the active rule set.
type Snapshot struct {
	RuleSet   *RuleSet
	Version   int64
	UpdatedAt time.Time
}

// Holder publishes the active rule set. Readers take one Snapshot per
// event and keep using it even if a newer set is swapped in meanwhile.
type Holder struct {
	current atomic.Pointer[Snapshot]
	version atomic.Int64
}

// NewHolder creates a holder serving rs, or an empty disabled set.
func NewHolder(rs *RuleSet) *Holder {
	h := &Holder{}
	if rs == nil {
		rs = Empty()
	}
	h.Swap(rs)
	return h
}

// Load returns the current snapshot.
func (h *Holder) Load() *Snapshot {
	return h.current.Load()
}

// Swap activates rs and returns the snapshot it replaced.
// The caller must not modify rs afterwards.
func (h *Holder) Swap(rs *RuleSet) *Snapshot {
	next := &Snapshot{
		RuleSet:   rs,
		Version:   h.version.Add(1),
		UpdatedAt: time.Now(),
	}
	return h.current.Swap(next)
}
