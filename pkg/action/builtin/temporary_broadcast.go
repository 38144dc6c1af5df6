// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"context"
	"sync"
	"time"

	"github.com/AccelByte/extend-conditional-actions/pkg/service"
	"github.com/sirupsen/logrus"
)

const restoreTimeout = 10 * time.Second

// BroadcastRestorer shows a broadcast for a limited time and then puts the
// previous message back. Overlapping calls extend the window; the message
// captured before the first call is the one restored.
type BroadcastRestorer struct {
	gs service.GameServer

	mu       sync.Mutex
	timer    *time.Timer
	gen      uint64
	previous string
	active   bool
}

// NewBroadcastRestorer creates a restorer over a game server.
func NewBroadcastRestorer(gs service.GameServer) *BroadcastRestorer {
	return &BroadcastRestorer{gs: gs}
}

// Show sets message now and schedules the restore after d.
func (r *BroadcastRestorer) Show(ctx context.Context, message string, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.active {
		prev, err := r.gs.GetBroadcast(ctx)
		if err != nil {
			logrus.Warnf("could not read current broadcast, will restore an empty one: %v", err)
			prev = ""
		}
		r.previous = prev
	}

	if err := r.gs.SetBroadcast(ctx, message); err != nil {
		return err
	}

	if r.timer != nil {
		r.timer.Stop()
	}
	r.active = true
	r.gen++
	gen := r.gen
	r.timer = time.AfterFunc(d, func() { r.restore(gen) })
	return nil
}

// Active reports whether a temporary broadcast is showing.
func (r *BroadcastRestorer) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Stop cancels any pending restore and restores immediately.
func (r *BroadcastRestorer) Stop() {
	r.mu.Lock()
	if r.timer != nil {
		r.timer.Stop()
	}
	gen := r.gen
	r.mu.Unlock()
	r.restore(gen)
}

// restore only acts for the latest Show; superseded timers are ignored.
func (r *BroadcastRestorer) restore(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.active || gen != r.gen {
		return
	}
	r.active = false
	r.timer = nil

	ctx, cancel := context.WithTimeout(context.Background(), restoreTimeout)
	defer cancel()
	if err := r.gs.SetBroadcast(ctx, r.previous); err != nil {
		logrus.Errorf("failed to restore broadcast: %v", err)
		return
	}
	logrus.Infof("restored broadcast: %s", r.previous)
}
