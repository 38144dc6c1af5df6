// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package ruleset

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolder_SwapIsVersioned(t *testing.T) {
	h := NewHolder(nil)
	first := h.Load()
	require.NotNil(t, first)
	assert.False(t, first.RuleSet.Enabled)

	next := &RuleSet{Enabled: true}
	prev := h.Swap(next)

	assert.Same(t, first, prev)
	assert.Same(t, next, h.Load().RuleSet)
	assert.Greater(t, h.Load().Version, first.Version)
	// a reader that took the old snapshot keeps seeing it
	assert.False(t, first.RuleSet.Enabled)
}

func TestHolder_ConcurrentReaders(t *testing.T) {
	h := NewHolder(Empty())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				snap := h.Load()
				if snap == nil || snap.RuleSet == nil {
					t.Error("Load() returned an incomplete snapshot")
					return
				}
			}
		}()
	}
	for i := 0; i < 50; i++ {
		h.Swap(&RuleSet{Enabled: i%2 == 0})
	}
	wg.Wait()
}

func TestDescribe(t *testing.T) {
	schema := Describe()

	defs := schema["definitions"].(map[string]interface{})
	variants := defs["action"].(map[string]interface{})["oneOf"].([]interface{})
	assert.Len(t, variants, 13)

	fields := schema["x-fields"].(map[string]interface{})
	kills := fields["kills"].(map[string]interface{})
	assert.Equal(t, "number", kills["type"])
	assert.Contains(t, kills["operators"], "greater_than")

	rule := defs["rule"].(map[string]interface{})["properties"].(map[string]interface{})
	trig := rule["trigger_event"].(map[string]interface{})["enum"].([]string)
	assert.Len(t, trig, len(Triggers()))
}
