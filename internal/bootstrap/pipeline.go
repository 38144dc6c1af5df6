// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"time"

	"github.com/AccelByte/extend-conditional-actions/pkg/action"
	"github.com/AccelByte/extend-conditional-actions/pkg/engine"
	"github.com/AccelByte/extend-conditional-actions/pkg/metrics"
	"github.com/AccelByte/extend-conditional-actions/pkg/pipeline"
	"github.com/AccelByte/extend-conditional-actions/pkg/ruleset"
	"github.com/AccelByte/extend-conditional-actions/pkg/signal"
	"github.com/AccelByte/extend-conditional-actions/pkg/tracker"
	"github.com/sirupsen/logrus"
)

// InitPipeline creates the rule engine and the pipeline manager on top of it.
//
// ============================================================
// DEVELOPER: Pipeline flow
// ============================================================
// The pipeline orchestrates the flow:
// Game events → Signals → Rules → Actions
//
// Rules are not configured here. They live in the rule set, which
// is loaded from the store (or the seed file) and replaced at runtime
// through the config API. The engine always reads the active set from
// the holder, so a new set applies to the next event.
// ============================================================
func InitPipeline(
	processor *signal.Processor,
	holder *ruleset.Holder,
	tr tracker.Tracker,
	executor action.Executor,
	executorTimeout time.Duration,
	m *metrics.Metrics,
) *pipeline.Manager {
	eng := engine.New(holder, tr, executor, engine.Config{
		ExecutorTimeout: executorTimeout,
		Metrics:         m,
	})
	logrus.Infof("initialized rule engine (executor timeout %s)", executorTimeout)

	manager := pipeline.NewManager(processor, eng)
	logrus.Infof("initialized pipeline manager")

	return manager
}
