// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"github.com/AccelByte/extend-conditional-actions/pkg/service"
	"github.com/AccelByte/extend-conditional-actions/pkg/signal"
	signalBuiltin "github.com/AccelByte/extend-conditional-actions/pkg/signal/builtin"
	"github.com/sirupsen/logrus"
)

// InitSignalProcessor creates the signal processor and registers the
// game event mappers.
//
// ============================================================
// DEVELOPER: Register custom event mappers here.
// ============================================================
// A mapper turns one raw game log event into trigger emissions
// for the engine. Each event type has at most one mapper.
//
// Steps to add a new mapper:
// 1. Implement signal.Mapper in pkg/signal/builtin/
// 2. Register it in RegisterBuiltinMappers or below
// 3. If it emits a new trigger, add the trigger in pkg/ruleset/trigger.go
// ============================================================
func InitSignalProcessor(facts service.FactProvider) *signal.Processor {
	processor := signal.NewProcessor(facts)

	signalBuiltin.RegisterBuiltinMappers(processor.GetMapperRegistry())

	// DEVELOPER: Register custom mappers here
	// Example:
	// processor.GetMapperRegistry().Register(myMapper)

	logrus.Infof("initialized signal processor with %d event mappers",
		processor.GetMapperRegistry().Count())

	return processor
}
