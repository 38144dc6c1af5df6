// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/AccelByte/extend-conditional-actions/pkg/action"
	actionBuiltin "github.com/AccelByte/extend-conditional-actions/pkg/action/builtin"
	"github.com/AccelByte/extend-conditional-actions/pkg/service"
	"github.com/sirupsen/logrus"
)

// InitActionExecutor creates the action registry, binds a handler for every
// action type and wraps it in a command executor.
//
// ============================================================
// DEVELOPER: Register custom action handlers here.
// ============================================================
// Actions are the commands a rule sends when its conditions hold.
// Each action type is bound to exactly one handler.
//
// Steps to add a new action:
// 1. Add the action type and its parameter struct in pkg/action/
// 2. Add its schema entry so the config API can describe it
// 3. Implement the handler in pkg/action/builtin/handlers.go
// 4. Bind it in pkg/action/builtin/init.go
//
// IMPORTANT: Handlers talk to the game server and webhooks through
// service.Dependencies. Pass new external services through it.
// ============================================================
func InitActionExecutor(deps *service.Dependencies) (*action.CommandExecutor, *action.Registry, *actionBuiltin.BroadcastRestorer, error) {
	if deps == nil || deps.GameServer == nil {
		return nil, nil, nil, fmt.Errorf("action handlers require a game server")
	}

	broadcasts := actionBuiltin.NewBroadcastRestorer(deps.GameServer)
	builtinDeps := &actionBuiltin.Dependencies{
		GameServer: deps.GameServer,
		Webhook:    deps.Webhook,
		Broadcasts: broadcasts,
	}

	registry := action.NewRegistry()
	if err := actionBuiltin.RegisterActions(registry, builtinDeps); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to register actions: %w", err)
	}

	executor := action.NewCommandExecutor(registry)
	logrus.Infof("initialized action executor with %d handlers", registry.Count())

	return executor, registry, broadcasts, nil
}
