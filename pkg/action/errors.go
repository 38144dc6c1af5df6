// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package action

import "errors"

var (
	// ErrUnknownActionType indicates an action_type with no schema.
	ErrUnknownActionType = errors.New("unknown action type")

	// ErrHandlerNotFound indicates that no handler is registered for an action type.
	ErrHandlerNotFound = errors.New("no handler registered for action type")

	// ErrMissingPlayerContext indicates a player targeted action in a batch without a player.
	ErrMissingPlayerContext = errors.New("missing player context")

	// ErrBatchAborted indicates the batch context ended before the action ran.
	ErrBatchAborted = errors.New("batch aborted before action ran")
)
