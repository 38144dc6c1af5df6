// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package handler exposes the pipeline over gRPC (game event ingress) and
// HTTP (rule set configuration commands).
package handler

const (
	CommandDescribe = "describe_conditional_actions_config"
	CommandGet      = "get_conditional_actions_config"
	CommandValidate = "validate_conditional_actions_config"
	CommandSet      = "set_conditional_actions_config"

	// maxConfigBodyBytes bounds a rule set document upload.
	maxConfigBodyBytes = 1 << 20
)

// Response is the envelope of every config command.
type Response struct {
	Result  interface{} `json:"result"`
	Command string      `json:"command"`
	Failed  bool        `json:"failed"`
	// Error is null, a message, or a list of field errors when the caller
	// asked for errors_as_json.
	Error interface{} `json:"error"`
}
