// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package handler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AccelByte/extend-conditional-actions/pkg/common"
	"github.com/AccelByte/extend-conditional-actions/pkg/engine"
	"github.com/AccelByte/extend-conditional-actions/pkg/signal"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// GameEventServiceName is the fully qualified gRPC service name.
const GameEventServiceName = "conditionalactions.v1.GameEventService"

// EventProcessor runs a game event through the pipeline.
type EventProcessor interface {
	ProcessGameEvent(ctx context.Context, event *signal.GameEvent) ([]*engine.Result, error)
}

// GameEventServer is the server API of GameEventService.
type GameEventServer interface {
	OnMessage(ctx context.Context, msg *structpb.Struct) (*emptypb.Empty, error)
}

// GameEvents listens for game log events.
type GameEvents struct {
	processor EventProcessor
}

// NewGameEvents creates a new game event listener.
func NewGameEvents(processor EventProcessor) *GameEvents {
	return &GameEvents{processor: processor}
}

// OnMessage handles one game log event. The message carries the fields
// type, timestamp, player_id_1, player_name_1, player_id_2, player_name_2,
// message and team.
func (s *GameEvents) OnMessage(ctx context.Context, msg *structpb.Struct) (*emptypb.Empty, error) {
	scope := common.GetScopeFromContext(ctx, "GameEvents.OnMessage")
	defer scope.Finish()

	event, err := gameEventFromStruct(msg)
	if err != nil {
		scope.Log.Warnf("rejected game event: %v", err)
		return &emptypb.Empty{}, status.Error(codes.InvalidArgument, err.Error())
	}
	scope.TraceTag("event_type", event.Type)

	results, err := s.processor.ProcessGameEvent(scope.Ctx, event)
	if errors.Is(err, signal.ErrUnknownEventType) {
		// The log stream carries many event types no trigger is bound to.
		scope.Log.Debugf("ignoring game event: %v", err)
		return &emptypb.Empty{}, nil
	}
	if err != nil {
		scope.Log.Errorf("pipeline processing failed for %s event: %v", event.Type, err)
		scope.TraceError(err)
		return &emptypb.Empty{}, status.Errorf(codes.Internal, "pipeline processing failed: %v", err)
	}

	dispatched := 0
	for _, res := range results {
		dispatched += len(res.Dispatches)
	}
	scope.Log.Debugf("processed %s event, %d batch(es) dispatched", event.Type, dispatched)
	return &emptypb.Empty{}, nil
}

func gameEventFromStruct(msg *structpb.Struct) (*signal.GameEvent, error) {
	if msg == nil {
		return nil, fmt.Errorf("empty message")
	}
	fields := msg.GetFields()

	str := func(name string) string {
		return fields[name].GetStringValue()
	}

	event := &signal.GameEvent{
		Type:        str("type"),
		PlayerID1:   str("player_id_1"),
		PlayerName1: str("player_name_1"),
		PlayerID2:   str("player_id_2"),
		PlayerName2: str("player_name_2"),
		Message:     str("message"),
		Team:        str("team"),
	}
	if event.Type == "" {
		return nil, fmt.Errorf("missing event type")
	}

	ts, err := timestampOf(fields["timestamp"])
	if err != nil {
		return nil, err
	}
	event.Timestamp = ts
	return event, nil
}

// timestampOf accepts RFC 3339 strings or unix seconds. Absent means now.
func timestampOf(v *structpb.Value) (time.Time, error) {
	switch k := v.GetKind().(type) {
	case nil, *structpb.Value_NullValue:
		return time.Time{}, nil
	case *structpb.Value_NumberValue:
		sec := k.NumberValue
		return time.Unix(int64(sec), int64((sec-float64(int64(sec)))*float64(time.Second))).UTC(), nil
	case *structpb.Value_StringValue:
		ts, err := time.Parse(time.RFC3339, k.StringValue)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", k.StringValue, err)
		}
		return ts, nil
	default:
		return time.Time{}, fmt.Errorf("invalid timestamp type %T", k)
	}
}

// RegisterGameEventServer registers the game event service on s.
func RegisterGameEventServer(s grpc.ServiceRegistrar, srv GameEventServer) {
	s.RegisterService(&gameEventServiceDesc, srv)
	logrus.Infof("registered event listener: %s", GameEventServiceName)
}

func onMessageHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GameEventServer).OnMessage(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + GameEventServiceName + "/OnMessage",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(GameEventServer).OnMessage(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var gameEventServiceDesc = grpc.ServiceDesc{
	ServiceName: GameEventServiceName,
	HandlerType: (*GameEventServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "OnMessage",
			Handler:    onMessageHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "conditionalactions/v1/game_event.proto",
}
