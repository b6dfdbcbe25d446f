package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Husain8570/realtimeCanvas/domain"
)

var (
	errUnknownEvent = errors.New("unknown event type")
	errInvalidTool  = errors.New("invalid draw tool")
)

// event is the closed set of inbound events a connection can produce.
type event interface {
	inbound()
}

type joinEvent struct{ req domain.JoinRoom }
type drawEvent struct{ action domain.DrawAction }
type undoEvent struct{}
type redoEvent struct{}
type clearEvent struct{}
type cursorEvent struct{ pos domain.Cursor }
type pingEvent struct{ timestamp int64 }

func (joinEvent) inbound()   {}
func (drawEvent) inbound()   {}
func (undoEvent) inbound()   {}
func (redoEvent) inbound()   {}
func (clearEvent) inbound()  {}
func (cursorEvent) inbound() {}
func (pingEvent) inbound()   {}

func decode(data []byte) (event, error) {
	var msg domain.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}

	switch msg.Type {
	case domain.EventJoinRoom:
		var req domain.JoinRoom
		if err := unmarshalData(msg, &req); err != nil {
			return nil, err
		}
		return joinEvent{req: req}, nil
	case domain.EventDraw:
		var action domain.DrawAction
		if err := unmarshalData(msg, &action); err != nil {
			return nil, err
		}
		if !action.Tool.Valid() {
			return nil, fmt.Errorf("%w: %q", errInvalidTool, action.Tool)
		}
		return drawEvent{action: action.Normalize()}, nil
	case domain.EventUndo:
		return undoEvent{}, nil
	case domain.EventRedo:
		return redoEvent{}, nil
	case domain.EventClearCanvas:
		return clearEvent{}, nil
	case domain.EventCursorMove:
		var pos domain.Cursor
		if err := unmarshalData(msg, &pos); err != nil {
			return nil, err
		}
		return cursorEvent{pos: pos}, nil
	case domain.EventPing:
		var ping domain.Ping
		if err := unmarshalData(msg, &ping); err != nil {
			return nil, err
		}
		return pingEvent{timestamp: ping.Timestamp}, nil
	}
	return nil, fmt.Errorf("%w: %q", errUnknownEvent, msg.Type)
}

// unmarshalData tolerates a missing payload so fields fall back to their zero values.
func unmarshalData(msg domain.Message, v any) error {
	if len(msg.Data) == 0 || string(msg.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(msg.Data, v); err != nil {
		return fmt.Errorf("decode %s payload: %w", msg.Type, err)
	}
	return nil
}

func encode(t domain.EventType, payload any) ([]byte, error) {
	msg := domain.Message{Type: t}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		msg.Data = data
	}
	return json.Marshal(msg)
}
