package domain

import "encoding/json"

type EventType string

const (
	EventJoinRoom    EventType = "join-room"
	EventInitState   EventType = "init-state"
	EventUserJoined  EventType = "user-joined"
	EventUserLeft    EventType = "user-left"
	EventDraw        EventType = "draw"
	EventUndo        EventType = "undo"
	EventRedo        EventType = "redo"
	EventClearCanvas EventType = "clear-canvas"
	EventCursorMove  EventType = "cursor-move"
	EventPing        EventType = "ping"
	EventPong        EventType = "pong"
)

// Message is the frame exchanged over every connection.
type Message struct {
	Type EventType       `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type JoinRoom struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
	Color    string `json:"color"`
}

type InitState struct {
	DrawingHistory []DrawAction  `json:"drawingHistory"`
	Users          []Participant `json:"users"`
}

type UserJoined struct {
	User  Participant   `json:"user"`
	Users []Participant `json:"users"`
}

type UserLeft struct {
	UserID string        `json:"userId"`
	Users  []Participant `json:"users"`
}

type CursorMove struct {
	UserID string  `json:"userId,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

type Ping struct {
	Timestamp int64  `json:"timestamp"`
	ClientID  string `json:"clientId,omitempty"`
}
