package main

import "encoding/json"

// Direction is a compass facing as it appears on the wire.
type Direction string

const (
	DirUp    Direction = "up"
	DirDown  Direction = "down"
	DirLeft  Direction = "left"
	DirRight Direction = "right"
)

// World coordinate space. The server owns positions; these bounds only
// matter for viewport clamping and click-target clamping.
const (
	worldWidth  = 2048.0
	worldHeight = 2048.0
)

// Message actions. The server reuses the join_game action for its reply.
const (
	actJoinGame     = "join_game"
	actPlayerJoined = "player_joined"
	actPlayersMoved = "players_moved"
	actPlayerLeft   = "player_left"
	actMove         = "move"
	actStop         = "stop"
)

// Player mirrors one player entry from a server snapshot. Entries are
// overwritten wholesale on every positional update, never interpolated.
type Player struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Facing   Direction `json:"facing"`
	Avatar   string    `json:"avatar"`
	Moving   bool      `json:"isMoving"`
	Frame    int       `json:"animationFrame"`
}

// Avatar maps each facing direction to an ordered list of frame image
// references (URLs or data URIs). Immutable once registered.
type Avatar struct {
	Name   string                 `json:"name"`
	Frames map[Direction][]string `json:"frames"`
}

// serverMessage is the single inbound shape, discriminated by Action.
// Unused fields stay zero for any given action.
type serverMessage struct {
	Action   string            `json:"action"`
	Success  bool              `json:"success"`
	Error    string            `json:"error"`
	PlayerID string            `json:"playerId"`
	Players  map[string]Player `json:"players"`
	Avatars  map[string]Avatar `json:"avatars"`
	Player   *Player           `json:"player"`
	Avatar   *Avatar           `json:"avatar"`
}

// clientMessage is the single outbound shape. X/Y are pointers so a
// directional move does not serialize stray coordinates.
type clientMessage struct {
	Action    string    `json:"action"`
	Username  string    `json:"username,omitempty"`
	Direction Direction `json:"direction,omitempty"`
	X         *float64  `json:"x,omitempty"`
	Y         *float64  `json:"y,omitempty"`
}

func encodeJoin(username string) []byte {
	b, _ := json.Marshal(clientMessage{Action: actJoinGame, Username: username})
	return b
}

func encodeMove(dir Direction) []byte {
	b, _ := json.Marshal(clientMessage{Action: actMove, Direction: dir})
	return b
}

func encodeMoveTo(x, y float64) []byte {
	b, _ := json.Marshal(clientMessage{Action: actMove, X: &x, Y: &y})
	return b
}

func encodeStop() []byte {
	b, _ := json.Marshal(clientMessage{Action: actStop})
	return b
}
