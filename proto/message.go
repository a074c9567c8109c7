// Package proto defines the wire protocol between the session coordinator
// and remote clients: message shapes, the length-prefixed CBOR codec, and
// the per-player perspective transform.
package proto

import (
	"github.com/google/uuid"

	sternhalma "github.com/eliseuv/sternhamla-server"
)

// MaxFrameBytes is the largest payload a frame may announce; larger or
// zero-length announcements are a transport error.
const MaxFrameBytes = 4096

// Type is the wire discriminator carried by every message.
type Type string

const (
	TypeHello        Type = "hello"
	TypeReconnect    Type = "reconnect"
	TypeChoice       Type = "choice"
	TypeWelcome      Type = "welcome"
	TypeReject       Type = "reject"
	TypeTurn         Type = "turn"
	TypeMovement     Type = "movement"
	TypeGameFinished Type = "game_finished"
	TypeDisconnect   Type = "disconnect"
)

// Endpoint is the wire form of a single board index, (row, col).
type Endpoint [2]int

func endpointOf(idx sternhalma.HexIndex) Endpoint { return Endpoint{idx[0], idx[1]} }

func (e Endpoint) hexIndex() sternhalma.HexIndex { return sternhalma.HexIndex{e[0], e[1]} }

// MovementIndices is the wire form of a Movement: its two endpoints.
type MovementIndices [2]Endpoint

// ClientMessage is the single envelope shape for every Client → Server
// message. Only the fields relevant to Type are populated; the others are
// zero. MovementIndex carries no omitempty tag, so it is always encoded
// and a choice of index 0 survives the round trip.
type ClientMessage struct {
	Type          Type      `cbor:"type"`
	SessionID     uuid.UUID `cbor:"session_id,omitempty"`
	MovementIndex int       `cbor:"movement_index"`
}

// Hello builds a request for a new session.
func Hello() ClientMessage { return ClientMessage{Type: TypeHello} }

// Reconnect builds a request to resume a prior session.
func Reconnect(id uuid.UUID) ClientMessage {
	return ClientMessage{Type: TypeReconnect, SessionID: id}
}

// Choice builds a move selection referencing the i-th candidate of the
// most recently received Turn message.
func Choice(index int) ClientMessage {
	return ClientMessage{Type: TypeChoice, MovementIndex: index}
}

// ServerMessage is the single envelope shape for every Server → Client
// message. Only the fields relevant to Type are populated.
type ServerMessage struct {
	Type      Type              `cbor:"type"`
	SessionID uuid.UUID         `cbor:"session_id,omitempty"`
	Reason    string            `cbor:"reason,omitempty"`
	Movements []MovementIndices `cbor:"movements,omitempty"`
	Player    sternhalma.Player `cbor:"player"`
	Movement  MovementIndices   `cbor:"movement,omitempty"`
	Scores    sternhalma.Scores `cbor:"scores"`
	Result    *Result           `cbor:"result,omitempty"`
}

// Result is the wire form of sternhalma.GameResult.
type Result struct {
	MaxTurns bool              `cbor:"max_turns"`
	Winner   sternhalma.Player `cbor:"winner"`
	Turns    int               `cbor:"total_turns"`
	Scores   sternhalma.Scores `cbor:"scores"`
}

// Welcome builds the response to a successful hello/reconnect.
func Welcome(id uuid.UUID) ServerMessage {
	return ServerMessage{Type: TypeWelcome, SessionID: id}
}

// Reject builds a handshake-failure response.
func Reject(reason string) ServerMessage {
	return ServerMessage{Type: TypeReject, Reason: reason}
}

// Disconnect builds the goodbye message sent while draining.
func Disconnect() ServerMessage { return ServerMessage{Type: TypeDisconnect} }

// Turn builds the candidate-list message for the player to move, encoding
// each Movement as its endpoint pair.
func Turn(candidates []sternhalma.Movement) ServerMessage {
	movements := make([]MovementIndices, len(candidates))
	for i, m := range candidates {
		from, to := m.Endpoints()
		movements[i] = MovementIndices{endpointOf(from), endpointOf(to)}
	}
	return ServerMessage{Type: TypeTurn, Movements: movements}
}

// MovementApplied builds the broadcast describing an applied move.
func MovementApplied(player sternhalma.Player, from, to sternhalma.HexIndex, scores sternhalma.Scores) ServerMessage {
	return ServerMessage{
		Type:     TypeMovement,
		Player:   player,
		Movement: MovementIndices{endpointOf(from), endpointOf(to)},
		Scores:   scores,
	}
}

// GameFinished builds the terminal broadcast for a completed game.
func GameFinished(result sternhalma.GameResult) ServerMessage {
	return ServerMessage{
		Type: TypeGameFinished,
		Result: &Result{
			MaxTurns: result.MaxTurns,
			Winner:   result.Winner,
			Turns:    result.Turns,
			Scores:   result.Scores,
		},
	}
}
