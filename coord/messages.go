// Package coord implements the session coordinator: the single goroutine
// that owns a sternhalma.Game and all bookkeeping about which player is
// attached to which connection. Every cross-goroutine interaction with a
// Game happens by sending one of the message types in this file.
package coord

import (
	"github.com/google/uuid"

	sternhalma "github.com/eliseuv/sternhamla-server"
	"github.com/eliseuv/sternhamla-server/proto"
)

// Sender is the pair of channels a connection task hands the coordinator
// when it registers a player: Direct carries the single outstanding Turn
// message for that player, Broadcast carries replayed Movement/
// GameFinished/Disconnect notifications.
type Sender struct {
	Direct    chan<- proto.ServerMessage
	Broadcast chan<- proto.ServerMessage
}

// mainRequest is the sealed set of messages a listener/connection task may
// send on the coordinator's Main channel (handshake RPCs).
type mainRequest interface{ isMainRequest() }

// FreeSlotRequest asks the coordinator for an unclaimed player slot.
type FreeSlotRequest struct {
	Reply chan<- FreeSlotReply
}

// FreeSlotReply answers a FreeSlotRequest.
type FreeSlotReply struct {
	Player sternhalma.Player
	OK     bool
}

func (FreeSlotRequest) isMainRequest() {}

// LookupSessionRequest asks the coordinator which player owns a session.
type LookupSessionRequest struct {
	SessionID uuid.UUID
	Reply     chan<- LookupSessionReply
}

// LookupSessionReply answers a LookupSessionRequest.
type LookupSessionReply struct {
	Player sternhalma.Player
	OK     bool
}

func (LookupSessionRequest) isMainRequest() {}

// ClientConnected registers a freshly handshaken connection for player.
type ClientConnected struct {
	Player    sternhalma.Player
	SessionID uuid.UUID
	Sender    Sender
}

func (ClientConnected) isMainRequest() {}

// ClientReconnected re-registers a connection for a player whose session
// already existed (possibly mid-game, possibly while disconnected).
type ClientReconnected struct {
	Player sternhalma.Player
	Sender Sender
}

func (ClientReconnected) isMainRequest() {}

// requestKind discriminates the ClientRequest variants.
type requestKind int

const (
	// RequestChoice proposes the Index-th candidate movement.
	RequestChoice requestKind = iota
	// RequestDisconnect reports that a player's transport has closed.
	RequestDisconnect
)

// ClientRequest is the message shape sent on the coordinator's Clients
// channel by every connection task, for as long as it is Active.
type ClientRequest struct {
	Player sternhalma.Player
	Kind   requestKind
	Index  int // meaningful only when Kind == RequestChoice
}

// Choice builds a ClientRequest proposing the index-th candidate.
func Choice(p sternhalma.Player, index int) ClientRequest {
	return ClientRequest{Player: p, Kind: RequestChoice, Index: index}
}

// Disconnect builds a ClientRequest reporting a dropped connection.
func Disconnect(p sternhalma.Player) ClientRequest {
	return ClientRequest{Player: p, Kind: RequestDisconnect}
}
