package coord

import (
	"io"

	"github.com/google/uuid"

	sternhalma "github.com/eliseuv/sternhamla-server"
	"github.com/eliseuv/sternhamla-server/proto"
)

// directCapacity and broadcastCapacity follow spec.md §5: direct channels
// are small (one outstanding Turn at a time, ~32 is generous headroom);
// broadcast channels are bounded and lossy under overflow.
const (
	directCapacity    = 32
	broadcastCapacity = 8
)

// incoming pairs a decoded ClientMessage with a possible read error, so the
// blocking ServerCodec.ReadMessage call can feed a select statement.
type incoming struct {
	msg proto.ClientMessage
	err error
}

// Serve runs one connection's lifecycle to completion: Handshaking,
// Active, Draining. It blocks until the connection closes (remote EOF,
// decode error, write failure, or the coordinator ending the game) and is
// meant to be called from its own goroutine, one per accepted transport
// connection. rwc's length-prefixed byte stream supplies frame
// boundaries (TCP, net.Pipe).
func (s *Session) Serve(rwc io.ReadWriteCloser) {
	s.serve(rwc, proto.NewServerCodec(rwc))
}

// ServeFramer is Serve's WebSocket-shaped sibling: framer already
// delivers one whole message per ReadFrame/WriteFrame call, since the
// WebSocket layer supplies the length itself (spec.md §4.6), so no
// length-prefix codec sits between it and the CBOR payload.
func (s *Session) ServeFramer(closer io.Closer, framer proto.Framer) {
	s.serve(closer, proto.NewServerCodecFramer(framer))
}

func (s *Session) serve(closer io.Closer, codec *proto.ServerCodec) {
	defer closer.Close()

	player, direct, broadcast, ok := s.handshake(codec)
	if !ok {
		return
	}
	persp := proto.For(player)

	in := make(chan incoming, 1)
	go func() {
		for {
			msg, err := codec.ReadMessage()
			in <- incoming{msg, err}
			if err != nil {
				return
			}
		}
	}()

	s.debug.Printf("coord: %s active", player)
	for {
		select {
		case msg := <-direct:
			if err := codec.WriteMessage(persp.Outgoing(msg)); err != nil {
				s.debug.Printf("coord: write error to %s: %v", player, err)
				s.disconnect(player)
				return
			}

		case msg := <-broadcast:
			if err := codec.WriteMessage(persp.Outgoing(msg)); err != nil {
				s.debug.Printf("coord: write error to %s: %v", player, err)
				s.disconnect(player)
				return
			}
			if msg.Type == proto.TypeDisconnect {
				s.debug.Printf("coord: game over, closing %s", player)
				s.disconnect(player)
				return
			}

		case m := <-in:
			if m.err != nil {
				s.debug.Printf("coord: %s disconnected: %v", player, m.err)
				s.disconnect(player)
				return
			}
			if m.msg.Type == proto.TypeChoice {
				s.sendChoice(player, m.msg.MovementIndex)
			}
			// Any other message type in Active is a protocol violation
			// with no punitive effect in this version (spec.md §7).
		}
	}
}

// handshake consumes exactly one message and either registers a new
// player (hello) or resumes an existing one (reconnect), returning the
// direct/broadcast pair it registered with the coordinator so Serve reads
// from the same channels the coordinator writes to. ok is false once it
// has sent reject or hit a transport error, in which case the caller
// closes the connection without entering Active.
func (s *Session) handshake(codec *proto.ServerCodec) (player sternhalma.Player, direct, broadcast chan proto.ServerMessage, ok bool) {
	msg, err := codec.ReadMessage()
	if err != nil {
		return 0, nil, nil, false
	}

	direct = make(chan proto.ServerMessage, directCapacity)
	broadcast = make(chan proto.ServerMessage, broadcastCapacity)
	sender := Sender{Direct: direct, Broadcast: broadcast}

	switch msg.Type {
	case proto.TypeHello:
		reply := make(chan FreeSlotReply, 1)
		s.Main <- FreeSlotRequest{Reply: reply}
		slot := <-reply
		if !slot.OK {
			codec.WriteMessage(proto.Reject("no free player slot"))
			return 0, nil, nil, false
		}

		sessionID := uuid.New()
		if err := codec.WriteMessage(proto.Welcome(sessionID)); err != nil {
			return 0, nil, nil, false
		}
		s.Main <- ClientConnected{Player: slot.Player, SessionID: sessionID, Sender: sender}
		return slot.Player, direct, broadcast, true

	case proto.TypeReconnect:
		reply := make(chan LookupSessionReply, 1)
		s.Main <- LookupSessionRequest{SessionID: msg.SessionID, Reply: reply}
		lookup := <-reply
		if !lookup.OK {
			codec.WriteMessage(proto.Reject("Unknown Session"))
			return 0, nil, nil, false
		}

		if err := codec.WriteMessage(proto.Welcome(msg.SessionID)); err != nil {
			return 0, nil, nil, false
		}
		s.Main <- ClientReconnected{Player: lookup.Player, Sender: sender}
		return lookup.Player, direct, broadcast, true

	default:
		codec.WriteMessage(proto.Reject("expected hello or reconnect"))
		return 0, nil, nil, false
	}
}

// disconnect reports to the coordinator, best-effort, that player's
// connection has ended. The Clients channel is generously buffered
// (channelCapacity); a send that would still block is dropped rather than
// risking this connection's teardown on the coordinator's schedule.
func (s *Session) disconnect(player sternhalma.Player) {
	select {
	case s.Clients <- Disconnect(player):
	default:
	}
}

// sendChoice forwards a decoded Choice message to the coordinator,
// best-effort for the same reason as disconnect.
func (s *Session) sendChoice(player sternhalma.Player, index int) {
	select {
	case s.Clients <- Choice(player, index):
	default:
	}
}
