package proto

import sternhalma "github.com/eliseuv/sternhamla-server"

// Perspective transforms internal, absolute game state into the frame a
// given client expects: every client sees itself as Player1 on the "near"
// side of the board, regardless of its actual internal identity.
type Perspective struct {
	self sternhalma.Player
}

// For builds the perspective used when talking to the client registered
// as the given internal player.
func For(self sternhalma.Player) Perspective { return Perspective{self: self} }

// player maps an absolute player identity to the receiver's frame.
func (p Perspective) player(abs sternhalma.Player) sternhalma.Player {
	if p.self == sternhalma.Player1 {
		return abs
	}
	return abs.Opponent()
}

// index rotates a board index 180 degrees for Player2 clients so they too
// play from the "bottom" of the board.
func (p Perspective) index(idx sternhalma.HexIndex) sternhalma.HexIndex {
	if p.self == sternhalma.Player1 {
		return idx
	}
	const n = sternhalma.BoardLength
	return sternhalma.HexIndex{n - 1 - idx[0], n - 1 - idx[1]}
}

func (p Perspective) endpoint(e Endpoint) Endpoint {
	return endpointOf(p.index(e.hexIndex()))
}

func (p Perspective) movement(m MovementIndices) MovementIndices {
	return MovementIndices{p.endpoint(m[0]), p.endpoint(m[1])}
}

func (p Perspective) scores(s sternhalma.Scores) sternhalma.Scores {
	if p.self == sternhalma.Player1 {
		return s
	}
	return sternhalma.Scores{s[sternhalma.Player2], s[sternhalma.Player1]}
}

// Outgoing applies the perspective transform to a ServerMessage bound for
// this client. SessionID, Reason and Type are never transformed.
func (p Perspective) Outgoing(msg ServerMessage) ServerMessage {
	out := msg
	if len(msg.Movements) > 0 {
		out.Movements = make([]MovementIndices, len(msg.Movements))
		for i, m := range msg.Movements {
			out.Movements[i] = p.movement(m)
		}
	}
	out.Player = p.player(msg.Player)
	if msg.Movement != (MovementIndices{}) {
		out.Movement = p.movement(msg.Movement)
	}
	out.Scores = p.scores(msg.Scores)
	if msg.Result != nil {
		r := *msg.Result
		r.Winner = p.player(r.Winner)
		r.Scores = p.scores(r.Scores)
		out.Result = &r
	}
	return out
}
