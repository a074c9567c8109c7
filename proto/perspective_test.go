package proto

import (
	"testing"

	"github.com/google/uuid"

	sternhalma "github.com/eliseuv/sternhamla-server"
)

func TestPerspectivePlayer1Identity(t *testing.T) {
	p := For(sternhalma.Player1)
	msg := MovementApplied(sternhalma.Player1, sternhalma.HexIndex{0, 8}, sternhalma.HexIndex{1, 8}, sternhalma.Scores{3, 5})
	out := p.Outgoing(msg)
	if out.Player != sternhalma.Player1 {
		t.Errorf("got player %s, want Player1", out.Player)
	}
	if out.Movement != msg.Movement {
		t.Errorf("got movement %+v, want unchanged %+v", out.Movement, msg.Movement)
	}
	if out.Scores != msg.Scores {
		t.Errorf("got scores %+v, want unchanged %+v", out.Scores, msg.Scores)
	}
}

func TestPerspectivePlayer2FlipsPlayerBoardAndScores(t *testing.T) {
	p := For(sternhalma.Player2)
	const n = sternhalma.BoardLength
	msg := MovementApplied(sternhalma.Player1, sternhalma.HexIndex{0, 8}, sternhalma.HexIndex{1, 8}, sternhalma.Scores{3, 5})
	out := p.Outgoing(msg)

	if out.Player != sternhalma.Player2 {
		t.Errorf("got player %s, want Player2 (opponent of Player1)", out.Player)
	}
	wantFrom := Endpoint{n - 1, n - 1 - 8}
	wantTo := Endpoint{n - 2, n - 1 - 8}
	if out.Movement != (MovementIndices{wantFrom, wantTo}) {
		t.Errorf("got movement %+v, want %+v", out.Movement, MovementIndices{wantFrom, wantTo})
	}
	if out.Scores != (sternhalma.Scores{5, 3}) {
		t.Errorf("got scores %+v, want swapped {5,3}", out.Scores)
	}
}

func TestPerspectiveIndexIsInvolution(t *testing.T) {
	p := For(sternhalma.Player2)
	idx := sternhalma.HexIndex{4, 12}
	twice := p.index(p.index(idx))
	if twice != idx {
		t.Errorf("applying the rotation twice gave %+v, want original %+v", twice, idx)
	}
}

func TestPerspectiveNeverTransformsSessionIDReasonOrType(t *testing.T) {
	p := For(sternhalma.Player2)
	msg := Reject("unknown session")
	msg.SessionID = uuid.New()
	out := p.Outgoing(msg)
	if out.Type != msg.Type || out.Reason != msg.Reason || out.SessionID != msg.SessionID {
		t.Errorf("got %+v, want SessionID/Type/Reason left untouched", out)
	}
}

func TestPerspectiveTurnTransformsEachCandidate(t *testing.T) {
	p := For(sternhalma.Player2)
	const n = sternhalma.BoardLength
	candidates := []MovementIndices{
		{Endpoint{0, 0}, Endpoint{1, 1}},
		{Endpoint{5, 5}, Endpoint{6, 6}},
	}
	out := p.Outgoing(ServerMessage{Type: TypeTurn, Movements: candidates})
	for i, m := range candidates {
		want := MovementIndices{
			Endpoint{n - 1 - m[0][0], n - 1 - m[0][1]},
			Endpoint{n - 1 - m[1][0], n - 1 - m[1][1]},
		}
		if out.Movements[i] != want {
			t.Errorf("candidate %d: got %+v, want %+v", i, out.Movements[i], want)
		}
	}
}

func TestPerspectiveResultTransformsWinnerAndScores(t *testing.T) {
	p := For(sternhalma.Player2)
	result := sternhalma.GameResult{Winner: sternhalma.Player1, Turns: 40, Scores: sternhalma.Scores{10, 4}}
	out := p.Outgoing(GameFinished(result))
	if out.Result.Winner != sternhalma.Player2 {
		t.Errorf("got winner %s, want Player2 (opponent of Player1)", out.Result.Winner)
	}
	if out.Result.Scores != (sternhalma.Scores{4, 10}) {
		t.Errorf("got scores %+v, want swapped {4,10}", out.Result.Scores)
	}
}
