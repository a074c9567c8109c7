package sternhalma

import (
	"errors"
	"fmt"
)

// Scores holds each player's goal-region occupancy count, indexed by
// Player.
type Scores [PlayerCount]int

// GameStatus is the externally visible phase of a Game.
type GameStatus struct {
	Finished bool
	Player   Player // whose turn it is; meaningless if Finished
	Winner   Player // meaningful only if Finished
	Turns    int
	Scores   Scores
}

func (s GameStatus) String() string {
	if s.Finished {
		return fmt.Sprintf("Finished: winner=%s turns=%d scores=%v", s.Winner, s.Turns, s.Scores)
	}
	return fmt.Sprintf("Playing: %s turn=%d scores=%v", s.Player, s.Turns, s.Scores)
}

// GameResult is the terminal outcome reported to clients, distinguishing
// a natural finish from hitting the turn cap.
type GameResult struct {
	MaxTurns bool
	Winner   Player // meaningful only if !MaxTurns
	Turns    int
	Scores   Scores
}

// Errors returned by Game.ApplyMove / Game.ApplyChosen.
var (
	ErrOutOfTurn      = errors.New("sternhalma: move made out of turn")
	ErrGameFinished   = errors.New("sternhalma: game has already finished")
	ErrBadChoiceIndex = errors.New("sternhalma: choice index out of range")
)

// Game owns a Board, the current GameStatus, and the ordered history of
// applied moves. It is mutated only by ApplyChosen/ApplyMove; nothing
// else writes to it.
type Game struct {
	board      *Board
	status     GameStatus
	history    [][2]HexIndex
	candidates []Movement // last computed candidate list, endpoint-deduped
}

// NewGame returns a fresh game: full starting occupancy, Player1 to
// move, turn 0, scores [0,0].
func NewGame() *Game {
	return &Game{
		board: makeBoard(),
		status: GameStatus{
			Player: Player1,
		},
	}
}

// Board returns the underlying board (read-only use expected).
func (g *Game) Board() *Board { return g.board }

// Status returns the current game status.
func (g *Game) Status() GameStatus { return g.status }

// History returns the ordered sequence of applied [from,to] pairs.
func (g *Game) History() [][2]HexIndex { return g.history }

// Candidates computes the ordered, endpoint-unique list of legal moves
// for the current player. It is idempotent and has no side effect other
// than caching the list consulted by ApplyChosen.
func (g *Game) Candidates() []Movement {
	if g.status.Finished {
		return nil
	}
	all := GenerateMovements(g.board, g.status.Player)
	g.candidates = DedupeEndpoints(all)
	return g.candidates
}

// ApplyChosen applies the index-th entry of the last computed candidate
// list (see Candidates) for the current player.
func (g *Game) ApplyChosen(index int) (GameStatus, error) {
	if g.status.Finished {
		return g.status, ErrGameFinished
	}
	if index < 0 || index >= len(g.candidates) {
		return g.status, ErrBadChoiceIndex
	}
	from, to := g.candidates[index].Endpoints()
	g.apply(from, to)
	return g.status, nil
}

// ApplyMove performs full validation of an externally supplied Movement
// before applying it; used by tests and any debug/offline path. It is
// not on the hot path of the in-band protocol, which only ever proposes
// trusted server-generated indices.
func (g *Game) ApplyMove(m Movement) (GameStatus, error) {
	if g.status.Finished {
		return g.status, ErrGameFinished
	}
	mover, err := ValidateMovement(g.board, m)
	if err != nil {
		return g.status, err
	}
	if mover != g.status.Player {
		return g.status, ErrOutOfTurn
	}
	from, to := m.Endpoints()
	g.apply(from, to)
	return g.status, nil
}

// apply performs the board mutation, history update and status
// transition shared by ApplyChosen and ApplyMove. Callers have already
// established that from/to form a legal move for the current player.
func (g *Game) apply(from, to HexIndex) {
	mover := g.status.Player
	g.board.applyEndpoints(from, to)
	g.history = append(g.history, [2]HexIndex{from, to})

	scores := g.status.Scores
	goal := GoalRegion(mover)
	if containsIndex(goal, from) {
		scores[mover]--
	}
	if containsIndex(goal, to) {
		scores[mover]++
	}

	turns := g.status.Turns + 1
	if winner, ok := g.board.winner(); ok {
		g.status = GameStatus{
			Finished: true,
			Winner:   winner,
			Turns:    turns,
			Scores:   scores,
		}
		return
	}
	g.status = GameStatus{
		Player: mover.Opponent(),
		Turns:  turns,
		Scores: scores,
	}
}

func containsIndex(set []HexIndex, idx HexIndex) bool {
	for _, s := range set {
		if s == idx {
			return true
		}
	}
	return false
}
