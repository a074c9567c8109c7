package coord

import (
	"log"
	"time"

	"github.com/google/uuid"

	sternhalma "github.com/eliseuv/sternhamla-server"
	"github.com/eliseuv/sternhamla-server/proto"
)

// channelCapacity bounds the Main and Clients channels; both only ever
// carry a handful of in-flight requests from at most two connections.
const channelCapacity = 8

// Session is the single-writer owner of a Game and of every mapping from
// players to live connections. Its Run method is the only goroutine that
// ever touches the Game; everything else communicates through the channels
// returned by NewSession.
type Session struct {
	Main    chan mainRequest
	Clients chan ClientRequest

	maxTurns     int
	setupTimeout time.Duration
	log          *log.Logger
	debug        *log.Logger

	game     *sternhalma.Game
	senders  map[sternhalma.Player]Sender
	sessions map[uuid.UUID]sternhalma.Player
	gone     map[sternhalma.Player]bool
}

// NewSession constructs a Session ready to Run. maxTurns <= 0 means
// unlimited. setupTimeout bounds both the initial handshake phase and the
// both-players-disconnected grace period during play.
func NewSession(maxTurns int, setupTimeout time.Duration, logger, debug *log.Logger) *Session {
	return &Session{
		Main:    make(chan mainRequest, channelCapacity),
		Clients: make(chan ClientRequest, channelCapacity),

		maxTurns:     maxTurns,
		setupTimeout: setupTimeout,
		log:          logger,
		debug:        debug,

		game:     sternhalma.NewGame(),
		senders:  make(map[sternhalma.Player]Sender),
		sessions: make(map[uuid.UUID]sternhalma.Player),
		gone:     make(map[sternhalma.Player]bool),
	}
}

// Run drives the session through Setup, Play, Termination and Draining.
// It returns once every registered client has disconnected from Draining,
// at which point the listener may stop accepting new connections for this
// session.
func (s *Session) Run() {
	if !s.setup() {
		s.debug.Println("coord: setup phase timed out, aborting")
		return
	}
	result := s.play()
	s.drain(result)
}

// setup handles only handshake RPCs until both players are registered, or
// until setupTimeout elapses.
func (s *Session) setup() bool {
	deadline := time.After(s.setupTimeout)
	for len(s.senders) < sternhalma.PlayerCount {
		select {
		case <-deadline:
			return false
		case req := <-s.Main:
			s.handleMain(req)
		}
	}
	return true
}

// play runs the turn loop until the game finishes or the turn cap is hit,
// or until both players disappear without reconnecting in time.
func (s *Session) play() sternhalma.GameResult {
	lastSentTurn := -1 // Turns value a Turn has already gone out for
	resend := false    // force one more send: the mover just reconnected

	for {
		status := s.game.Status()
		if status.Finished {
			return sternhalma.GameResult{
				Winner: status.Winner,
				Turns:  status.Turns,
				Scores: status.Scores,
			}
		}
		if s.maxTurns > 0 && status.Turns >= s.maxTurns {
			return sternhalma.GameResult{
				MaxTurns: true,
				Turns:    status.Turns,
				Scores:   status.Scores,
			}
		}

		mover := status.Player
		candidates := s.game.Candidates()
		if !s.gone[mover] && (status.Turns != lastSentTurn || resend) {
			s.sendTurn(mover, candidates)
			lastSentTurn = status.Turns
			resend = false
		}

		var graceTimer <-chan time.Time
		if len(s.senders) == 0 {
			graceTimer = time.After(s.setupTimeout)
		}

		select {
		case <-graceTimer:
			status := s.game.Status()
			return sternhalma.GameResult{
				MaxTurns: true,
				Turns:    status.Turns,
				Scores:   status.Scores,
			}

		case req := <-s.Clients:
			s.handleClientDuringPlay(req, mover, candidates)

		case req := <-s.Main:
			if s.handleMainDuringPlay(req, mover) {
				resend = true
			}
		}
	}
}

// handleClientDuringPlay applies one ClientRequest received while the game
// is Playing. Out-of-turn and out-of-range choices are logged and
// ignored; the current turn simply stays open.
func (s *Session) handleClientDuringPlay(req ClientRequest, mover sternhalma.Player, candidates []sternhalma.Movement) {
	switch req.Kind {
	case RequestDisconnect:
		delete(s.senders, req.Player)
		s.gone[req.Player] = true
		s.debug.Printf("coord: %s disconnected", req.Player)

	case RequestChoice:
		if req.Player != mover {
			s.debug.Printf("coord: ignoring out-of-turn choice from %s", req.Player)
			return
		}
		if req.Index < 0 || req.Index >= len(candidates) {
			s.debug.Printf("coord: ignoring out-of-range choice %d from %s", req.Index, req.Player)
			return
		}
		from, to := candidates[req.Index].Endpoints()
		status, err := s.game.ApplyChosen(req.Index)
		if err != nil {
			s.debug.Printf("coord: unexpected ApplyChosen error: %v", err)
			return
		}
		s.broadcast(proto.MovementApplied(mover, from, to, status.Scores))
	}
}

// handleMainDuringPlay answers handshake RPCs that can still legally occur
// after Setup: reconnection, and slot/session lookups. It reports whether
// the event was the current mover reconnecting, so play can re-send the
// outstanding Turn exactly once for it.
func (s *Session) handleMainDuringPlay(req mainRequest, mover sternhalma.Player) (moverReconnected bool) {
	switch m := req.(type) {
	case FreeSlotRequest:
		m.Reply <- FreeSlotReply{OK: false}

	case LookupSessionRequest:
		p, ok := s.sessions[m.SessionID]
		m.Reply <- LookupSessionReply{Player: p, OK: ok}

	case ClientReconnected:
		s.senders[m.Player] = m.Sender
		delete(s.gone, m.Player)
		s.debug.Printf("coord: %s reconnected", m.Player)
		return m.Player == mover

	case ClientConnected:
		s.log.Printf("coord: unexpected ClientConnected for %s during play", m.Player)
	}
	return false
}

// handleMain answers handshake RPCs during Setup.
func (s *Session) handleMain(req mainRequest) {
	switch m := req.(type) {
	case FreeSlotRequest:
		for _, p := range sternhalma.Players() {
			if _, taken := s.senders[p]; !taken {
				m.Reply <- FreeSlotReply{Player: p, OK: true}
				return
			}
		}
		m.Reply <- FreeSlotReply{OK: false}

	case LookupSessionRequest:
		p, ok := s.sessions[m.SessionID]
		m.Reply <- LookupSessionReply{Player: p, OK: ok}

	case ClientConnected:
		s.senders[m.Player] = m.Sender
		s.sessions[m.SessionID] = m.Player
		s.debug.Printf("coord: %s connected (session %s)", m.Player, m.SessionID)

	case ClientReconnected:
		s.log.Printf("coord: unexpected ClientReconnected for %s during setup", m.Player)
	}
}

// sendTurn delivers the current candidate list to mover's direct channel.
func (s *Session) sendTurn(mover sternhalma.Player, candidates []sternhalma.Movement) {
	sender, ok := s.senders[mover]
	if !ok {
		return
	}
	sender.Direct <- proto.Turn(candidates)
}

// broadcast replays msg to every currently connected client's broadcast
// channel. Sends never block the coordinator: a full channel means a slow
// or stalled connection task, and broadcasts are advisory replays the
// coordinator does not depend on clients having received.
func (s *Session) broadcast(msg proto.ServerMessage) {
	for p, sender := range s.senders {
		select {
		case sender.Broadcast <- msg:
		default:
			s.debug.Printf("coord: dropped broadcast to %s (channel full)", p)
		}
	}
}

// drain broadcasts the terminal result and GameFinished, then the
// Disconnect goodbye, and waits for every still-registered client to
// report its own disconnect.
func (s *Session) drain(result sternhalma.GameResult) {
	s.broadcast(proto.GameFinished(result))
	s.broadcast(proto.Disconnect())

	for len(s.senders) > 0 {
		select {
		case req := <-s.Clients:
			if req.Kind == RequestDisconnect {
				delete(s.senders, req.Player)
			}
		case req := <-s.Main:
			switch m := req.(type) {
			case FreeSlotRequest:
				m.Reply <- FreeSlotReply{OK: false}
			case LookupSessionRequest:
				m.Reply <- LookupSessionReply{OK: false}
			}
		}
	}
	s.debug.Println("coord: draining complete")
}
