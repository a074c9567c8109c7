package sternhalma

import "errors"

// Movement is a legal displacement of one piece: either a single step
// into an adjacent empty cell (Path has length 2 and the neighbor is
// empty) or a hop-chain (Path has length >= 2, every consecutive pair
// hops over an occupied cell onto an empty one, and no cell repeats).
type Movement struct {
	Path []HexIndex
}

// Endpoints returns the wire-visible (from, to) pair for a movement.
func (m Movement) Endpoints() (HexIndex, HexIndex) {
	return m.Path[0], m.Path[len(m.Path)-1]
}

// Errors returned by ValidateMovement.
var (
	ErrEmptyOrigin    = errors.New("sternhalma: origin cell is empty")
	ErrInvalidIndex   = errors.New("sternhalma: index is off-board")
	ErrOccupiedTarget = errors.New("sternhalma: target cell is occupied")
	ErrChainTooShort  = errors.New("sternhalma: chain has fewer than two cells")
	ErrChainNotContig = errors.New("sternhalma: chain hop is not legal")
	ErrNotMoversPiece = errors.New("sternhalma: origin is not occupied by the mover")
)

// stepMovesFrom returns every single-step move available from an
// occupied cell c.
func stepMovesFrom(b *Board, c HexIndex) []Movement {
	var out []Movement
	for _, d := range Directions() {
		n, onGrid := neighbor(c, d)
		if onGrid && b.Empty(n) {
			out = append(out, Movement{Path: []HexIndex{c, n}})
		}
	}
	return out
}

// legalHop reports whether a single hop from tail in direction d is
// legal: the adjacent cell must be occupied (either colour) and the
// cell two steps away must be valid and empty.
func legalHop(b *Board, tail HexIndex, d HexDirection) (HexIndex, bool) {
	mid, onGrid := neighbor(tail, d)
	if !onGrid || !b.Valid(mid) {
		return HexIndex{}, false
	}
	if _, occupied := b.Occupant(mid); !occupied {
		return HexIndex{}, false
	}
	land, onGrid := hop(tail, d)
	if !onGrid || !b.Empty(land) {
		return HexIndex{}, false
	}
	return land, true
}

// hopChainsFrom enumerates every hop-chain movement starting at start,
// via depth-first traversal. The path and visited set are shared across
// the whole walk and mutated in place (append/pop, mark/unmark) rather
// than copied per branch; only the movements collected as results copy
// their path slice.
func hopChainsFrom(b *Board, start HexIndex) []Movement {
	var results []Movement
	var visited [BoardLength][BoardLength]bool
	visited[start[0]][start[1]] = true
	path := []HexIndex{start}

	var walk func(tail HexIndex)
	walk = func(tail HexIndex) {
		for _, d := range Directions() {
			land, ok := legalHop(b, tail, d)
			if !ok || visited[land[0]][land[1]] {
				continue
			}

			visited[land[0]][land[1]] = true
			path = append(path, land)

			cp := make([]HexIndex, len(path))
			copy(cp, path)
			results = append(results, Movement{Path: cp})

			walk(land)

			path = path[:len(path)-1]
			visited[land[0]][land[1]] = false
		}
	}
	walk(start)
	return results
}

// GenerateMovements returns every legal movement (steps and hop-chains)
// available to p, in (cell-scan-order, direction-order, depth-first
// chain order). The result is not endpoint-deduplicated.
func GenerateMovements(b *Board, p Player) []Movement {
	var out []Movement
	for _, c := range b.indices(p) {
		out = append(out, stepMovesFrom(b, c)...)
		out = append(out, hopChainsFrom(b, c)...)
	}
	return out
}

// DedupeEndpoints filters moves down to the first movement seen for
// each distinct (from,to) endpoint pair, preserving order.
func DedupeEndpoints(moves []Movement) []Movement {
	type key struct{ from, to HexIndex }
	seen := make(map[key]bool, len(moves))
	out := make([]Movement, 0, len(moves))
	for _, m := range moves {
		from, to := m.Endpoints()
		k := key{from, to}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, m)
	}
	return out
}

// ValidateMovement checks an externally supplied Movement against the
// current board and reports which player it belongs to. This path is
// not used by the in-band protocol (which only ever proposes indices
// into a server-generated candidate list) but is exposed for tests and
// any debug/offline tooling.
func ValidateMovement(b *Board, m Movement) (Player, error) {
	if len(m.Path) < 2 {
		return 0, ErrChainTooShort
	}
	from, to := m.Endpoints()
	if !b.Valid(from) || !b.Valid(to) {
		return 0, ErrInvalidIndex
	}
	mover, ok := b.Occupant(from)
	if !ok {
		return 0, ErrEmptyOrigin
	}
	if !b.Empty(to) {
		return 0, ErrOccupiedTarget
	}

	if len(m.Path) == 2 {
		if d, ok := directionBetween(from, to); ok {
			if n, onGrid := neighbor(from, d); onGrid && n == to {
				return mover, nil // adjacent step
			}
			if _, ok := legalHop(b, from, d); ok {
				return mover, nil // minimal hop
			}
		}
		return 0, ErrChainNotContig
	}

	seen := map[HexIndex]bool{from: true}
	for i := 1; i < len(m.Path); i++ {
		tail := m.Path[i-1]
		next := m.Path[i]
		d, ok := directionBetween(tail, next)
		if !ok {
			return 0, ErrChainNotContig
		}
		land, ok := legalHop(b, tail, d)
		if !ok || land != next || seen[next] {
			return 0, ErrChainNotContig
		}
		seen[next] = true
	}
	return mover, nil
}

// directionBetween reports the direction whose delta maps from to to, and
// whether from/to are exactly one step or one hop apart in a single
// direction at all; ok is false for any other pair.
func directionBetween(from, to HexIndex) (dir HexDirection, ok bool) {
	dr, dc := to[0]-from[0], to[1]-from[1]
	for _, d := range Directions() {
		dd := delta[d]
		if dr == dd[0] && dc == dd[1] {
			return d, true
		}
		if dr == 2*dd[0] && dc == 2*dd[1] {
			return d, true
		}
	}
	return 0, false
}
