package sternhalma

import "testing"

func TestMakeBoardOccupancy(t *testing.T) {
	b := makeBoard()
	for _, p := range Players() {
		if n := b.occupiedCount(p); n != 15 {
			t.Errorf("player %s: got %d occupied cells, want 15", p, n)
		}
	}
}

func TestValidCellCount(t *testing.T) {
	b := makeBoard()
	count := 0
	for r := 0; r < BoardLength; r++ {
		for c := 0; c < BoardLength; c++ {
			if b.Valid(HexIndex{r, c}) {
				count++
			}
		}
	}
	if count != 121 {
		t.Errorf("got %d valid cells, want 121", count)
	}
}

func TestStartingRegionsAreCentrallySymmetric(t *testing.T) {
	p1 := StartingRegion(Player1)
	p2 := StartingRegion(Player2)
	if len(p1) != 15 || len(p2) != 15 {
		t.Fatalf("got region sizes %d/%d, want 15/15", len(p1), len(p2))
	}
	mirrored := make(map[HexIndex]bool, 15)
	for _, idx := range p1 {
		mirrored[HexIndex{BoardLength - 1 - idx[0], BoardLength - 1 - idx[1]}] = true
	}
	for _, idx := range p2 {
		if !mirrored[idx] {
			t.Errorf("player2 start %v has no mirror in player1 start", idx)
		}
	}
}

func TestGoalRegionIsOpponentStart(t *testing.T) {
	for _, p := range Players() {
		want := StartingRegion(p.Opponent())
		got := GoalRegion(p)
		if len(got) != len(want) {
			t.Fatalf("%s: goal region size mismatch", p)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s: goal region differs from opponent start at %d: %v != %v", p, i, got[i], want[i])
			}
		}
	}
}

func TestNeighborOffBoard(t *testing.T) {
	b := makeBoard()
	if _, ok := b.Neighbor(HexIndex{0, 12}, NW); ok {
		t.Error("NW of the northern apex should be off-board")
	}
	if n, ok := b.Neighbor(HexIndex{8, 8}, E); !ok || n != (HexIndex{8, 9}) {
		t.Errorf("E of center: got %v,%v want (8,9),true", n, ok)
	}
}

func TestApplyEndpointsMovesPiece(t *testing.T) {
	b := makeBoard()
	from := HexIndex{16, 4}
	to := HexIndex{15, 4}
	if b.Empty(to) {
		t.Fatal("precondition: target should start occupied by Player1")
	}
	// Vacate the destination's own occupant first by clearing it, since
	// both cells start occupied by Player1 in the opening position.
	b.clear(to)

	mover := b.applyEndpoints(from, to)
	if mover != Player1 {
		t.Errorf("got mover %s, want Player1", mover)
	}
	if !b.Empty(from) {
		t.Error("origin should be empty after the move")
	}
	if occ, ok := b.Occupant(to); !ok || occ != Player1 {
		t.Error("destination should be occupied by Player1 after the move")
	}
}
