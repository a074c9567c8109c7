package sternhalma

// BoardLength is the side length of the square array the hexagonal
// lattice is embedded in.
const BoardLength = 17

// HexIndex addresses one cell of the lattice: {row, col}, both in
// [0, BoardLength).
type HexIndex [2]int

// validCells lists the 121 cells that form the six-point star.
//
// The original lookup table this is ported from was not available in
// the reference sources, so this table is derived instead: a cell
// (row,col) is valid iff, in cube coordinates a=col-8, b=-a-c, c=row-8,
// it lies in the union of two triangles of radius 4 centered on the
// board's middle cell (8,8):
//
//	(a >= -4 && b >= -4 && c >= -4) || (a <= 4 && b <= 4 && c <= 4)
//
// Enumerating that predicate over the full 17x17 array yields exactly
// this set, matching the classic Sternhalma board's row-width profile
// (1,2,3,4,13,12,11,10,9,10,11,12,13,4,3,2,1).
var validCells = []HexIndex{
	{0, 12}, {1, 11}, {1, 12}, {2, 10}, {2, 11}, {2, 12},
	{3, 9}, {3, 10}, {3, 11}, {3, 12}, {4, 4}, {4, 5},
	{4, 6}, {4, 7}, {4, 8}, {4, 9}, {4, 10}, {4, 11},
	{4, 12}, {4, 13}, {4, 14}, {4, 15}, {4, 16}, {5, 4},
	{5, 5}, {5, 6}, {5, 7}, {5, 8}, {5, 9}, {5, 10},
	{5, 11}, {5, 12}, {5, 13}, {5, 14}, {5, 15}, {6, 4},
	{6, 5}, {6, 6}, {6, 7}, {6, 8}, {6, 9}, {6, 10},
	{6, 11}, {6, 12}, {6, 13}, {6, 14}, {7, 4}, {7, 5},
	{7, 6}, {7, 7}, {7, 8}, {7, 9}, {7, 10}, {7, 11},
	{7, 12}, {7, 13}, {8, 4}, {8, 5}, {8, 6}, {8, 7},
	{8, 8}, {8, 9}, {8, 10}, {8, 11}, {8, 12}, {9, 3},
	{9, 4}, {9, 5}, {9, 6}, {9, 7}, {9, 8}, {9, 9},
	{9, 10}, {9, 11}, {9, 12}, {10, 2}, {10, 3}, {10, 4},
	{10, 5}, {10, 6}, {10, 7}, {10, 8}, {10, 9}, {10, 10},
	{10, 11}, {10, 12}, {11, 1}, {11, 2}, {11, 3}, {11, 4},
	{11, 5}, {11, 6}, {11, 7}, {11, 8}, {11, 9}, {11, 10},
	{11, 11}, {11, 12}, {12, 0}, {12, 1}, {12, 2}, {12, 3},
	{12, 4}, {12, 5}, {12, 6}, {12, 7}, {12, 8}, {12, 9},
	{12, 10}, {12, 11}, {12, 12}, {13, 4}, {13, 5}, {13, 6},
	{13, 7}, {14, 4}, {14, 5}, {14, 6}, {15, 4}, {15, 5},
	{16, 4},
}

// player1Start is the 15-cell region nearest the southern apex (16,4).
var player1Start = []HexIndex{
	{12, 4}, {12, 5}, {12, 6}, {12, 7}, {12, 8},
	{13, 4}, {13, 5}, {13, 6}, {13, 7},
	{14, 4}, {14, 5}, {14, 6},
	{15, 4}, {15, 5},
	{16, 4},
}

// player2Start is the 15-cell region nearest the northern apex (0,12);
// it is the exact central-symmetric mirror of player1Start, i.e. every
// entry equals (16-row, 16-col) of the matching player1Start entry.
var player2Start = []HexIndex{
	{0, 12}, {1, 11}, {1, 12}, {2, 10}, {2, 11}, {2, 12},
	{3, 9}, {3, 10}, {3, 11}, {3, 12},
	{4, 8}, {4, 9}, {4, 10}, {4, 11}, {4, 12},
}

// StartingRegion returns the 15 cells a player's pieces occupy at the
// start of a game.
func StartingRegion(p Player) []HexIndex {
	if p == Player1 {
		return player1Start
	}
	return player2Start
}

// GoalRegion returns the 15 cells a player must fully occupy to win,
// which is always the opponent's starting region.
func GoalRegion(p Player) []HexIndex {
	return StartingRegion(p.Opponent())
}
