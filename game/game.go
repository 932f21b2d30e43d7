// Package game implements the rules of Tic-Tac-Toe and a minimax opponent.
package game

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidPosition   = errors.New("invalid position")
	ErrInvalidMark       = errors.New("invalid mark")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrGameOver          = errors.New("game is already over")
	ErrSearchOnFullBoard = errors.New("no empty cell left to search")
)

// Cell is the content of a single square on the board.
type Cell uint8

const (
	Empty Cell = iota
	Circle
	Cross
)

// String returns the string representation of the cell.
func (c Cell) String() string {
	switch c {
	case Circle:
		return "O"
	case Cross:
		return "X"
	default:
		return " "
	}
}

// IsMark returns true if the cell holds one of the two player marks.
func (c Cell) IsMark() bool {
	return c == Circle || c == Cross
}

// Opponent returns the mark of the other player.
func (c Cell) Opponent() Cell {
	switch c {
	case Circle:
		return Cross
	case Cross:
		return Circle
	default:
		return Empty
	}
}

// ParseMark parses "O" or "X" (case-insensitive) into a mark.
func ParseMark(s string) (Cell, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "O":
		return Circle, nil
	case "X":
		return Cross, nil
	default:
		return Empty, fmt.Errorf("%w: %q", ErrInvalidMark, s)
	}
}

// Move is a position on the board.
type Move struct {
	Row, Col uint8
}

// MoveAt returns a move at the given coordinates.
// If the coordinates are invalid, returns an error.
func MoveAt(row, col int) (Move, error) {
	if row < 0 || row > 2 || col < 0 || col > 2 {
		return Move{}, fmt.Errorf("%w: (%d, %d)", ErrInvalidPosition, row, col)
	}
	return Move{Row: uint8(row), Col: uint8(col)}, nil
}

// IsValid returns true if the move is on the board.
func (m Move) IsValid() bool {
	return m.Row < 3 && m.Col < 3
}

func (m Move) String() string {
	return fmt.Sprintf("(%d, %d)", m.Row, m.Col)
}

// Board is a 3x3 Tic-Tac-Toe board.
type Board [3][3]Cell

// String renders the board one row per line, with "." for empty cells.
func (b Board) String() string {
	rows := make([]string, 0, 3)
	for _, row := range b {
		cells := make([]string, 0, 3)
		for _, c := range row {
			if c == Empty {
				cells = append(cells, ".")
			} else {
				cells = append(cells, c.String())
			}
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	return strings.Join(rows, "\n")
}

// At returns the cell at the given position.
func (b Board) At(m Move) Cell {
	if !m.IsValid() {
		return Empty
	}
	return b[m.Row][m.Col]
}

// EmptyCells iterates over the empty cells in row-major order.
func (b Board) EmptyCells() func(func(Move) bool) {
	return func(yield func(Move) bool) {
		for r := range uint8(3) {
			for c := range uint8(3) {
				if b[r][c] == Empty && !yield(Move{r, c}) {
					return
				}
			}
		}
	}
}

// line returns the mark owning all three cells, or Empty.
func line(a, b, c Cell) Cell {
	if a != Empty && a == b && b == c {
		return a
	}
	return Empty
}

// winner scans diagonals, then rows, then columns.
func (b Board) winner() Cell {
	if w := line(b[0][0], b[1][1], b[2][2]); w != Empty {
		return w
	}
	if w := line(b[2][0], b[1][1], b[0][2]); w != Empty {
		return w
	}
	for i := range 3 {
		if w := line(b[i][0], b[i][1], b[i][2]); w != Empty {
			return w
		}
	}
	for i := range 3 {
		if w := line(b[0][i], b[1][i], b[2][i]); w != Empty {
			return w
		}
	}
	return Empty
}

// Outcome is the state of a game.
type Outcome uint8

const (
	Ongoing Outcome = iota
	Draw
	CircleWins
	CrossWins
)

// WinFor returns the winning outcome for the given mark.
func WinFor(mark Cell) Outcome {
	switch mark {
	case Circle:
		return CircleWins
	case Cross:
		return CrossWins
	default:
		return Ongoing
	}
}

// Winner returns the winning mark, or Empty for Ongoing and Draw.
func (o Outcome) Winner() Cell {
	switch o {
	case CircleWins:
		return Circle
	case CrossWins:
		return Cross
	default:
		return Empty
	}
}

// IsTerminal returns true if the game has ended.
func (o Outcome) IsTerminal() bool {
	return o != Ongoing
}

func (o Outcome) String() string {
	switch o {
	case Draw:
		return "draw"
	case CircleWins:
		return "O wins"
	case CrossWins:
		return "X wins"
	default:
		return "ongoing"
	}
}

// Game represents a game of Tic-Tac-Toe.
type Game struct {
	Board
	Moves int
}

// NewGame creates a new, empty game of Tic-Tac-Toe.
func NewGame() *Game {
	return &Game{}
}

func (g *Game) String() string {
	return fmt.Sprintf("move %d:\n%s", g.Moves, g.Board)
}

// Apply places mark at m. It returns false without touching the game if the
// cell is taken, the move is off the board or mark is not a player's mark.
func (g *Game) Apply(m Move, mark Cell) bool {
	if !mark.IsMark() || !m.IsValid() || g.Board[m.Row][m.Col] != Empty {
		return false
	}
	g.Board[m.Row][m.Col] = mark
	g.Moves++
	return true
}

// Place is like Apply but reports why a move was refused.
func (g *Game) Place(m Move, mark Cell) error {
	switch {
	case !mark.IsMark():
		return fmt.Errorf("%w: %d", ErrInvalidMark, mark)
	case !m.IsValid():
		return fmt.Errorf("%w: %v", ErrInvalidPosition, m)
	case !g.Apply(m, mark):
		return fmt.Errorf("%w: %v", ErrCellOccupied, m)
	}
	return nil
}

// Outcome returns the state of the game. A full board without a winning line
// is a draw.
func (g *Game) Outcome() Outcome {
	if w := g.Board.winner(); w != Empty {
		return WinFor(w)
	}
	if g.Moves == 9 {
		return Draw
	}
	return Ongoing
}

// Clone creates a copy of the game.
func (g *Game) Clone() *Game {
	g2 := *g
	return &g2
}
