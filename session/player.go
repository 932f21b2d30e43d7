package session

import (
	"context"
	"fmt"

	"github.com/twipi/tictactoe/game"
)

// Prompter asks the user for a number in [1, maxValue]. Implementations
// re-prompt on invalid input and never return an out-of-range value.
type Prompter interface {
	RequestBoundedInteger(ctx context.Context, prompt string, maxValue int) (int, error)
}

// Player chooses moves for one mark.
type Player interface {
	Name() string
	Mark() game.Cell
	ChooseMove(ctx context.Context, g *game.Game) (game.Move, error)
}

// Human is a player whose moves come from a Prompter.
type Human struct {
	name     string
	mark     game.Cell
	prompter Prompter
}

var _ Player = (*Human)(nil)

// NewHuman creates a human player.
func NewHuman(name string, mark game.Cell, p Prompter) *Human {
	return &Human{name: name, mark: mark, prompter: p}
}

// Name implements [Player].
func (h *Human) Name() string { return h.name }

// Mark implements [Player].
func (h *Human) Mark() game.Cell { return h.mark }

// ChooseMove implements [Player]. It asks for a row, then a column.
func (h *Human) ChooseMove(ctx context.Context, g *game.Game) (game.Move, error) {
	row, err := h.prompter.RequestBoundedInteger(ctx, "Please choose your row:", 3)
	if err != nil {
		return game.Move{}, err
	}
	col, err := h.prompter.RequestBoundedInteger(ctx, "Please choose your column:", 3)
	if err != nil {
		return game.Move{}, err
	}
	return game.MoveAt(row-1, col-1)
}

// Computer is a player that searches for the optimal move.
type Computer struct {
	mark game.Cell
}

var _ Player = (*Computer)(nil)

// NewComputer creates a computer player.
func NewComputer(mark game.Cell) *Computer {
	return &Computer{mark: mark}
}

// Name implements [Player].
func (c *Computer) Name() string { return "The computer" }

// Mark implements [Player].
func (c *Computer) Mark() game.Cell { return c.mark }

// ChooseMove implements [Player].
func (c *Computer) ChooseMove(ctx context.Context, g *game.Game) (game.Move, error) {
	return game.NewAI(g, c.mark).NextMove()
}

// Mode selects who plays against the human.
type Mode string

const (
	ModeComputer Mode = "computer"
	ModeHuman    Mode = "human"
)

// Lineup returns the two players of a session in playing order.
func Lineup(mode Mode, humanMark game.Cell, computerFirst bool, p Prompter) (first, second Player, err error) {
	if !humanMark.IsMark() {
		return nil, nil, fmt.Errorf("%w: %d", game.ErrInvalidMark, humanMark)
	}

	switch mode {
	case ModeHuman:
		first = NewHuman(fmt.Sprintf("Player %v", humanMark), humanMark, p)
		second = NewHuman(fmt.Sprintf("Player %v", humanMark.Opponent()), humanMark.Opponent(), p)
		return first, second, nil

	case ModeComputer:
		human := NewHuman("You", humanMark, p)
		computer := NewComputer(humanMark.Opponent())
		if computerFirst {
			return computer, human, nil
		}
		return human, computer, nil

	default:
		return nil, nil, fmt.Errorf("unknown mode %q", mode)
	}
}
