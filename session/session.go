// Package session drives a game of Tic-Tac-Toe between two players, one turn
// at a time.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/twipi/tictactoe/game"
)

var (
	ErrSessionOver    = errors.New("session is over")
	ErrInvalidPlayers = errors.New("players must hold opposite marks")
)

// Renderer displays the game to the players.
type Renderer interface {
	Render(board game.Board)
	Notify(msg string)
}

// State is the state of the turn-taking machine: either awaiting a move from
// a side, or terminal with an outcome.
type State struct {
	side    game.Cell
	outcome game.Outcome
}

// IsTerminal returns true once the game has ended.
func (s State) IsTerminal() bool { return s.outcome.IsTerminal() }

// SideToMove returns the mark expected to move, or Empty if terminal.
func (s State) SideToMove() game.Cell { return s.side }

// Outcome returns the outcome, which is Ongoing until the state is terminal.
func (s State) Outcome() game.Outcome { return s.outcome }

func (s State) String() string {
	if s.IsTerminal() {
		return fmt.Sprintf("terminal(%v)", s.outcome)
	}
	return fmt.Sprintf("awaiting(%v)", s.side)
}

// Session is a single game between two players. A finished session cannot be
// resumed; start a new one with a new game.
type Session struct {
	ID uuid.UUID

	game    *game.Game
	players [2]Player
	turn    int
	state   State
	ui      Renderer
	logger  *slog.Logger

	lastMove string
}

// New creates a session on g. The first player moves first.
func New(logger *slog.Logger, g *game.Game, ui Renderer, first, second Player) (*Session, error) {
	if !first.Mark().IsMark() || first.Mark().Opponent() != second.Mark() {
		return nil, fmt.Errorf("%w: %v and %v", ErrInvalidPlayers, first.Mark(), second.Mark())
	}

	id := uuid.New()
	s := &Session{
		ID:      id,
		game:    g,
		players: [2]Player{first, second},
		ui:      ui,
		logger:  logger.With("session_id", id.String()),
	}

	if outcome := g.Outcome(); outcome.IsTerminal() {
		s.state = State{outcome: outcome}
	} else {
		s.state = State{side: first.Mark()}
	}

	return s, nil
}

// Game returns the game being played.
func (s *Session) Game() *game.Game { return s.game }

// State returns the current state of the session.
func (s *Session) State() State { return s.state }

// Step plays a single turn. It returns ErrSessionOver if the game has ended.
// An error from the player leaves the game untouched and the same side to
// move.
func (s *Session) Step(ctx context.Context) error {
	if s.state.IsTerminal() {
		return ErrSessionOver
	}

	p := s.players[s.turn]

	s.ui.Render(s.game.Board)
	if s.lastMove != "" {
		s.ui.Notify(s.lastMove)
	}
	s.ui.Notify(fmt.Sprintf("Turn: %s (%v)", p.Name(), p.Mark()))

	var move game.Move
	for {
		m, err := p.ChooseMove(ctx, s.game)
		if err != nil {
			return fmt.Errorf("%s could not choose a move: %w", p.Name(), err)
		}

		err = s.game.Place(m, p.Mark())
		if errors.Is(err, game.ErrCellOccupied) {
			s.logger.Debug(
				"rejected move on occupied cell",
				"player", p.Name(),
				"move", m)
			s.ui.Notify("This cube is already taken! Please choose another cube.")
			continue
		}
		if err != nil {
			return fmt.Errorf("%s made an invalid move: %w", p.Name(), err)
		}

		move = m
		break
	}

	s.logger.Debug(
		"move applied",
		"player", p.Name(),
		"mark", p.Mark().String(),
		"move", move,
		"moves", s.game.Moves)

	s.lastMove = fmt.Sprintf("%s played on row %d, column %d", p.Name(), move.Row+1, move.Col+1)

	outcome := s.game.Outcome()
	if !outcome.IsTerminal() {
		s.turn ^= 1
		s.state = State{side: s.players[s.turn].Mark()}
		return nil
	}

	s.state = State{outcome: outcome}
	s.ui.Render(s.game.Board)
	s.ui.Notify(s.lastMove)
	s.ui.Notify(s.gameOverMessage(outcome))

	s.logger.Info(
		"game over",
		"outcome", outcome.String(),
		"moves", s.game.Moves,
		"board", s.game.Board.String())

	return nil
}

// Run plays turns until the game ends.
func (s *Session) Run(ctx context.Context) (game.Outcome, error) {
	for !s.state.IsTerminal() {
		if err := s.Step(ctx); err != nil {
			return game.Ongoing, err
		}
	}
	return s.state.Outcome(), nil
}

func (s *Session) gameOverMessage(outcome game.Outcome) string {
	winner := outcome.Winner()
	if winner == game.Empty {
		return "Game Over! Draw!"
	}
	for _, p := range s.players {
		if p.Mark() == winner {
			return fmt.Sprintf("Game Over! %s (%v) is the winner!", p.Name(), winner)
		}
	}
	return fmt.Sprintf("Game Over! %v is the winner!", winner)
}
