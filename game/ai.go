package game

import (
	"fmt"
	"math"
)

// Score is the minimax value of a position.
type Score int

const (
	ScoreLoss Score = -10
	ScoreDraw Score = 0
	ScoreWin  Score = 10
)

// AI represents a computer player.
// The AI is implemented using the minimax algorithm.
type AI struct {
	game *Game
	mark Cell
}

// NewAI creates a new AI playing mark on g.
func NewAI(g *Game, mark Cell) *AI {
	return &AI{game: g, mark: mark}
}

// NextMove returns the next move that the AI should make.
func (a *AI) NextMove() (Move, error) {
	return BestMoveFor(a.game, a.mark)
}

// BestMove returns the optimal move for Circle.
func BestMove(g *Game) (Move, error) {
	return BestMoveFor(g, Circle)
}

// BestMoveFor returns the optimal move for self, assuming the opponent plays
// optimally as well. Ties go to the first move in row-major order.
func BestMoveFor(g *Game, self Cell) (Move, error) {
	if !self.IsMark() {
		return Move{}, fmt.Errorf("%w: %d", ErrInvalidMark, self)
	}
	if g.Outcome() != Ongoing {
		if g.Moves == 9 {
			return Move{}, ErrSearchOnFullBoard
		}
		return Move{}, ErrGameOver
	}

	var (
		bestValue = Score(math.MinInt)
		bestMove  Move
		found     bool
	)

	for m := range g.EmptyCells() {
		g2 := *g
		g2.Apply(m, self)

		value := Evaluate(&g2, self.Opponent(), self)
		if value > bestValue {
			bestValue = value
			bestMove = m
			found = true
		}
	}

	if !found {
		return Move{}, ErrSearchOnFullBoard
	}
	return bestMove, nil
}

// Evaluate returns the minimax value of g from self's point of view, with
// toMove being the side about to play.
func Evaluate(g *Game, toMove, self Cell) Score {
	switch outcome := g.Outcome(); outcome {
	case Draw:
		return ScoreDraw
	case CircleWins, CrossWins:
		if outcome.Winner() == self {
			return ScoreWin
		}
		return ScoreLoss
	}

	maximizing := toMove == self

	var bestValue Score
	if maximizing {
		bestValue = Score(math.MinInt)
	} else {
		bestValue = Score(math.MaxInt)
	}

	var explored bool
	for m := range g.EmptyCells() {
		g2 := *g
		g2.Apply(m, toMove)
		explored = true

		value := Evaluate(&g2, toMove.Opponent(), self)
		if maximizing {
			bestValue = max(bestValue, value)
		} else {
			bestValue = min(bestValue, value)
		}
	}

	if !explored {
		// Only reachable with an inconsistent move counter.
		return ScoreDraw
	}
	return bestValue
}
