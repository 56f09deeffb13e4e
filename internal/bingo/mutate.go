package bingo

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/resobingo-backend/internal/apperror"
	"github.com/rocketscienceinc/resobingo-backend/internal/entity"
)

// ToggleSquare returns a copy of the board with the marked flag of one square flipped.
func ToggleSquare(board *entity.Board, index int) (*entity.Board, error) {
	if !board.IsValidIndex(index) {
		return nil, fmt.Errorf("%w: %d", apperror.ErrIndexOutOfRange, index)
	}

	next := *board
	next.Squares[index].Marked = !next.Squares[index].Marked

	return &next, nil
}

// UpdateSquare edits the text of a square and optionally its boss flag.
//
// Promoting a square clears the flag everywhere else. The current boss cannot
// be demoted; the role only moves by promoting another square. A nil isBoss
// leaves every flag as it was.
func UpdateSquare(board *entity.Board, index int, text string, isBoss *bool) (*entity.Board, error) {
	if !board.IsValidIndex(index) {
		return nil, fmt.Errorf("%w: %d", apperror.ErrIndexOutOfRange, index)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: square %d", apperror.ErrEmptySquareText, index)
	}

	next := *board
	next.Squares[index].Text = text

	if isBoss == nil {
		return &next, nil
	}

	currentBoss := board.BossIndex()

	switch {
	case *isBoss:
		for i := range next.Squares {
			next.Squares[i].IsBoss = i == index
		}
	case index == currentBoss:
		next.Squares[index].IsBoss = true
	default:
		next.Squares[index].IsBoss = false
	}

	return &next, nil
}

// ResetProgress returns a copy of the board with every square unmarked.
func ResetProgress(board *entity.Board) *entity.Board {
	next := *board
	for i := range next.Squares {
		next.Squares[i].Marked = false
	}

	return &next
}
