package tictactoe

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

const gameStartLabel = "Go to game start"

// MoveDescription - one entry of the move list.
type MoveDescription struct {
	MoveIndex int    `json:"move"`
	Label     string `json:"label"`
	IsCurrent bool   `json:"is_current"`
}

// Caption - the text shown for the entry. The current move is shown as plain text, not as a jump link.
func (that MoveDescription) Caption() string {
	if that.IsCurrent {
		return fmt.Sprintf("You are at move #%d", that.MoveIndex)
	}

	return that.Label
}

// GameController owns the board history of one game and the move currently shown.
// history[0] is the empty board, history[i] is the board after move i.
type GameController struct {
	history     []entity.Board
	currentMove int
}

func NewGameController() *GameController {
	return &GameController{
		history: []entity.Board{{}},
	}
}

// RestoreGameController - rebuilds a controller from a snapshot, rejecting histories that Play could not have produced.
func RestoreGameController(game entity.Game) (*GameController, error) {
	if err := validateHistory(game.History); err != nil {
		return nil, err
	}

	if game.CurrentMove < 0 || game.CurrentMove >= len(game.History) {
		return nil, fmt.Errorf("%w: current move %d, history length %d",
			apperror.ErrCorruptedGame, game.CurrentMove, len(game.History))
	}

	return &GameController{
		history:     slices.Clone(game.History),
		currentMove: game.CurrentMove,
	}, nil
}

// Snapshot - copies the state out. The returned game has no ID; the owner of the session sets it.
func (that *GameController) Snapshot() entity.Game {
	return entity.Game{
		History:     slices.Clone(that.history),
		CurrentMove: that.currentMove,
	}
}

func (that *GameController) CurrentBoard() entity.Board {
	return that.history[that.currentMove]
}

func (that *GameController) CurrentMove() int {
	return that.currentMove
}

func (that *GameController) HistoryLen() int {
	return len(that.history)
}

func (that *GameController) NextMark() entity.Mark {
	return markForMove(that.currentMove)
}

func (that *GameController) Winner() entity.Mark {
	return DetectWinner(that.CurrentBoard())
}

// Status - "Winner: <mark>" or "Next player: <mark>".
// A full board without a winner still reports the next player; draws are not told apart.
func (that *GameController) Status() string {
	if winner := that.Winner(); winner != entity.EmptyCell {
		return fmt.Sprintf("Winner: %s", winner)
	}

	return fmt.Sprintf("Next player: %s", that.NextMark())
}

// Play - puts the next mark on the cell of the current board.
// Moves after the current one are discarded before the new board is appended.
// On a full board every cell is occupied, so Play always fails there.
func (that *GameController) Play(cell int) error {
	board := that.CurrentBoard()

	if cell < 0 || cell >= len(board) {
		return fmt.Errorf("%w: cell %d is outside the board", apperror.ErrIllegalMove, cell)
	}

	if winner := DetectWinner(board); winner != entity.EmptyCell {
		return fmt.Errorf("%w: game is already won by %s", apperror.ErrIllegalMove, winner)
	}

	if board[cell] != entity.EmptyCell {
		return fmt.Errorf("%w: cell %d is already occupied", apperror.ErrIllegalMove, cell)
	}

	board[cell] = that.NextMark()

	that.history = append(that.history[:that.currentMove+1], board)
	that.currentMove = len(that.history) - 1

	return nil
}

// JumpTo - shows the board after the given move. The history is left as is.
func (that *GameController) JumpTo(move int) error {
	if move < 0 || move >= len(that.history) {
		return fmt.Errorf("%w: move %d, history has %d entries", apperror.ErrOutOfRange, move, len(that.history))
	}

	that.currentMove = move

	return nil
}

// MoveDescriptions - the move list in the requested order. Labels always carry the real move index.
func (that *GameController) MoveDescriptions(order SortOrder) []MoveDescription {
	moves := make([]MoveDescription, 0, len(that.history))

	for move := range that.history {
		moves = append(moves, MoveDescription{
			MoveIndex: move,
			Label:     moveLabel(move),
			IsCurrent: move == that.currentMove,
		})
	}

	if order == Descending {
		slices.Reverse(moves)
	}

	return moves
}

func moveLabel(move int) string {
	if move == 0 {
		return gameStartLabel
	}

	return fmt.Sprintf("Go to move #%d", move)
}

// markForMove - the mark that plays after the given move. X opens the game.
func markForMove(move int) entity.Mark {
	if move%2 == 0 {
		return entity.PlayerX
	}

	return entity.PlayerO
}

func validateHistory(history []entity.Board) error {
	if len(history) == 0 {
		return fmt.Errorf("%w: history is empty", apperror.ErrCorruptedGame)
	}

	if !history[0].IsEmpty() {
		return fmt.Errorf("%w: game does not start from an empty board", apperror.ErrCorruptedGame)
	}

	for move := 1; move < len(history); move++ {
		prev, next := history[move-1], history[move]

		if DetectWinner(prev) != entity.EmptyCell {
			return fmt.Errorf("%w: move %d played after the game was won", apperror.ErrCorruptedGame, move)
		}

		changed := 0
		for cell := range prev {
			if prev[cell] == next[cell] {
				continue
			}

			if prev[cell] != entity.EmptyCell || next[cell] != markForMove(move-1) {
				return fmt.Errorf("%w: move %d changes cell %d from %q to %q",
					apperror.ErrCorruptedGame, move, cell, prev[cell], next[cell])
			}

			changed++
		}

		if changed != 1 {
			return fmt.Errorf("%w: move %d changes %d cells", apperror.ErrCorruptedGame, move, changed)
		}
	}

	return nil
}
