package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameView - everything a renderer needs to draw one game.
type GameView struct {
	ID          string                                      `json:"id"`
	Board       entity.Board                                `json:"board"`
	Rows        [entity.RowSize][entity.RowSize]entity.Mark `json:"rows"`
	Status      string                                      `json:"status"`
	NextMark    entity.Mark                                 `json:"next_mark"`
	Winner      entity.Mark                                 `json:"winner,omitempty"`
	CurrentMove int                                         `json:"current_move"`
	Order       tictactoe.SortOrder                         `json:"order"`
	Moves       []tictactoe.MoveDescription                 `json:"moves"`
}

// GameManager keeps one game per session ID in the repository.
// Calls for the same session are serialized; the controller itself is not safe for concurrent use.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	locks    *sessionLocks
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo: gameRepo,
		locks:    newSessionLocks(),
	}
}

func (that *GameManager) NewGame(ctx context.Context, order tictactoe.SortOrder) (*GameView, error) {
	controller := tictactoe.NewGameController()

	game := controller.Snapshot()
	game.ID = uuid.NewString()

	if err := that.gameRepo.CreateOrUpdate(ctx, &game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "game_id", game.ID)

	return newGameView(game.ID, controller, order), nil
}

func (that *GameManager) GetGame(ctx context.Context, id string, order tictactoe.SortOrder) (*GameView, error) {
	controller, err := that.loadController(ctx, id)
	if err != nil {
		return nil, err
	}

	return newGameView(id, controller, order), nil
}

// Play - plays the cell in the session's game. A rejected move returns the unchanged view together with the error.
func (that *GameManager) Play(ctx context.Context, id string, cell int, order tictactoe.SortOrder) (*GameView, error) {
	return that.update(ctx, id, order, func(controller *tictactoe.GameController) error {
		return controller.Play(cell)
	})
}

// JumpTo - shows an earlier or later board of the session's game. A rejected jump returns the unchanged view together with the error.
func (that *GameManager) JumpTo(ctx context.Context, id string, move int, order tictactoe.SortOrder) (*GameView, error) {
	return that.update(ctx, id, order, func(controller *tictactoe.GameController) error {
		return controller.JumpTo(move)
	})
}

func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	unlock := that.locks.lock(id)
	defer unlock()

	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "game_id", id)

	return nil
}

func (that *GameManager) update(
	ctx context.Context,
	id string,
	order tictactoe.SortOrder,
	apply func(controller *tictactoe.GameController) error,
) (*GameView, error) {
	log := that.logger.With("method", "update", "game_id", id)

	unlock := that.locks.lock(id)
	defer unlock()

	controller, err := that.loadController(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = apply(controller); err != nil {
		log.Debug("move rejected", "error", err)
		return newGameView(id, controller, order), fmt.Errorf("failed to apply move: %w", err)
	}

	game := controller.Snapshot()
	game.ID = id

	if err = that.gameRepo.CreateOrUpdate(ctx, &game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	log.Debug("game updated", "current_move", controller.CurrentMove(), "status", controller.Status())

	return newGameView(id, controller, order), nil
}

func (that *GameManager) loadController(ctx context.Context, id string) (*tictactoe.GameController, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	controller, err := tictactoe.RestoreGameController(*game)
	if err != nil {
		that.logger.Error("stored game is corrupted", "game_id", id, "error", err)

		return nil, fmt.Errorf("failed to restore game: %w", err)
	}

	return controller, nil
}

func newGameView(id string, controller *tictactoe.GameController, order tictactoe.SortOrder) *GameView {
	board := controller.CurrentBoard()

	return &GameView{
		ID:          id,
		Board:       board,
		Rows:        board.Rows(),
		Status:      controller.Status(),
		NextMark:    controller.NextMark(),
		Winner:      controller.Winner(),
		CurrentMove: controller.CurrentMove(),
		Order:       order,
		Moves:       controller.MoveDescriptions(order),
	}
}
