package repository

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGameRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores and returns a copy", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()

		// Given: a stored game
		game := newTestGame("123")
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: the caller keeps modifying its own value
		game.History[1][0] = entity.PlayerO
		game.CurrentMove = 0

		// Then: the stored game is unaffected
		retrievedGame, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, newTestGame("123"), retrievedGame)

		// When: the returned value is modified
		retrievedGame.History[1][4] = entity.EmptyCell

		// Then: the stored game is still unaffected
		again, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, again.History[1][4])
	})

	t.Run("Update overwrites", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, newTestGame("123")))

		updated := newTestGame("123")
		updated.CurrentMove = 0
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, updated))

		retrievedGame, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, 0, retrievedGame.CurrentMove)
	})

	t.Run("Not found", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()

		_, err := gameRepo.GetByID(ctx, "missing")
		require.ErrorIs(t, err, ErrGameNotFound)

		err = gameRepo.DeleteByID(ctx, "missing")
		require.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, newTestGame("123")))

		require.NoError(t, gameRepo.DeleteByID(ctx, "123"))

		_, err := gameRepo.GetByID(ctx, "123")
		require.ErrorIs(t, err, ErrGameNotFound)
	})
}
