package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rocketscienceinc/resobingo-backend/internal/apperror"
	"github.com/rocketscienceinc/resobingo-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type boardStore interface {
	LoadBoard(ctx context.Context, userID string) (*entity.Board, error)
	SaveBoard(ctx context.Context, userID string, board *entity.Board) error
	LoadLists(ctx context.Context, userID string) (*entity.ResolutionLists, error)
	SaveLists(ctx context.Context, userID string, lists *entity.ResolutionLists) error
	Clear(ctx context.Context, userID string) error
}

func testBoard() *entity.Board {
	board := &entity.Board{CreatedAt: time.Date(2026, time.January, 1, 8, 0, 0, 123000000, time.UTC)}
	for i := range board.Squares {
		board.Squares[i].Text = fmt.Sprintf("Resolution %d", i)
	}
	board.Squares[entity.CenterIndex].IsBoss = true
	board.Squares[3].Marked = true

	return board
}

// runBoardStoreContract checks the behavior every persistence adapter shares.
func runBoardStoreContract(ctx context.Context, t *testing.T, newStore func() boardStore) {
	t.Helper()

	t.Run("LoadBoard_NotFound", func(t *testing.T) {
		store := newStore()

		// When: loading a board that was never saved
		board, err := store.LoadBoard(ctx, "nobody")

		// Then: the absence is reported
		require.ErrorIs(t, err, apperror.ErrBoardNotFound)
		assert.Nil(t, board)
	})

	t.Run("SaveBoard_Roundtrip", func(t *testing.T) {
		store := newStore()

		// Given: a saved board
		board := testBoard()
		require.NoError(t, store.SaveBoard(ctx, "user-1", board))

		// When: loading it back
		loaded, err := store.LoadBoard(ctx, "user-1")

		// Then: the same board comes back
		require.NoError(t, err)
		assert.Equal(t, board, loaded)
	})

	t.Run("SaveBoard_Overwrites", func(t *testing.T) {
		store := newStore()

		// Given: a board saved twice
		board := testBoard()
		require.NoError(t, store.SaveBoard(ctx, "user-1", board))

		board.Squares[3].Marked = false
		board.Squares[4].Text = "Changed"
		require.NoError(t, store.SaveBoard(ctx, "user-1", board))

		// When: loading it back
		loaded, err := store.LoadBoard(ctx, "user-1")

		// Then: the last write wins
		require.NoError(t, err)
		assert.Equal(t, board, loaded)
	})

	t.Run("LoadLists_NotFound", func(t *testing.T) {
		store := newStore()

		lists, err := store.LoadLists(ctx, "nobody")

		require.ErrorIs(t, err, apperror.ErrListsNotFound)
		assert.Nil(t, lists)
	})

	t.Run("SaveLists_Roundtrip", func(t *testing.T) {
		store := newStore()

		// Given: saved lists, one of them empty
		lists := entity.NewResolutionLists([]string{"Read", "Run"}, nil)
		require.NoError(t, store.SaveLists(ctx, "user-1", lists))

		// When: loading them back
		loaded, err := store.LoadLists(ctx, "user-1")

		// Then: empty lists come back as empty, not nil
		require.NoError(t, err)
		assert.Equal(t, []string{"Read", "Run"}, loaded.Standard)
		assert.Equal(t, []string{}, loaded.Boss)
	})

	t.Run("Clear_RemovesOnlyThatUser", func(t *testing.T) {
		store := newStore()

		// Given: data for two users
		for _, userID := range []string{"user-1", "user-2"} {
			require.NoError(t, store.SaveBoard(ctx, userID, testBoard()))
			require.NoError(t, store.SaveLists(ctx, userID, entity.NewResolutionLists([]string{"a"}, []string{"b"})))
		}

		// When: clearing the first user twice
		require.NoError(t, store.Clear(ctx, "user-1"))
		require.NoError(t, store.Clear(ctx, "user-1"))

		// Then: the first user has nothing and the second is untouched
		_, err := store.LoadBoard(ctx, "user-1")
		require.ErrorIs(t, err, apperror.ErrBoardNotFound)
		_, err = store.LoadLists(ctx, "user-1")
		require.ErrorIs(t, err, apperror.ErrListsNotFound)

		_, err = store.LoadBoard(ctx, "user-2")
		require.NoError(t, err)
		_, err = store.LoadLists(ctx, "user-2")
		require.NoError(t, err)
	})
}
