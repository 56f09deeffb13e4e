package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rocketscienceinc/resobingo-backend/internal/apperror"
	"github.com/rocketscienceinc/resobingo-backend/internal/bingo"
	"github.com/rocketscienceinc/resobingo-backend/internal/entity"
)

// MaxSquareTextLength is the longest text a square accepts through PutBoard.
const MaxSquareTextLength = 500

type boardStore interface {
	LoadBoard(ctx context.Context, userID string) (*entity.Board, error)
	SaveBoard(ctx context.Context, userID string, board *entity.Board) error
	LoadLists(ctx context.Context, userID string) (*entity.ResolutionLists, error)
	SaveLists(ctx context.Context, userID string, lists *entity.ResolutionLists) error
	Clear(ctx context.Context, userID string) error
}

// MutationResult is what a user action on the card produced.
type MutationResult struct {
	Board    *entity.Board `json:"board"`
	HasBingo bool          `json:"hasBingo"`
	// NewBingo is true when the card had no bingo before this action and has one now.
	NewBingo bool `json:"newBingo"`
}

type BoardOption func(*BoardManager)

func WithRemoteStore(store boardStore) BoardOption {
	return func(that *BoardManager) {
		that.remoteStore = store
	}
}

func WithSyncQueue(size int, timeout time.Duration) BoardOption {
	return func(that *BoardManager) {
		that.syncQueueSize = size
		that.syncTimeout = timeout
	}
}

func WithGenerator(generator *bingo.Generator) BoardOption {
	return func(that *BoardManager) {
		that.generator = generator
	}
}

// BoardManager runs every card operation for one user at a time: load, apply the
// engine, persist locally, then mirror the result to the remote store if there is one.
type BoardManager struct {
	logger    *slog.Logger
	local     boardStore
	generator *bingo.Generator

	// userLocks holds a *sync.Mutex per user id, taken from load through save.
	userLocks sync.Map

	remoteStore   boardStore
	remote        *remoteSync
	syncQueueSize int
	syncTimeout   time.Duration
}

func NewBoardManager(logger *slog.Logger, local boardStore, opts ...BoardOption) *BoardManager {
	manager := &BoardManager{
		logger:        logger.With("component", "board-manager"),
		local:         local,
		generator:     bingo.NewGenerator(),
		syncQueueSize: defaultSyncQueueSize,
		syncTimeout:   defaultSyncTimeout,
	}

	for _, opt := range opts {
		opt(manager)
	}

	if manager.remoteStore != nil {
		manager.remote = newRemoteSync(logger, manager.remoteStore, manager.syncQueueSize, manager.syncTimeout)
	}

	return manager
}

func (that *BoardManager) lockUser(userID string) func() {
	value, _ := that.userLocks.LoadOrStore(userID, &sync.Mutex{})
	mu, _ := value.(*sync.Mutex)
	mu.Lock()

	return mu.Unlock
}

// Close flushes pending remote writes.
func (that *BoardManager) Close() {
	if that.remote != nil {
		that.remote.Close()
	}
}

// GetBoard returns the user's card, falling back to the remote copy when there is
// no local one. The result always has exactly one boss square.
func (that *BoardManager) GetBoard(ctx context.Context, userID string) (*entity.Board, error) {
	defer that.lockUser(userID)()

	return that.loadBoard(ctx, userID)
}

func (that *BoardManager) loadBoard(ctx context.Context, userID string) (*entity.Board, error) {
	log := that.logger.With("method", "loadBoard", "user_id", userID)

	board, err := that.local.LoadBoard(ctx, userID)
	switch {
	case err == nil:
	case errors.Is(err, apperror.ErrBoardNotFound), errors.Is(err, apperror.ErrInvalidBoardData):
		if errors.Is(err, apperror.ErrInvalidBoardData) {
			log.Warn("stored board is unreadable, ignoring it", "error", err)
		}

		board, err = that.loadRemoteBoard(ctx, userID)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("failed to load board: %w", err)
	}

	repaired := board.RepairBoss()
	if repaired.Squares != board.Squares {
		log.Info("repaired boss square on load", "bosses", len(board.BossIndices()))
		that.saveBoardLocal(ctx, userID, repaired)
	}

	return repaired, nil
}

func (that *BoardManager) loadRemoteBoard(ctx context.Context, userID string) (*entity.Board, error) {
	if that.remoteStore == nil {
		return nil, apperror.ErrBoardNotFound
	}

	board, err := that.remoteStore.LoadBoard(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrBoardNotFound) {
			return nil, apperror.ErrBoardNotFound
		}

		that.logger.Warn("failed to load remote board", "user_id", userID, "error", err)
		return nil, apperror.ErrBoardNotFound
	}

	that.saveBoardLocal(ctx, userID, board)

	return board, nil
}

// GetLists returns the stored lists, or empty lists when the user has none.
func (that *BoardManager) GetLists(ctx context.Context, userID string) (*entity.ResolutionLists, error) {
	defer that.lockUser(userID)()

	return that.loadLists(ctx, userID)
}

func (that *BoardManager) loadLists(ctx context.Context, userID string) (*entity.ResolutionLists, error) {
	lists, err := that.local.LoadLists(ctx, userID)
	if err == nil {
		return lists, nil
	}

	if !errors.Is(err, apperror.ErrListsNotFound) && !errors.Is(err, apperror.ErrInvalidListsData) {
		return nil, fmt.Errorf("failed to load lists: %w", err)
	}

	if that.remoteStore != nil {
		remoteLists, remoteErr := that.remoteStore.LoadLists(ctx, userID)
		if remoteErr == nil {
			that.saveListsLocal(ctx, userID, remoteLists)
			return remoteLists, nil
		}

		if !errors.Is(remoteErr, apperror.ErrListsNotFound) {
			that.logger.Warn("failed to load remote lists", "user_id", userID, "error", remoteErr)
		}
	}

	return entity.NewResolutionLists(nil, nil), nil
}

// SaveLists stores the lists after checking they can fill a card. Entries are
// trimmed and de-duplicated before they are written.
func (that *BoardManager) SaveLists(ctx context.Context, userID string, lists *entity.ResolutionLists) (*entity.ResolutionLists, error) {
	if result := bingo.ValidateLists(lists.Standard, lists.Boss); !result.Valid {
		return nil, result.Err
	}

	cleaned := entity.NewResolutionLists(bingo.UniqueItems(lists.Standard), bingo.UniqueItems(lists.Boss))

	defer that.lockUser(userID)()

	that.saveListsLocal(ctx, userID, cleaned)
	that.syncLists(userID, cleaned)

	return cleaned, nil
}

// NewBoard lays out a fresh card from the stored lists, replacing the current one.
func (that *BoardManager) NewBoard(ctx context.Context, userID string) (*entity.Board, error) {
	defer that.lockUser(userID)()

	lists, err := that.loadLists(ctx, userID)
	if err != nil {
		return nil, err
	}

	board, err := that.generator.Generate(lists.Standard, lists.Boss)
	if err != nil {
		return nil, fmt.Errorf("failed to generate board: %w", err)
	}

	that.saveBoardLocal(ctx, userID, board)
	that.syncBoard(userID, board)

	return board, nil
}

// GenerateFromLists saves new lists and builds a card from them.
func (that *BoardManager) GenerateFromLists(ctx context.Context, userID string, lists *entity.ResolutionLists) (*entity.Board, error) {
	if _, err := that.SaveLists(ctx, userID, lists); err != nil {
		return nil, err
	}

	return that.NewBoard(ctx, userID)
}

func (that *BoardManager) ToggleSquare(ctx context.Context, userID string, index int) (*MutationResult, error) {
	return that.mutate(ctx, userID, "ToggleSquare", func(board *entity.Board) (*entity.Board, error) {
		return bingo.ToggleSquare(board, index)
	})
}

func (that *BoardManager) EditSquare(ctx context.Context, userID string, index int, text string, isBoss *bool) (*MutationResult, error) {
	return that.mutate(ctx, userID, "EditSquare", func(board *entity.Board) (*entity.Board, error) {
		return bingo.UpdateSquare(board, index, text, isBoss)
	})
}

func (that *BoardManager) ResetProgress(ctx context.Context, userID string) (*MutationResult, error) {
	return that.mutate(ctx, userID, "ResetProgress", func(board *entity.Board) (*entity.Board, error) {
		return bingo.ResetProgress(board), nil
	})
}

func (that *BoardManager) mutate(
	ctx context.Context,
	userID, method string,
	apply func(board *entity.Board) (*entity.Board, error),
) (*MutationResult, error) {
	defer that.lockUser(userID)()

	board, err := that.loadBoard(ctx, userID)
	if err != nil {
		return nil, err
	}

	hadBingo := bingo.HasBingo(board.Squares)

	next, err := apply(board)
	if err != nil {
		return nil, fmt.Errorf("failed to apply %s: %w", method, err)
	}

	that.saveBoardLocal(ctx, userID, next)
	that.syncBoard(userID, next)

	hasBingo := bingo.HasBingo(next.Squares)
	if hasBingo && !hadBingo {
		that.logger.Info("bingo", "method", method, "user_id", userID)
	}

	return &MutationResult{
		Board:    next,
		HasBingo: hasBingo,
		NewBingo: hasBingo && !hadBingo,
	}, nil
}

// PutBoard replaces the whole card with one supplied by a client. Square texts
// must hold 1 to MaxSquareTextLength characters; the boss flag is repaired.
func (that *BoardManager) PutBoard(ctx context.Context, userID string, squares [entity.BoardSize]entity.Cell) (*entity.Board, error) {
	for i, cell := range squares {
		text := strings.TrimSpace(cell.Text)
		if text == "" {
			return nil, fmt.Errorf("%w: square %d", apperror.ErrEmptySquareText, i)
		}

		if utf8.RuneCountInString(text) > MaxSquareTextLength {
			return nil, fmt.Errorf("%w: square %d has more than %d characters", apperror.ErrSquareTextTooLong, i, MaxSquareTextLength)
		}

		squares[i].Text = text
	}

	defer that.lockUser(userID)()

	createdAt := time.Now().UTC().Truncate(time.Millisecond)
	if current, err := that.loadBoard(ctx, userID); err == nil {
		createdAt = current.CreatedAt
	}

	board := (&entity.Board{Squares: squares, CreatedAt: createdAt}).RepairBoss()

	that.saveBoardLocal(ctx, userID, board)
	that.syncBoard(userID, board)

	return board, nil
}

// Export builds the backup document for the user's current card.
func (that *BoardManager) Export(ctx context.Context, userID string) (*entity.ExportDocument, error) {
	defer that.lockUser(userID)()

	board, err := that.loadBoard(ctx, userID)
	if err != nil {
		return nil, err
	}

	lists, err := that.loadLists(ctx, userID)
	if err != nil {
		return nil, err
	}

	document := bingo.Export(board, lists)

	return &document, nil
}

// Import validates a backup document and, only when it is valid, replaces the
// card and the lists it carries.
func (that *BoardManager) Import(ctx context.Context, userID string, raw []byte) (*entity.Board, error) {
	result := bingo.ValidateImport(raw)
	if !result.Valid {
		return nil, result.Err
	}

	defer that.lockUser(userID)()

	that.saveBoardLocal(ctx, userID, result.Data.Board)
	that.syncBoard(userID, result.Data.Board)

	if result.Data.UserLists != nil {
		that.saveListsLocal(ctx, userID, result.Data.UserLists)
		that.syncLists(userID, result.Data.UserLists)
	}

	return result.Data.Board, nil
}

// ClearData removes the card and lists of a user everywhere.
func (that *BoardManager) ClearData(ctx context.Context, userID string) error {
	defer that.lockUser(userID)()

	if err := that.local.Clear(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear data: %w", err)
	}

	if that.remote != nil {
		that.remote.enqueue(syncJob{
			name:   "clear",
			userID: userID,
			run: func(ctx context.Context, store boardStore) error {
				return store.Clear(ctx, userID)
			},
		})
	}

	return nil
}

func (that *BoardManager) saveBoardLocal(ctx context.Context, userID string, board *entity.Board) {
	if err := that.local.SaveBoard(ctx, userID, board); err != nil {
		that.logger.Error("failed to save board", "user_id", userID, "error", err)
	}
}

func (that *BoardManager) saveListsLocal(ctx context.Context, userID string, lists *entity.ResolutionLists) {
	if err := that.local.SaveLists(ctx, userID, lists); err != nil {
		that.logger.Error("failed to save lists", "user_id", userID, "error", err)
	}
}

func (that *BoardManager) syncBoard(userID string, board *entity.Board) {
	if that.remote == nil {
		return
	}

	snapshot := *board
	that.remote.enqueue(syncJob{
		name:   "board",
		userID: userID,
		run: func(ctx context.Context, store boardStore) error {
			return store.SaveBoard(ctx, userID, &snapshot)
		},
	})
}

func (that *BoardManager) syncLists(userID string, lists *entity.ResolutionLists) {
	if that.remote == nil {
		return
	}

	snapshot := entity.NewResolutionLists(lists.Standard, lists.Boss)
	that.remote.enqueue(syncJob{
		name:   "lists",
		userID: userID,
		run: func(ctx context.Context, store boardStore) error {
			return store.SaveLists(ctx, userID, snapshot)
		},
	})
}
