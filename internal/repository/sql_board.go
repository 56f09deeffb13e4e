package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/resobingo-backend/internal/apperror"
	"github.com/rocketscienceinc/resobingo-backend/internal/entity"
)

// SQLBoardStore keeps boards and lists in relational tables, one row per user.
// Squares and lists are stored as JSON text.
type SQLBoardStore struct {
	conn   *sql.DB
	driver string
	now    func() time.Time
}

func NewSQLBoardStore(conn *sql.DB, driver string) *SQLBoardStore {
	return &SQLBoardStore{
		conn:   conn,
		driver: driver,
		now:    time.Now,
	}
}

func (that *SQLBoardStore) LoadBoard(ctx context.Context, userID string) (*entity.Board, error) {
	query := rebind(that.driver, `SELECT squares, created_at FROM boards WHERE user_id = ?`)

	var squares, createdAt string

	err := that.conn.QueryRowContext(ctx, query, userID).Scan(&squares, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrBoardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find board: %w", err)
	}

	board := &entity.Board{}
	if err = json.Unmarshal([]byte(squares), &board.Squares); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidBoardData, err)
	}

	board.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidBoardData, err)
	}

	return board, nil
}

func (that *SQLBoardStore) SaveBoard(ctx context.Context, userID string, board *entity.Board) error {
	squares, err := json.Marshal(board.Squares)
	if err != nil {
		return fmt.Errorf("could not marshal squares: %w", err)
	}

	query := rebind(that.driver, `INSERT INTO boards (id, user_id, squares, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			squares = excluded.squares,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at`)

	_, err = that.conn.ExecContext(ctx, query,
		uuid.NewString(),
		userID,
		string(squares),
		board.CreatedAt.UTC().Format(time.RFC3339Nano),
		that.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("can't save board: %w", err)
	}

	return nil
}

func (that *SQLBoardStore) LoadLists(ctx context.Context, userID string) (*entity.ResolutionLists, error) {
	query := rebind(that.driver, `SELECT standard_resolutions, boss_resolutions FROM user_lists WHERE user_id = ?`)

	var standard, boss string

	err := that.conn.QueryRowContext(ctx, query, userID).Scan(&standard, &boss)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrListsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find lists: %w", err)
	}

	var lists entity.ResolutionLists
	if err = json.Unmarshal([]byte(standard), &lists.Standard); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidListsData, err)
	}
	if err = json.Unmarshal([]byte(boss), &lists.Boss); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidListsData, err)
	}

	return entity.NewResolutionLists(lists.Standard, lists.Boss), nil
}

func (that *SQLBoardStore) SaveLists(ctx context.Context, userID string, lists *entity.ResolutionLists) error {
	normalized := entity.NewResolutionLists(lists.Standard, lists.Boss)

	standard, err := json.Marshal(normalized.Standard)
	if err != nil {
		return fmt.Errorf("could not marshal standard list: %w", err)
	}

	boss, err := json.Marshal(normalized.Boss)
	if err != nil {
		return fmt.Errorf("could not marshal boss list: %w", err)
	}

	query := rebind(that.driver, `INSERT INTO user_lists (user_id, standard_resolutions, boss_resolutions, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			standard_resolutions = excluded.standard_resolutions,
			boss_resolutions = excluded.boss_resolutions,
			updated_at = excluded.updated_at`)

	_, err = that.conn.ExecContext(ctx, query,
		userID,
		string(standard),
		string(boss),
		that.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("can't save lists: %w", err)
	}

	return nil
}

func (that *SQLBoardStore) Clear(ctx context.Context, userID string) error {
	return withTx(ctx, that.conn, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, rebind(that.driver, `DELETE FROM boards WHERE user_id = ?`), userID); err != nil {
			return fmt.Errorf("can't delete board: %w", err)
		}

		if _, err := tx.ExecContext(ctx, rebind(that.driver, `DELETE FROM user_lists WHERE user_id = ?`), userID); err != nil {
			return fmt.Errorf("can't delete lists: %w", err)
		}

		return nil
	})
}
