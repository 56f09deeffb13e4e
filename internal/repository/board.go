package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/resobingo-backend/internal/apperror"
	"github.com/rocketscienceinc/resobingo-backend/internal/entity"
)

// RedisBoardStore keeps one board and one pair of lists per user as JSON blobs.
type RedisBoardStore struct {
	client *redis.Client
}

func NewRedisBoardStore(client *redis.Client) *RedisBoardStore {
	return &RedisBoardStore{
		client: client,
	}
}

func boardKey(userID string) string {
	return "board:" + userID
}

func listsKey(userID string) string {
	return "lists:" + userID
}

func (that *RedisBoardStore) LoadBoard(ctx context.Context, userID string) (*entity.Board, error) {
	response, err := that.client.Get(ctx, boardKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrBoardNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get board: %w", err)
	}

	var board entity.Board
	if err = json.Unmarshal([]byte(response), &board); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidBoardData, err)
	}

	return &board, nil
}

func (that *RedisBoardStore) SaveBoard(ctx context.Context, userID string, board *entity.Board) error {
	boardJSON, err := json.Marshal(board)
	if err != nil {
		return fmt.Errorf("could not marshal board: %w", err)
	}

	if err = that.client.Set(ctx, boardKey(userID), boardJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set board: %w", err)
	}

	return nil
}

func (that *RedisBoardStore) LoadLists(ctx context.Context, userID string) (*entity.ResolutionLists, error) {
	response, err := that.client.Get(ctx, listsKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrListsNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get lists: %w", err)
	}

	var lists entity.ResolutionLists
	if err = json.Unmarshal([]byte(response), &lists); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidListsData, err)
	}

	return entity.NewResolutionLists(lists.Standard, lists.Boss), nil
}

func (that *RedisBoardStore) SaveLists(ctx context.Context, userID string, lists *entity.ResolutionLists) error {
	listsJSON, err := json.Marshal(entity.NewResolutionLists(lists.Standard, lists.Boss))
	if err != nil {
		return fmt.Errorf("could not marshal lists: %w", err)
	}

	if err = that.client.Set(ctx, listsKey(userID), listsJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set lists: %w", err)
	}

	return nil
}

func (that *RedisBoardStore) Clear(ctx context.Context, userID string) error {
	if err := that.client.Del(ctx, boardKey(userID), listsKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete user data: %w", err)
	}

	return nil
}
