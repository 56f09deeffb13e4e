package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/resobingo-backend/internal/apperror"
	"github.com/rocketscienceinc/resobingo-backend/internal/entity"
	"github.com/stretchr/testify/mock"
)

type mockBoardStore struct {
	mock.Mock
}

func (m *mockBoardStore) LoadBoard(ctx context.Context, userID string) (*entity.Board, error) {
	args := m.Called(ctx, userID)
	board, _ := args.Get(0).(*entity.Board)
	return board, args.Error(1)
}

func (m *mockBoardStore) SaveBoard(ctx context.Context, userID string, board *entity.Board) error {
	return m.Called(ctx, userID, board).Error(0)
}

func (m *mockBoardStore) LoadLists(ctx context.Context, userID string) (*entity.ResolutionLists, error) {
	args := m.Called(ctx, userID)
	lists, _ := args.Get(0).(*entity.ResolutionLists)
	return lists, args.Error(1)
}

func (m *mockBoardStore) SaveLists(ctx context.Context, userID string, lists *entity.ResolutionLists) error {
	return m.Called(ctx, userID, lists).Error(0)
}

func (m *mockBoardStore) Clear(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Save(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) Find(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

// memoryStore is an in-memory boardStore safe for use from the sync worker.
type memoryStore struct {
	mu     sync.Mutex
	boards map[string]entity.Board
	lists  map[string]entity.ResolutionLists
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		boards: make(map[string]entity.Board),
		lists:  make(map[string]entity.ResolutionLists),
	}
}

func (s *memoryStore) LoadBoard(_ context.Context, userID string) (*entity.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, ok := s.boards[userID]
	if !ok {
		return nil, apperror.ErrBoardNotFound
	}

	return &board, nil
}

func (s *memoryStore) SaveBoard(_ context.Context, userID string, board *entity.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.boards[userID] = *board
	return nil
}

func (s *memoryStore) LoadLists(_ context.Context, userID string) (*entity.ResolutionLists, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lists, ok := s.lists[userID]
	if !ok {
		return nil, apperror.ErrListsNotFound
	}

	return entity.NewResolutionLists(append([]string(nil), lists.Standard...), append([]string(nil), lists.Boss...)), nil
}

func (s *memoryStore) SaveLists(_ context.Context, userID string, lists *entity.ResolutionLists) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lists[userID] = *entity.NewResolutionLists(lists.Standard, lists.Boss)
	return nil
}

func (s *memoryStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.boards, userID)
	delete(s.lists, userID)
	return nil
}

// slowStore delays every LoadBoard so overlapping read-modify-write cycles interleave.
type slowStore struct {
	*memoryStore
	delay time.Duration
}

func (s *slowStore) LoadBoard(ctx context.Context, userID string) (*entity.Board, error) {
	time.Sleep(s.delay)

	return s.memoryStore.LoadBoard(ctx, userID)
}
