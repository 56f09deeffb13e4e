package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rocketscienceinc/resobingo-backend/internal/apperror"
	"github.com/rocketscienceinc/resobingo-backend/internal/entity"
)

const (
	boardFile = "board.json"
	listsFile = "lists.json"
)

// FileBoardStore keeps each user's data as indented JSON files under dir/<userID>/.
type FileBoardStore struct {
	dir string
}

func NewFileBoardStore(dir string) *FileBoardStore {
	return &FileBoardStore{dir: dir}
}

func (that *FileBoardStore) userDir(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || userID == "." || userID == ".." || strings.ContainsAny(userID, `/\`) {
		return "", fmt.Errorf("invalid user id %q", userID)
	}

	return filepath.Join(that.dir, userID), nil
}

func (that *FileBoardStore) LoadBoard(_ context.Context, userID string) (*entity.Board, error) {
	var board entity.Board
	if err := that.read(userID, boardFile, &board); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperror.ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to read board: %w", err)
	}

	return &board, nil
}

func (that *FileBoardStore) SaveBoard(_ context.Context, userID string, board *entity.Board) error {
	if err := that.write(userID, boardFile, board); err != nil {
		return fmt.Errorf("failed to write board: %w", err)
	}

	return nil
}

func (that *FileBoardStore) LoadLists(_ context.Context, userID string) (*entity.ResolutionLists, error) {
	var lists entity.ResolutionLists
	if err := that.read(userID, listsFile, &lists); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperror.ErrListsNotFound
		}
		return nil, fmt.Errorf("failed to read lists: %w", err)
	}

	return entity.NewResolutionLists(lists.Standard, lists.Boss), nil
}

func (that *FileBoardStore) SaveLists(_ context.Context, userID string, lists *entity.ResolutionLists) error {
	if err := that.write(userID, listsFile, entity.NewResolutionLists(lists.Standard, lists.Boss)); err != nil {
		return fmt.Errorf("failed to write lists: %w", err)
	}

	return nil
}

func (that *FileBoardStore) Clear(_ context.Context, userID string) error {
	dir, err := that.userDir(userID)
	if err != nil {
		return err
	}

	for _, name := range []string{boardFile, listsFile} {
		if err = os.Remove(filepath.Join(dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", name, err)
		}
	}

	return nil
}

func (that *FileBoardStore) read(userID, name string, out any) error {
	dir, err := that.userDir(userID)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return err
	}

	if err = json.Unmarshal(data, out); err != nil {
		if name == boardFile {
			return fmt.Errorf("%w: %w", apperror.ErrInvalidBoardData, err)
		}
		return fmt.Errorf("%w: %w", apperror.ErrInvalidListsData, err)
	}

	return nil
}

// write replaces the file atomically so a crash never leaves half a document behind.
func (that *FileBoardStore) write(userID, name string, value any) error {
	dir, err := that.userDir(userID)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, name+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err = enc.Encode(value); err != nil {
		_ = tmp.Close()
		return err
	}

	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), filepath.Join(dir, name))
}
