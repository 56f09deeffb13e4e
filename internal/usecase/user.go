package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/resobingo-backend/internal/apperror"
	"github.com/rocketscienceinc/resobingo-backend/internal/entity"
)

type userRepo interface {
	Save(ctx context.Context, user *entity.User) error
	Find(ctx context.Context, email string) (*entity.User, error)
}

type UserUseCase struct {
	repo userRepo
}

func NewUserUseCase(repo userRepo) *UserUseCase {
	return &UserUseCase{
		repo: repo,
	}
}

// GetOrCreate returns the user registered under email, creating it on first login.
func (that *UserUseCase) GetOrCreate(ctx context.Context, email string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: empty email", apperror.ErrUnauthorized)
	}

	user, err := that.repo.Find(ctx, email)
	if err == nil {
		return user, nil
	}

	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user = &entity.User{
		ID:    uuid.NewString(),
		Email: email,
	}

	if err = that.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	return user, nil
}
