package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/resobingo-backend/internal/apperror"
	"github.com/rocketscienceinc/resobingo-backend/internal/entity"
)

type UserRepository struct {
	conn   *sql.DB
	driver string
}

func NewUserRepository(conn *sql.DB, driver string) *UserRepository {
	return &UserRepository{
		conn:   conn,
		driver: driver,
	}
}

func (that *UserRepository) Save(ctx context.Context, user *entity.User) error {
	query := rebind(that.driver, `INSERT INTO users (id, email) VALUES (?, ?)`)

	_, err := that.conn.ExecContext(ctx, query, user.ID, user.Email)
	if err != nil {
		return fmt.Errorf("can't save user: %w", err)
	}

	return nil
}

func (that *UserRepository) Find(ctx context.Context, email string) (*entity.User, error) {
	query := rebind(that.driver, `SELECT id, email FROM users WHERE email = ?`)

	var user entity.User

	err := that.conn.QueryRowContext(ctx, query, email).Scan(&user.ID, &user.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't find user: %w", err)
	}

	return &user, nil
}
