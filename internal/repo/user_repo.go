package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/GustavoCunh4/Gerenciador-de-Tarefas/internal/domain"
)

// UserRepo provides user persistence.
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Create(ctx context.Context, email, passwordHash string) (domain.User, error)
}

// SQLUserRepo implements UserRepo over database/sql.
type SQLUserRepo struct {
	db *sql.DB
}

// NewSQLUserRepo returns a new SQLUserRepo.
func NewSQLUserRepo(db *sql.DB) *SQLUserRepo {
	return &SQLUserRepo{db: db}
}

// GetByEmail returns the user by email (case-sensitive match).
func (r *SQLUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

// Create inserts a new user and returns it.
func (r *SQLUserRepo) Create(ctx context.Context, email, passwordHash string) (domain.User, error) {
	query := `
		INSERT INTO users (email, password_hash, created_at)
		VALUES ($1, $2, $3)
		RETURNING id, email, password_hash, created_at`
	var u domain.User
	err := r.db.QueryRowContext(ctx, query, email, passwordHash, time.Now().UTC()).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt,
	)
	return u, err
}
