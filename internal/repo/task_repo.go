package repo

import (
	"context"
	"database/sql"

	"github.com/GustavoCunh4/Gerenciador-de-Tarefas/internal/domain"
)

// TaskRepo provides task persistence. Implementations return
// sql.ErrNoRows when a single-row lookup matches nothing.
type TaskRepo interface {
	Create(ctx context.Context, t domain.Task) (domain.Task, error)
	GetByID(ctx context.Context, id int64) (domain.Task, error)
	GetByOwner(ctx context.Context, id, userID int64) (domain.Task, error)
	ListByUser(ctx context.Context, userID int64, status string) ([]domain.Task, error)
	Update(ctx context.Context, t domain.Task) (domain.Task, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// SQLTaskRepo implements TaskRepo over database/sql. The queries use $1
// placeholders and RETURNING, which both supported drivers accept;
// timestamps are always computed by the caller, never in SQL.
type SQLTaskRepo struct {
	db *sql.DB
}

func NewSQLTaskRepo(db *sql.DB) *SQLTaskRepo {
	return &SQLTaskRepo{db: db}
}

const taskColumns = `id, user_id, title, description, created_at, data_inicial, data_limite, status`

func scanTask(row *sql.Row) (domain.Task, error) {
	var t domain.Task
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description,
		&t.CreatedAt, &t.DataInicial, &t.DataLimite, &t.Status)
	return t, err
}

func (r *SQLTaskRepo) Create(ctx context.Context, t domain.Task) (domain.Task, error) {
	query := `
		INSERT INTO tasks (user_id, title, description, created_at, data_inicial, data_limite, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + taskColumns
	return scanTask(r.db.QueryRowContext(ctx, query,
		t.UserID, t.Title, t.Description, t.CreatedAt, t.DataInicial, t.DataLimite, t.Status))
}

func (r *SQLTaskRepo) GetByID(ctx context.Context, id int64) (domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	return scanTask(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLTaskRepo) GetByOwner(ctx context.Context, id, userID int64) (domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND user_id = $2`
	return scanTask(r.db.QueryRowContext(ctx, query, id, userID))
}

func (r *SQLTaskRepo) ListByUser(ctx context.Context, userID int64, status string) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1`
	args := []any{userID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description,
			&t.CreatedAt, &t.DataInicial, &t.DataLimite, &t.Status); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Update overwrites every mutable column; created_at is never touched.
// The WHERE clause is ownership-scoped, so a cross-user update scans
// no row and surfaces as sql.ErrNoRows.
func (r *SQLTaskRepo) Update(ctx context.Context, t domain.Task) (domain.Task, error) {
	query := `
		UPDATE tasks
		SET title = $3, description = $4, data_inicial = $5, data_limite = $6, status = $7
		WHERE id = $1 AND user_id = $2
		RETURNING ` + taskColumns
	return scanTask(r.db.QueryRowContext(ctx, query,
		t.ID, t.UserID, t.Title, t.Description, t.DataInicial, t.DataLimite, t.Status))
}

// Delete removes the task by id alone, reporting whether a row existed.
// Ownership is intentionally not part of the predicate; see the handler.
func (r *SQLTaskRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
