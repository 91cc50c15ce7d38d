package domain

import "time"

// Task is the domain entity for a task. It belongs to exactly one user
// and carries a status from the closed set in status.go.
//
// JSON tags define the snapshot shape stored in the cache, which must
// stay field-for-field equivalent to dto.TaskResponse.
type Task struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	DataInicial time.Time `json:"data_inicial"`
	DataLimite  time.Time `json:"data_limite"`
	Status      string    `json:"status"`
}
