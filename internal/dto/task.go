package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Timestamp parses a JSON date field as either date-only ("2006-01-02")
// or RFC3339. Date-only is stored as start of that day in UTC.
type Timestamp struct{ t *time.Time }

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		ts.t = nil
		return nil
	}
	s := strings.TrimSpace(*raw)
	layouts := []string{
		"2006-01-02",     // date only
		time.RFC3339,     // 2006-01-02T15:04:05Z07:00
		time.RFC3339Nano, // with nanoseconds
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			if layout == "2006-01-02" {
				parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			}
			ts.t = &parsed
			return nil
		}
	}
	return fmt.Errorf("use uma data (YYYY-MM-DD) ou um timestamp RFC3339")
}

// Ptr returns *time.Time for use in service/domain.
func (ts Timestamp) Ptr() *time.Time { return ts.t }

// CreateTaskRequest is the JSON body for POST /tasks.
type CreateTaskRequest struct {
	UserID      int64     `json:"user_id" binding:"required"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DataInicial Timestamp `json:"data_inicial"` // optional: "2026-02-19" or RFC3339
	DataLimite  Timestamp `json:"data_limite"`
	Status      string    `json:"status"` // optional, defaults to pendente
}

// UpdateTaskRequest is the JSON body for PUT /tasks/{task_id}.
// user_id scopes the update to the owner; nil fields are left unchanged.
type UpdateTaskRequest struct {
	UserID      int64      `json:"user_id" binding:"required"`
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DataInicial *Timestamp `json:"data_inicial"`
	DataLimite  *Timestamp `json:"data_limite"`
	Status      *string    `json:"status"`
}

// TaskResponse mirrors the cached snapshot shape of domain.Task.
type TaskResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	DataInicial time.Time `json:"data_inicial"`
	DataLimite  time.Time `json:"data_limite"`
	Status      string    `json:"status"`
}
