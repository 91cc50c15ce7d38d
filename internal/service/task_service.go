package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/GustavoCunh4/Gerenciador-de-Tarefas/internal/cache"
	"github.com/GustavoCunh4/Gerenciador-de-Tarefas/internal/domain"
	"github.com/GustavoCunh4/Gerenciador-de-Tarefas/internal/repo"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// ListCache is the cache backend the task service reads through. A nil
// ListCache disables caching; a failing one must only cost the hit.
type ListCache interface {
	GetList(ctx context.Context, userID int64, status string) ([]domain.Task, bool, error)
	SetList(ctx context.Context, userID int64, status string, list []domain.Task) error
	InvalidateUser(ctx context.Context, userID int64) error
	Ping(ctx context.Context) bool
}

// TaskService owns task mutations and the cached list read path. Every
// successful mutation invalidates the owner's whole key fan-out before
// returning, which is the only coherence mechanism: no locks are held
// between the store and the cache.
type TaskService struct {
	repo  repo.TaskRepo
	cache ListCache
	sf    singleflight.Group
	log   zerolog.Logger
}

// NewTaskService creates a TaskService. If c is nil, caching is disabled.
func NewTaskService(r repo.TaskRepo, c ListCache, log zerolog.Logger) *TaskService {
	return &TaskService{repo: r, cache: c, log: log}
}

// CreateParams carries the fields of a task creation. Nil date pointers
// default to the creation timestamp.
type CreateParams struct {
	UserID      int64
	Title       string
	Description string
	DataInicial *time.Time
	DataLimite  *time.Time
	Status      string
}

// UpdateParams carries a partial update; nil means "leave unchanged".
type UpdateParams struct {
	Title       *string
	Description *string
	DataInicial *time.Time
	DataLimite  *time.Time
	Status      *string
}

func (p UpdateParams) empty() bool {
	return p.Title == nil && p.Description == nil &&
		p.DataInicial == nil && p.DataLimite == nil && p.Status == nil
}

func (s *TaskService) Create(ctx context.Context, p CreateParams) (domain.Task, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return domain.Task{}, ErrEmptyTitle
	}
	status, err := domain.NormalizeStatus(p.Status)
	if err != nil {
		return domain.Task{}, err
	}

	now := time.Now().UTC()
	t := domain.Task{
		UserID:      p.UserID,
		Title:       title,
		Description: p.Description,
		CreatedAt:   now,
		DataInicial: now,
		DataLimite:  now,
		Status:      status,
	}
	if p.DataInicial != nil {
		t.DataInicial = p.DataInicial.UTC()
	}
	if p.DataLimite != nil {
		t.DataLimite = p.DataLimite.UTC()
	}

	created, err := s.repo.Create(ctx, t)
	if err != nil {
		return domain.Task{}, err
	}
	s.invalidate(ctx, created.UserID)
	return created, nil
}

// List returns the user's tasks, optionally filtered by status, reading
// through the cache. rawStatus takes the wire value: a status, one of the
// all/todas/todos aliases, or empty. Concurrent misses for the same key
// are collapsed with singleflight.
func (s *TaskService) List(ctx context.Context, userID int64, rawStatus string) ([]domain.Task, error) {
	status, err := domain.NormalizeStatusFilter(rawStatus)
	if err != nil {
		return nil, err
	}
	if s.cache == nil {
		return s.repo.ListByUser(ctx, userID, status)
	}

	key := cache.ListKey(userID, status)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		list, ok, err := s.cache.GetList(ctx, userID, status)
		if err != nil {
			s.log.Debug().Err(err).Str("key", key).Msg("cache get failed, falling through")
		} else if ok {
			return list, nil
		}
		list, err = s.repo.ListByUser(ctx, userID, status)
		if err != nil {
			return nil, err
		}
		if err := s.cache.SetList(ctx, userID, status, list); err != nil {
			s.log.Debug().Err(err).Str("key", key).Msg("cache populate failed")
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Task), nil
}

func (s *TaskService) Update(ctx context.Context, taskID, userID int64, p UpdateParams) (domain.Task, error) {
	if p.empty() {
		return domain.Task{}, ErrNoUpdateFields
	}

	existing, err := s.repo.GetByOwner(ctx, taskID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, ErrTaskNotFound
		}
		return domain.Task{}, err
	}

	patch := existing
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return domain.Task{}, ErrEmptyTitle
		}
		patch.Title = title
	}
	if p.Description != nil {
		patch.Description = *p.Description
	}
	if p.DataInicial != nil {
		patch.DataInicial = p.DataInicial.UTC()
	}
	if p.DataLimite != nil {
		patch.DataLimite = p.DataLimite.UTC()
	}
	if p.Status != nil {
		status, err := domain.NormalizeStatus(*p.Status)
		if err != nil {
			return domain.Task{}, err
		}
		patch.Status = status
	}

	updated, err := s.repo.Update(ctx, patch)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, ErrTaskNotFound
		}
		return domain.Task{}, err
	}
	s.invalidate(ctx, updated.UserID)
	return updated, nil
}

// Delete removes a task by id alone and reports whether a row existed.
// The owner is looked up first purely to key the invalidation; when the
// lookup finds nothing the delete is a no-op too, so skipping the fan-out
// is safe. Ownership is not verified — any caller knowing a task id may
// delete it, which matches the original external contract.
func (s *TaskService) Delete(ctx context.Context, taskID int64) (bool, error) {
	var ownerID int64
	if t, err := s.repo.GetByID(ctx, taskID); err == nil {
		ownerID = t.UserID
	} else if !errors.Is(err, sql.ErrNoRows) {
		s.log.Debug().Err(err).Int64("task_id", taskID).Msg("owner lookup failed, skipping invalidation")
	}

	deleted, err := s.repo.Delete(ctx, taskID)
	if err != nil {
		return false, err
	}
	if deleted && ownerID != 0 {
		s.invalidate(ctx, ownerID)
	}
	return deleted, nil
}

// CachePing reports whether the cache backend is configured and answering.
func (s *TaskService) CachePing(ctx context.Context) bool {
	return s.cache != nil && s.cache.Ping(ctx)
}

func (s *TaskService) invalidate(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		s.log.Debug().Err(err).Int64("user_id", userID).Msg("cache invalidation incomplete")
	}
}
