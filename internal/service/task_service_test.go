package service_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/GustavoCunh4/Gerenciador-de-Tarefas/internal/cache"
	"github.com/GustavoCunh4/Gerenciador-de-Tarefas/internal/domain"
	"github.com/GustavoCunh4/Gerenciador-de-Tarefas/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTaskRepo struct {
	mock.Mock
}

func (m *MockTaskRepo) Create(ctx context.Context, t domain.Task) (domain.Task, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *MockTaskRepo) GetByID(ctx context.Context, id int64) (domain.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *MockTaskRepo) GetByOwner(ctx context.Context, id, userID int64) (domain.Task, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *MockTaskRepo) ListByUser(ctx context.Context, userID int64, status string) ([]domain.Task, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *MockTaskRepo) Update(ctx context.Context, t domain.Task) (domain.Task, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *MockTaskRepo) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// fakeCache is an in-memory stand-in for the Redis backend, keyed exactly
// like the real one so fan-out coverage is observable.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]domain.Task
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]domain.Task{}}
}

func (f *fakeCache) GetList(_ context.Context, userID int64, status string) ([]domain.Task, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list, ok := f.entries[cache.ListKey(userID, status)]
	return list, ok, nil
}

func (f *fakeCache) SetList(_ context.Context, userID int64, status string, list []domain.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[cache.ListKey(userID, status)] = list
	return nil
}

func (f *fakeCache) InvalidateUser(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, cache.ListKey(userID, ""))
	for _, s := range domain.ValidStatuses() {
		delete(f.entries, cache.ListKey(userID, s))
	}
	return nil
}

func (f *fakeCache) Ping(context.Context) bool { return true }

func (f *fakeCache) seed(userID int64, status string, list []domain.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[cache.ListKey(userID, status)] = list
}

func (f *fakeCache) has(userID int64, status string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.entries[cache.ListKey(userID, status)]
	return ok
}

// failingCache errors on every operation, simulating an unreachable
// backend.
type failingCache struct{}

func (failingCache) GetList(context.Context, int64, string) ([]domain.Task, bool, error) {
	return nil, false, assert.AnError
}
func (failingCache) SetList(context.Context, int64, string, []domain.Task) error {
	return assert.AnError
}
func (failingCache) InvalidateUser(context.Context, int64) error { return assert.AnError }
func (failingCache) Ping(context.Context) bool                   { return false }

func newService(r *MockTaskRepo, c service.ListCache) *service.TaskService {
	return service.NewTaskService(r, c, zerolog.Nop())
}

func someTasks(userID int64) []domain.Task {
	now := time.Now().UTC()
	return []domain.Task{
		{ID: 2, UserID: userID, Title: "T2", CreatedAt: now, DataInicial: now, DataLimite: now, Status: domain.StatusConcluida},
		{ID: 1, UserID: userID, Title: "T1", CreatedAt: now.Add(-time.Hour), DataInicial: now, DataLimite: now, Status: domain.StatusPendente},
	}
}

func seedAllVariants(c *fakeCache, userID int64) {
	c.seed(userID, "", nil)
	for _, s := range domain.ValidStatuses() {
		c.seed(userID, s, nil)
	}
}

func assertAllVariantsAbsent(t *testing.T, c *fakeCache, userID int64) {
	t.Helper()
	assert.False(t, c.has(userID, ""))
	for _, s := range domain.ValidStatuses() {
		assert.False(t, c.has(userID, s))
	}
}

func TestListPopulatesCacheOnMissThenServesFromCache(t *testing.T) {
	repo := new(MockTaskRepo)
	fc := newFakeCache()
	svc := newService(repo, fc)

	tasks := someTasks(1)
	repo.On("ListByUser", mock.Anything, int64(1), "").Return(tasks, nil).Once()

	got, err := svc.List(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Equal(t, tasks, got)
	assert.True(t, fc.has(1, ""), "miss must populate the cache line")

	// Second read must be served from the cache; the repo expectation
	// above only allows a single call.
	got, err = svc.List(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Equal(t, tasks, got)
	repo.AssertExpectations(t)
}

func TestListStatusAliasesShareOneCacheLine(t *testing.T) {
	repo := new(MockTaskRepo)
	fc := newFakeCache()
	svc := newService(repo, fc)

	repo.On("ListByUser", mock.Anything, int64(1), "").Return(someTasks(1), nil).Once()

	for _, raw := range []string{"all", "todas", "TODOS", ""} {
		_, err := svc.List(context.Background(), 1, raw)
		require.NoError(t, err, "alias %q", raw)
	}
	assert.True(t, fc.has(1, ""))
	repo.AssertExpectations(t)
}

func TestListTrustsCachedSnapshot(t *testing.T) {
	repo := new(MockTaskRepo)
	fc := newFakeCache()
	svc := newService(repo, fc)

	snapshot := []domain.Task{{ID: 99, UserID: 1, Title: "cached", Status: domain.StatusPendente}}
	fc.seed(1, domain.StatusPendente, snapshot)

	got, err := svc.List(context.Background(), 1, "pendente")
	require.NoError(t, err)
	assert.Equal(t, snapshot, got)
	repo.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestListInvalidStatusDoesNotTouchStoreOrCache(t *testing.T) {
	repo := new(MockTaskRepo)
	fc := newFakeCache()
	svc := newService(repo, fc)

	_, err := svc.List(context.Background(), 1, "bogus")
	var statusErr *domain.InvalidStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Contains(t, err.Error(), "concluida, em_andamento, pendente")
	repo.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, fc.entries)
}

func TestListWithoutCacheGoesStraightToStore(t *testing.T) {
	repo := new(MockTaskRepo)
	svc := newService(repo, nil)

	tasks := someTasks(1)
	repo.On("ListByUser", mock.Anything, int64(1), domain.StatusConcluida).Return(tasks, nil).Twice()

	for i := 0; i < 2; i++ {
		got, err := svc.List(context.Background(), 1, "concluida")
		require.NoError(t, err)
		assert.Equal(t, tasks, got)
	}
	repo.AssertExpectations(t)
}

// With a backend failing on every call the service must behave exactly as
// if no cache were configured.
func TestListDegradesWhenCacheFails(t *testing.T) {
	repo := new(MockTaskRepo)
	svc := newService(repo, failingCache{})

	tasks := someTasks(1)
	repo.On("ListByUser", mock.Anything, int64(1), "").Return(tasks, nil).Twice()

	for i := 0; i < 2; i++ {
		got, err := svc.List(context.Background(), 1, "all")
		require.NoError(t, err)
		assert.Equal(t, tasks, got)
	}
	repo.AssertExpectations(t)
}

func TestCreateDefaultsAndInvalidatesFanOut(t *testing.T) {
	repo := new(MockTaskRepo)
	fc := newFakeCache()
	svc := newService(repo, fc)
	seedAllVariants(fc, 1)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(tk domain.Task) bool {
		return tk.UserID == 1 &&
			tk.Title == "T1" &&
			tk.Status == domain.StatusPendente &&
			tk.DataInicial.Equal(tk.CreatedAt) &&
			tk.DataLimite.Equal(tk.CreatedAt)
	})).Return(domain.Task{ID: 10, UserID: 1, Title: "T1", Status: domain.StatusPendente}, nil).Once()

	created, err := svc.Create(context.Background(), service.CreateParams{UserID: 1, Title: "  T1  "})
	require.NoError(t, err)
	assert.Equal(t, int64(10), created.ID)
	assert.Equal(t, domain.StatusPendente, created.Status)
	assertAllVariantsAbsent(t, fc, 1)
	repo.AssertExpectations(t)
}

func TestCreateEmptyTitle(t *testing.T) {
	repo := new(MockTaskRepo)
	fc := newFakeCache()
	svc := newService(repo, fc)
	seedAllVariants(fc, 1)

	_, err := svc.Create(context.Background(), service.CreateParams{UserID: 1, Title: "   "})
	assert.ErrorIs(t, err, service.ErrEmptyTitle)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	// A failed create mutates nothing, so the cache must survive.
	assert.True(t, fc.has(1, ""))
}

func TestCreateInvalidStatus(t *testing.T) {
	repo := new(MockTaskRepo)
	svc := newService(repo, newFakeCache())

	_, err := svc.Create(context.Background(), service.CreateParams{UserID: 1, Title: "T", Status: "done"})
	var statusErr *domain.InvalidStatusError
	assert.ErrorAs(t, err, &statusErr)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateNormalizesSuppliedStatus(t *testing.T) {
	repo := new(MockTaskRepo)
	svc := newService(repo, nil)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(tk domain.Task) bool {
		return tk.Status == domain.StatusConcluida
	})).Return(domain.Task{ID: 1, UserID: 1, Status: domain.StatusConcluida}, nil).Once()

	_, err := svc.Create(context.Background(), service.CreateParams{UserID: 1, Title: "T", Status: " CONCLUIDA "})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdatePatchesOnlySuppliedFields(t *testing.T) {
	repo := new(MockTaskRepo)
	fc := newFakeCache()
	svc := newService(repo, fc)
	seedAllVariants(fc, 1)

	now := time.Now().UTC()
	existing := domain.Task{
		ID: 7, UserID: 1, Title: "old", Description: "keep",
		CreatedAt: now, DataInicial: now, DataLimite: now,
		Status: domain.StatusPendente,
	}
	repo.On("GetByOwner", mock.Anything, int64(7), int64(1)).Return(existing, nil).Once()

	title := "  new title  "
	repo.On("Update", mock.Anything, mock.MatchedBy(func(tk domain.Task) bool {
		return tk.ID == 7 &&
			tk.Title == "new title" &&
			tk.Description == "keep" &&
			tk.Status == domain.StatusPendente &&
			tk.CreatedAt.Equal(now)
	})).Return(existing, nil).Once()

	_, err := svc.Update(context.Background(), 7, 1, service.UpdateParams{Title: &title})
	require.NoError(t, err)
	assertAllVariantsAbsent(t, fc, 1)
	repo.AssertExpectations(t)
}

// A task owned by another user must surface as not-found and leave the
// store and cache untouched.
func TestUpdateCrossUserIsNotFound(t *testing.T) {
	repo := new(MockTaskRepo)
	fc := newFakeCache()
	svc := newService(repo, fc)
	seedAllVariants(fc, 2)

	repo.On("GetByOwner", mock.Anything, int64(7), int64(2)).Return(domain.Task{}, sql.ErrNoRows).Once()

	title := "X"
	_, err := svc.Update(context.Background(), 7, 2, service.UpdateParams{Title: &title})
	assert.ErrorIs(t, err, service.ErrTaskNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	assert.True(t, fc.has(2, ""), "failed update must not invalidate")
}

func TestUpdateNoFields(t *testing.T) {
	repo := new(MockTaskRepo)
	svc := newService(repo, nil)

	_, err := svc.Update(context.Background(), 7, 1, service.UpdateParams{})
	assert.ErrorIs(t, err, service.ErrNoUpdateFields)
	repo.AssertNotCalled(t, "GetByOwner", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateEmptyTitle(t *testing.T) {
	repo := new(MockTaskRepo)
	svc := newService(repo, nil)

	repo.On("GetByOwner", mock.Anything, int64(7), int64(1)).
		Return(domain.Task{ID: 7, UserID: 1, Title: "old"}, nil).Once()

	empty := "   "
	_, err := svc.Update(context.Background(), 7, 1, service.UpdateParams{Title: &empty})
	assert.ErrorIs(t, err, service.ErrEmptyTitle)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteInvalidatesOwnerFanOut(t *testing.T) {
	repo := new(MockTaskRepo)
	fc := newFakeCache()
	svc := newService(repo, fc)
	seedAllVariants(fc, 3)

	repo.On("GetByID", mock.Anything, int64(7)).Return(domain.Task{ID: 7, UserID: 3}, nil).Once()
	repo.On("Delete", mock.Anything, int64(7)).Return(true, nil).Once()

	deleted, err := svc.Delete(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, deleted)
	assertAllVariantsAbsent(t, fc, 3)
	repo.AssertExpectations(t)
}

func TestDeleteMissingTaskSkipsInvalidation(t *testing.T) {
	repo := new(MockTaskRepo)
	fc := newFakeCache()
	svc := newService(repo, fc)
	seedAllVariants(fc, 3)

	repo.On("GetByID", mock.Anything, int64(999)).Return(domain.Task{}, sql.ErrNoRows).Once()
	repo.On("Delete", mock.Anything, int64(999)).Return(false, nil).Once()

	deleted, err := svc.Delete(context.Background(), 999)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.True(t, fc.has(3, ""), "no-op delete must not invalidate")
	repo.AssertExpectations(t)
}

func TestCachePing(t *testing.T) {
	repo := new(MockTaskRepo)

	assert.False(t, newService(repo, nil).CachePing(context.Background()))
	assert.False(t, newService(repo, failingCache{}).CachePing(context.Background()))
	assert.True(t, newService(repo, newFakeCache()).CachePing(context.Background()))
}
