package handlers

import (
	"net/http"
	"strconv"

	"github.com/GustavoCunh4/Gerenciador-de-Tarefas/internal/domain"
	"github.com/GustavoCunh4/Gerenciador-de-Tarefas/internal/dto"
	"github.com/GustavoCunh4/Gerenciador-de-Tarefas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type TaskHandler struct {
	svc *service.TaskService
	log zerolog.Logger
}

func NewTaskHandler(svc *service.TaskService, log zerolog.Logger) *TaskHandler {
	return &TaskHandler{svc: svc, log: log}
}

// List godoc
// @Summary      List a user's tasks
// @Tags         tasks
// @Produce      json
// @Param        user_id  query     int     true   "Owner user ID"
// @Param        status   query     string  false  "Status filter (pendente|em_andamento|concluida) or all/todas/todos"
// @Success      200      {array}   dto.TaskResponse
// @Failure      400      {object}  map[string]string
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	userID, ok := parseUserIDQuery(c)
	if !ok {
		return
	}
	list, err := h.svc.List(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		h.logDomainError(c, err, "list tasks")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasksToResponses(list))
}

// Create godoc
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateTaskRequest  true  "Task body"
// @Success      200   {object}  dto.TaskResponse
// @Failure      400   {object}  map[string]string
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, detail(err.Error()))
		return
	}
	t, err := h.svc.Create(c.Request.Context(), service.CreateParams{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		DataInicial: req.DataInicial.Ptr(),
		DataLimite:  req.DataLimite.Ptr(),
		Status:      req.Status,
	})
	if err != nil {
		h.logDomainError(c, err, "create task")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t))
}

// Update godoc
// @Summary      Update a task owned by the given user
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        task_id  path      int  true  "Task ID"
// @Param        body     body      dto.UpdateTaskRequest  true  "Partial update; must include user_id"
// @Success      200      {object}  dto.TaskResponse
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /tasks/{task_id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	taskID, ok := parseID(c, "task_id")
	if !ok {
		return
	}
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, detail(err.Error()))
		return
	}
	params := service.UpdateParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	}
	if req.DataInicial != nil {
		params.DataInicial = req.DataInicial.Ptr()
	}
	if req.DataLimite != nil {
		params.DataLimite = req.DataLimite.Ptr()
	}
	t, err := h.svc.Update(c.Request.Context(), taskID, req.UserID, params)
	if err != nil {
		h.logDomainError(c, err, "update task")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t))
}

// Delete godoc
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Param        task_id  path      int  true  "Task ID"
// @Success      200      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /tasks/{task_id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	taskID, ok := parseID(c, "task_id")
	if !ok {
		return
	}
	deleted, err := h.svc.Delete(c.Request.Context(), taskID)
	if err != nil {
		h.log.Error().Err(err).Int64("task_id", taskID).Msg("delete task")
		respondError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, detail(service.ErrTaskNotFound.Error()))
		return
	}
	c.JSON(http.StatusOK, detail("Tarefa removida com sucesso."))
}

// CachePing godoc
// @Summary      Report whether the Redis cache answers
// @Tags         cache
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Router       /cache/ping [get]
func (h *TaskHandler) CachePing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"redis_available": h.svc.CachePing(c.Request.Context())})
}

// logDomainError keeps 5xx causes in the log without echoing storage
// details to clients.
func (h *TaskHandler) logDomainError(c *gin.Context, err error, op string) {
	if isClientError(err) {
		return
	}
	h.log.Error().Err(err).Str("op", op).Str("path", c.FullPath()).Msg("task operation failed")
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, detail("ID inválido."))
		return 0, false
	}
	return id, true
}

func parseUserIDQuery(c *gin.Context) (int64, bool) {
	raw := c.Query("user_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, detail("user_id é obrigatório."))
		return 0, false
	}
	return id, true
}

func taskToResponse(t domain.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
		DataInicial: t.DataInicial,
		DataLimite:  t.DataLimite,
		Status:      t.Status,
	}
}

func tasksToResponses(list []domain.Task) []dto.TaskResponse {
	out := make([]dto.TaskResponse, len(list))
	for i := range list {
		out[i] = taskToResponse(list[i])
	}
	return out
}
