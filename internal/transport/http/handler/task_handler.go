package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-task-manager/internal/domain"
	"go-task-manager/internal/service"
	mdw "go-task-manager/internal/transport/http/middleware"
	resp "go-task-manager/internal/transport/http/response"
)

type TaskHandler struct {
	svc *service.TaskService
	log *zap.Logger
}

func NewTaskHandler(svc *service.TaskService, l *zap.Logger) *TaskHandler {
	return &TaskHandler{svc: svc, log: l}
}

type createTaskIn struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
}

type updateTaskIn struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"dueDate"`
	Completed   any     `json:"completed"`
}

type taskOut struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     *string   `json:"dueDate"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Due dates travel as date-only strings so clients never see time-zone
// drift on a calendar date.
func toTaskOut(t *domain.Task) taskOut {
	out := taskOut{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.DueDate != nil {
		s := t.DueDate.Format("2006-01-02")
		out.DueDate = &s
	}
	return out
}

// POST /api/v1/tasks — owner is the acting identity, never the body.
func (h *TaskHandler) Create(c *gin.Context) {
	var in createTaskIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	t, err := h.svc.Create(c.Request.Context(), c.GetString(mdw.KeyUserID), service.CreateTaskInput{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
	})
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, resp.OK(toTaskOut(t)))
}

// GET /api/v1/tasks
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.svc.List(c.Request.Context(), c.GetString(mdw.KeyUserID))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	out := make([]taskOut, 0, len(tasks))
	for i := range tasks {
		out = append(out, toTaskOut(&tasks[i]))
	}
	c.JSON(http.StatusOK, resp.OK(out))
}

// PUT /api/v1/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	var in updateTaskIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	err := h.svc.Update(c.Request.Context(), c.Param("id"), c.GetString(mdw.KeyUserID), service.UpdateTaskInput{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Completed:   in.Completed,
	})
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"id": c.Param("id")}))
}

// DELETE /api/v1/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), c.GetString(mdw.KeyUserID)); err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"id": c.Param("id")}))
}
