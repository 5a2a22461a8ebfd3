package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-task-manager/internal/service"
	resp "go-task-manager/internal/transport/http/response"
)

// AdminHandler serves the administrative override path. Every route here
// sits behind the admin-gated group; targets are explicit :id params, not
// the acting identity.
type AdminHandler struct {
	users *service.AdminUserService
	tasks *service.TaskService
	log   *zap.Logger
}

func NewAdminHandler(users *service.AdminUserService, tasks *service.TaskService, l *zap.Logger) *AdminHandler {
	return &AdminHandler{users: users, tasks: tasks, log: l}
}

type userRow struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// GET /admin/v1/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	us, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		fail(c, h.log, err)
		return
	}
	out := make([]userRow, 0, len(us))
	for _, u := range us {
		out = append(out, userRow{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt})
	}
	c.JSON(http.StatusOK, resp.OK(out))
}

type adminCreateUserIn struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// POST /admin/v1/users
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var in adminCreateUserIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	u, err := h.users.CreateUser(c.Request.Context(), in.Name, in.Email, in.Password, in.Role)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, resp.OK(userRow{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}))
}

type adminUpdateUserIn struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	Password *string `json:"password"`
}

// PUT /admin/v1/users/:id
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var in adminUpdateUserIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	u, err := h.users.UpdateUser(c.Request.Context(), c.Param("id"), service.AdminUpdateUserInput{
		Name:     in.Name,
		Email:    in.Email,
		Role:     in.Role,
		Password: in.Password,
	})
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(userRow{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}))
}

// DELETE /admin/v1/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.users.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(gin.H{"id": c.Param("id")}))
}

// GET /admin/v1/users/:id/tasks — admin reads another user's tasks by
// explicit target id; the ownership predicate is bypassed by construction.
func (h *AdminHandler) ListUserTasks(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context(), c.Param("id"))
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

// POST /admin/v1/users/:id/tasks
func (h *AdminHandler) CreateUserTask(c *gin.Context) {
	var in createTaskIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	t, err := h.tasks.Create(c.Request.Context(), c.Param("id"), service.CreateTaskInput{
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
