package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-task-manager/internal/service"
	mdw "go-task-manager/internal/transport/http/middleware"
	resp "go-task-manager/internal/transport/http/response"
)

type AuthHandler struct {
	svc *service.AuthService
	log *zap.Logger
}

func NewAuthHandler(svc *service.AuthService, l *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: l}
}

type registerIn struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	// Accepted on the wire but never honored: self-registration is always
	// role "user".
	Role string `json:"role"`
}

// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in registerIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	u, err := h.svc.Register(c.Request.Context(), in.Name, in.Email, in.Password)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, resp.OK(gin.H{"id": u.ID}))
}

type loginIn struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginOut struct {
	Token string     `json:"token"`
	User  publicUser `json:"user"`
}

type publicUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var in loginIn
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, resp.Error(resp.CodeBadRequest, err.Error()))
		return
	}
	tok, u, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(loginOut{
		Token: tok,
		User:  publicUser{ID: u.ID, Name: u.Name, Role: u.Role},
	}))
}

// GET /api/v1/me
func (h *AuthHandler) Me(c *gin.Context) {
	uid := c.GetString(mdw.KeyUserID)
	p, err := h.svc.Me(c.Request.Context(), uid)
	if err != nil {
		// A vanished subject means the session is dead; 404 tells the
		// client to drop the token and authenticate again.
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp.OK(p))
}
