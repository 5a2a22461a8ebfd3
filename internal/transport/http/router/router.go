package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-task-manager/internal/core/auth"
	"go-task-manager/internal/core/cache"
	"go-task-manager/internal/domain"
	"go-task-manager/internal/repo"
	"go-task-manager/internal/service"
	"go-task-manager/internal/transport/http/handler"
	mdw "go-task-manager/internal/transport/http/middleware"
)

// New wires repositories, services and handlers into one engine. Registration
// and login are the only routes outside the auth middleware; the admin group
// additionally requires the admin role.
func New(l *zap.Logger, db *gorm.DB, jwter *auth.JWTer, c *cache.Cache, allowOrigins []string) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		corsMiddleware(allowOrigins),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	userRepo := repo.NewUserRepo(db)
	taskRepo := repo.NewTaskRepo(db)

	authSvc := service.NewAuthService(userRepo, jwter, c)
	taskSvc := service.NewTaskService(taskRepo)
	adminSvc := service.NewAdminUserService(userRepo, c)

	authH := handler.NewAuthHandler(authSvc, l)
	taskH := handler.NewTaskHandler(taskSvc, l)
	adminH := handler.NewAdminHandler(adminSvc, taskSvc, l)

	api := r.Group("/api/v1")
	api.POST("/auth/register", authH.Register)
	api.POST("/auth/login", authH.Login)

	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter, l, ""))
	authed.GET("/me", authH.Me)
	authed.POST("/tasks", taskH.Create)
	authed.GET("/tasks", taskH.List)
	authed.PUT("/tasks/:id", taskH.Update)
	authed.DELETE("/tasks/:id", taskH.Delete)

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(jwter, l, domain.RoleAdmin))
	admin.GET("/users", adminH.ListUsers)
	admin.POST("/users", adminH.CreateUser)
	admin.PUT("/users/:id", adminH.UpdateUser)
	admin.DELETE("/users/:id", adminH.DeleteUser)
	admin.GET("/users/:id/tasks", adminH.ListUserTasks)
	admin.POST("/users/:id/tasks", adminH.CreateUserTask)

	return r
}

func corsMiddleware(allowOrigins []string) gin.HandlerFunc {
	if len(allowOrigins) == 0 {
		return cors.Default()
	}
	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = allowOrigins
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	return cors.New(cfg)
}
