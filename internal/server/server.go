package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shinyyama/message-board/internal/ai"
	"github.com/shinyyama/message-board/internal/config"
	"github.com/shinyyama/message-board/internal/handler"
	appmw "github.com/shinyyama/message-board/internal/middleware"
	"github.com/shinyyama/message-board/internal/repository"
	"github.com/shinyyama/message-board/internal/service"
)

type Server struct {
	e *echo.Echo
}

func New(cfg *config.Config, repo repository.MessageRepository, drafter ai.ReplyDrafter) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(appmw.RequestContext)
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
		AllowOriginFunc:  allowOrigin(cfg.CORSAllowOrigins),
	}))

	adminSvc := service.NewAdminService(cfg.AdminUsername, cfg.AdminPassword, cfg.AdminToken)
	msgSvc := service.NewMessageService(repo, adminSvc)
	msgHandler := handler.NewMessageHandler(msgSvc)
	adminHandler := handler.NewAdminHandler(adminSvc, msgSvc, drafter)
	adminMw := appmw.NewAdminMiddleware(adminSvc)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, handler.NewSuccess(map[string]string{
			"ok":         "true",
			"git_sha":    cfg.GitSHA,
			"build_time": cfg.BuildTime,
			"backend":    cfg.StoreBackend,
		}, ""))
	})

	api := e.Group("/api")
	api.GET("/messages", msgHandler.List)
	api.POST("/messages", msgHandler.Create)
	api.GET("/messages/:id", msgHandler.Get)
	api.DELETE("/messages/:id", msgHandler.Delete, adminMw.RequireAdmin)
	api.POST("/messages/:id/reply", msgHandler.Reply, adminMw.RequireAdmin)
	api.POST("/messages/:id/reply/draft", adminHandler.DraftReply, adminMw.RequireAdmin)
	api.POST("/messages/:id/like", msgHandler.Like)
	api.POST("/admin/login", adminHandler.Login)

	return &Server{e: e}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

// allowOrigin permits localhost on any port plus the configured origins.
// An entry starting with "." matches any subdomain, e.g. ".vercel.app".
func allowOrigin(allowed []string) func(origin string) (bool, error) {
	return func(origin string) (bool, error) {
		low := strings.ToLower(origin)
		if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
			strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
			return true, nil
		}
		u, err := url.Parse(low)
		if err != nil {
			return false, nil
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return false, nil
		}
		host := u.Hostname()
		for _, a := range allowed {
			a = strings.ToLower(strings.TrimSpace(a))
			switch {
			case a == "":
			case strings.HasPrefix(a, "."):
				if strings.HasSuffix(host, a) || host == a[1:] {
					return true, nil
				}
			case a == low || a == host:
				return true, nil
			}
		}
		return false, nil
	}
}
