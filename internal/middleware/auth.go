package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/message-board/internal/reqctx"
	"github.com/shinyyama/message-board/internal/service"
)

// AdminToken returns the Authorization header value with an optional
// "Bearer " prefix removed. The token is otherwise used verbatim.
func AdminToken(c echo.Context) string {
	authz := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
	if len(authz) > 7 && strings.EqualFold(authz[:7], "Bearer ") {
		return strings.TrimSpace(authz[7:])
	}
	return authz
}

type AdminMiddleware struct {
	admin service.AdminService
}

func NewAdminMiddleware(admin service.AdminService) *AdminMiddleware {
	return &AdminMiddleware{admin: admin}
}

// RequireAdmin rejects requests without the admin token before the body is
// read. The returned service.ErrUnauthorized is rendered by the echo error
// handler as a failure envelope.
func (m *AdminMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.admin.Authorize(AdminToken(c)) {
			return service.ErrUnauthorized
		}
		return next(c)
	}
}

// RequestContext copies the request id assigned by the RequestID middleware
// into the request context so lower layers can log it.
func RequestContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		rid := c.Response().Header().Get(echo.HeaderXRequestID)
		if rid == "" {
			rid = c.Request().Header.Get(echo.HeaderXRequestID)
		}
		if rid != "" {
			c.SetRequest(c.Request().WithContext(reqctx.WithRID(c.Request().Context(), rid)))
		}
		return next(c)
	}
}
