package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/message-board/internal/reqctx"
	"github.com/shinyyama/message-board/internal/service"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Envelope wraps every response. Business failures keep HTTP 200; clients
// branch on Status.
type Envelope struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

func NewSuccess(data interface{}, message string) Envelope {
	return Envelope{Status: StatusSuccess, Data: data, Message: message}
}

func NewFailure(message string) Envelope {
	return Envelope{Status: StatusFailure, Message: message}
}

func success(c echo.Context, data interface{}, message string) error {
	return c.JSON(http.StatusOK, NewSuccess(data, message))
}

func failure(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, NewFailure(message))
}

// fail maps service errors onto failure envelopes. Anything that is not a
// known domain error is a store failure: it is logged, and the client only
// sees a generic message.
func fail(c echo.Context, err error, notFound string) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return failure(c, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		return failure(c, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return failure(c, notFound)
	}
	ctx := c.Request().Context()
	log.Printf("[http] rid=%s method=%s path=%s msg=%d err=%v", reqctx.RID(ctx), c.Request().Method, c.Path(), reqctx.MessageID(ctx), err)
	return failure(c, "internal error")
}

// HTTPErrorHandler renders errors returned by handlers and middleware.
// Domain errors keep 200 like any other failure envelope; transport errors
// (unknown route, wrong method, recovered panics) keep their real status.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if errors.Is(err, service.ErrUnauthorized) || errors.Is(err, service.ErrValidation) || errors.Is(err, service.ErrNotFound) {
		_ = fail(c, err, "not found")
		return
	}
	code := http.StatusInternalServerError
	msg := "internal error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if s, ok := he.Message.(string); ok && s != "" {
			msg = s
		} else {
			msg = http.StatusText(code)
		}
	} else {
		log.Printf("[http] rid=%s method=%s path=%s stage=unhandled err=%v", reqctx.RID(c.Request().Context()), c.Request().Method, c.Request().URL.Path, err)
	}
	if code == http.StatusNotFound {
		msg = "route not found"
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, NewFailure(msg))
}
