package handler

import (
	"errors"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/message-board/internal/ai"
	"github.com/shinyyama/message-board/internal/reqctx"
	"github.com/shinyyama/message-board/internal/service"
)

type AdminHandler struct {
	admin   service.AdminService
	msgs    service.MessageService
	drafter ai.ReplyDrafter
}

func NewAdminHandler(admin service.AdminService, msgs service.MessageService, drafter ai.ReplyDrafter) *AdminHandler {
	return &AdminHandler{admin: admin, msgs: msgs, drafter: drafter}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type DraftResponse struct {
	ID    int64  `json:"id"`
	Draft string `json:"draft"`
}

func (h *AdminHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return failure(c, "invalid json")
	}
	token, err := h.admin.Login(req.Username, req.Password)
	if err != nil {
		return fail(c, err, "")
	}
	return success(c, LoginResponse{Token: token}, "login successful")
}

// DraftReply asks the model for a reply suggestion. Routed behind
// RequireAdmin; nothing is saved.
func (h *AdminHandler) DraftReply(c echo.Context) error {
	id, ok := messageID(c)
	if !ok {
		return failure(c, "invalid message id")
	}
	if h.drafter == nil {
		return failure(c, ai.ErrDraftUnavailable.Error())
	}
	ctx := c.Request().Context()
	msg, err := h.msgs.Get(ctx, id)
	if err != nil {
		return fail(c, err, msgNotFound)
	}
	draft, err := h.drafter.DraftReply(ctx, msg)
	if err != nil {
		if errors.Is(err, ai.ErrDraftUnavailable) {
			return failure(c, err.Error())
		}
		log.Printf("[http] rid=%s msg=%d stage=draft err=%v", reqctx.RID(ctx), id, err)
		return failure(c, "failed to draft reply")
	}
	return success(c, DraftResponse{ID: id, Draft: draft}, "")
}
