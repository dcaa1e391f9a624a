package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/message-board/internal/middleware"
	"github.com/shinyyama/message-board/internal/model"
	"github.com/shinyyama/message-board/internal/reqctx"
	"github.com/shinyyama/message-board/internal/service"
)

const msgNotFound = "message not found"

type MessageHandler struct {
	svc service.MessageService
}

func NewMessageHandler(svc service.MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

type MessageResponse struct {
	ID        int64    `json:"id"`
	Nickname  string   `json:"nickname"`
	Title     string   `json:"title"`
	Email     *string  `json:"email,omitempty"`
	Content   string   `json:"content"`
	Likes     int      `json:"likes"`
	Reply     []string `json:"reply,omitempty"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt *string  `json:"updatedAt,omitempty"`
	RepliedAt *string  `json:"repliedAt,omitempty"`
}

type MessageListResponse struct {
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
	Items    []MessageResponse `json:"items"`
}

type CreateMessageRequest struct {
	Nickname string  `json:"nickname"`
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Email    *string `json:"email"`
}

type CreateMessageResponse struct {
	ID        int64  `json:"id"`
	CreatedAt string `json:"createdAt"`
}

type ReplyRequest struct {
	Reply string `json:"reply"`
}

type ReplyResponse struct {
	ID        int64  `json:"id"`
	RepliedAt string `json:"repliedAt"`
}

type LikeResponse struct {
	ID    int64 `json:"id"`
	Likes int   `json:"likes"`
}

func (h *MessageHandler) List(c echo.Context) error {
	pageSize := queryInt(c, "limit")
	if pageSize == 0 {
		pageSize = queryInt(c, "pageSize")
	}
	params := service.ListParams{
		Page:     queryInt(c, "page"),
		PageSize: pageSize,
		Keyword:  c.QueryParam("keyword"),
		Replied:  parseReplied(c.QueryParam("replied")),
		Sort:     service.ParseSortOrder(c.QueryParam("sort")),
	}
	res, err := h.svc.List(c.Request().Context(), params)
	if err != nil {
		return fail(c, err, msgNotFound)
	}
	resp := MessageListResponse{
		Total:    res.Total,
		Page:     res.Page,
		PageSize: res.PageSize,
		Items:    make([]MessageResponse, 0, len(res.Items)),
	}
	for i := range res.Items {
		resp.Items = append(resp.Items, toMessageResponse(&res.Items[i]))
	}
	return success(c, resp, "")
}

func (h *MessageHandler) Get(c echo.Context) error {
	id, ok := messageID(c)
	if !ok {
		return failure(c, "invalid message id")
	}
	msg, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, msgNotFound)
	}
	return success(c, toMessageResponse(msg), "")
}

func (h *MessageHandler) Create(c echo.Context) error {
	var req CreateMessageRequest
	if err := c.Bind(&req); err != nil {
		return failure(c, "invalid json")
	}
	msg, err := h.svc.Create(c.Request().Context(), service.CreateMessageInput{
		Nickname: req.Nickname,
		Title:    req.Title,
		Content:  req.Content,
		Email:    req.Email,
	})
	if err != nil {
		return fail(c, err, msgNotFound)
	}
	return success(c, CreateMessageResponse{
		ID:        msg.ID,
		CreatedAt: formatTime(msg.CreatedAt),
	}, "message created")
}

func (h *MessageHandler) Reply(c echo.Context) error {
	id, ok := messageID(c)
	if !ok {
		return failure(c, "invalid message id")
	}
	var req ReplyRequest
	if err := c.Bind(&req); err != nil {
		return failure(c, "invalid json")
	}
	msg, err := h.svc.Reply(c.Request().Context(), id, middleware.AdminToken(c), req.Reply)
	if err != nil {
		return fail(c, err, msgNotFound)
	}
	return success(c, ReplyResponse{ID: msg.ID, RepliedAt: formatTime(*msg.RepliedAt)}, "reply saved")
}

func (h *MessageHandler) Like(c echo.Context) error {
	id, ok := messageID(c)
	if !ok {
		return failure(c, "invalid message id")
	}
	msg, err := h.svc.Like(c.Request().Context(), id)
	if err != nil {
		return fail(c, err, msgNotFound)
	}
	return success(c, LikeResponse{ID: msg.ID, Likes: msg.Likes}, "")
}

func (h *MessageHandler) Delete(c echo.Context) error {
	id, ok := messageID(c)
	if !ok {
		return failure(c, "invalid message id")
	}
	if err := h.svc.Delete(c.Request().Context(), id, middleware.AdminToken(c)); err != nil {
		return fail(c, err, msgNotFound)
	}
	return success(c, nil, "message deleted")
}

// messageID parses the :id path param and tags the request context with it.
func messageID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	c.SetRequest(c.Request().WithContext(reqctx.WithMessageID(c.Request().Context(), id)))
	return id, true
}

func queryInt(c echo.Context, name string) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return v
}

func parseReplied(s string) *bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1":
		v := true
		return &v
	case "false", "0":
		v := false
		return &v
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func toMessageResponse(m *model.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Nickname:  m.Nickname,
		Title:     m.Title,
		Email:     m.Email,
		Content:   m.Content,
		Likes:     m.Likes,
		Reply:     m.Reply,
		CreatedAt: formatTime(m.CreatedAt),
		UpdatedAt: formatTimePtr(m.UpdatedAt),
		RepliedAt: formatTimePtr(m.RepliedAt),
	}
}
