package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Error is a failure envelope returned by the board API.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return "request failed"
	}
	return e.Message
}

// IsUnauthorized reports whether the API rejected the admin token or credentials.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && strings.HasPrefix(apiErr.Message, "unauthorized")
}

type Message struct {
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

type MessageList struct {
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"pageSize"`
	Items    []Message `json:"items"`
}

type ListParams struct {
	Page     int
	PageSize int
	Keyword  string
	Sort     string
	Replied  *bool
}

type CreateMessageParams struct {
	Nickname string  `json:"nickname"`
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Email    *string `json:"email,omitempty"`
}

type Created struct {
	ID        int64  `json:"id"`
	CreatedAt string `json:"createdAt"`
}

type Replied struct {
	ID        int64  `json:"id"`
	RepliedAt string `json:"repliedAt"`
}

type Liked struct {
	ID    int64 `json:"id"`
	Likes int   `json:"likes"`
}

type Draft struct {
	ID    int64  `json:"id"`
	Draft string `json:"draft"`
}

type envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// SetToken sets the admin token sent on every request.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) ListMessages(ctx context.Context, p ListParams) (*MessageList, error) {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("limit", strconv.Itoa(p.PageSize))
	}
	if p.Keyword != "" {
		q.Set("keyword", p.Keyword)
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	if p.Replied != nil {
		q.Set("replied", strconv.FormatBool(*p.Replied))
	}
	path := "/api/messages"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out MessageList
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetMessage(ctx context.Context, id int64) (*Message, error) {
	var out Message
	if err := c.do(ctx, http.MethodGet, messagePath(id, ""), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateMessage(ctx context.Context, p CreateMessageParams) (*Created, error) {
	var out Created
	if err := c.do(ctx, http.MethodPost, "/api/messages", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) LikeMessage(ctx context.Context, id int64) (*Liked, error) {
	var out Liked
	if err := c.do(ctx, http.MethodPost, messagePath(id, "/like"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ReplyMessage(ctx context.Context, id int64, reply string) (*Replied, error) {
	var out Replied
	body := map[string]string{"reply": reply}
	if err := c.do(ctx, http.MethodPost, messagePath(id, "/reply"), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DraftReply(ctx context.Context, id int64) (*Draft, error) {
	var out Draft
	if err := c.do(ctx, http.MethodPost, messagePath(id, "/reply/draft"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteMessage(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, messagePath(id, ""), nil, nil)
}

// AdminLogin exchanges credentials for the admin token and keeps it on the client.
func (c *Client) AdminLogin(ctx context.Context, username, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/admin/login", body, &out); err != nil {
		return "", err
	}
	c.token = out.Token
	return out.Token, nil
}

func messagePath(id int64, suffix string) string {
	return fmt.Sprintf("/api/messages/%d%s", id, suffix)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%s %s: status %d: %w", method, path, resp.StatusCode, err)
	}
	if env.Status != "success" {
		return &Error{Message: env.Message}
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}
