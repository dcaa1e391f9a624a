package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shinyyama/message-board/internal/model"
	"github.com/shinyyama/message-board/internal/reqctx"
	"github.com/shinyyama/message-board/internal/repository"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortOldest    SortOrder = "oldest"
	SortMostLiked SortOrder = "mostLiked"
)

// ParseSortOrder maps a query value to a sort order; unknown values sort newest first.
func ParseSortOrder(s string) SortOrder {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "oldest":
		return SortOldest
	case "mostliked", "popular":
		return SortMostLiked
	default:
		return SortNewest
	}
}

type ListParams struct {
	Page     int
	PageSize int
	Keyword  string
	Replied  *bool
	Sort     SortOrder
}

type ListResult struct {
	Total    int
	Page     int
	PageSize int
	Items    []model.Message
}

type CreateMessageInput struct {
	Nickname string  `json:"nickname" validate:"required"`
	Title    string  `json:"title" validate:"required"`
	Content  string  `json:"content" validate:"required"`
	Email    *string `json:"email" validate:"omitempty,board_email"`
}

type replyInput struct {
	Reply string `json:"reply" validate:"required"`
}

type MessageService interface {
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Get(ctx context.Context, id int64) (*model.Message, error)
	Create(ctx context.Context, in CreateMessageInput) (*model.Message, error)
	Reply(ctx context.Context, id int64, token, text string) (*model.Message, error)
	Like(ctx context.Context, id int64) (*model.Message, error)
	Delete(ctx context.Context, id int64, token string) error
}

type messageService struct {
	repo  repository.MessageRepository
	admin AdminService
	now   func() time.Time

	// serializes read-modify-write cycles within this process
	mu sync.Mutex
}

func NewMessageService(repo repository.MessageRepository, admin AdminService) MessageService {
	return newMessageService(repo, admin)
}

func newMessageService(repo repository.MessageRepository, admin AdminService) *messageService {
	return &messageService{repo: repo, admin: admin, now: time.Now}
}

func (s *messageService) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = DefaultPageSize
	}
	if params.PageSize > MaxPageSize {
		params.PageSize = MaxPageSize
	}
	if params.Sort == "" {
		params.Sort = SortNewest
	}

	msgs, err := s.load(ctx, "list")
	if err != nil {
		return nil, err
	}

	keyword := strings.ToLower(strings.TrimSpace(params.Keyword))
	filtered := make([]model.Message, 0, len(msgs))
	for _, m := range msgs {
		if keyword != "" && !matchesKeyword(m, keyword) {
			continue
		}
		if params.Replied != nil && m.HasReply() != *params.Replied {
			continue
		}
		filtered = append(filtered, m)
	}
	sortMessages(filtered, params.Sort)

	res := &ListResult{
		Total:    len(filtered),
		Page:     params.Page,
		PageSize: params.PageSize,
		Items:    []model.Message{},
	}
	pages := (len(filtered) + params.PageSize - 1) / params.PageSize
	if params.Page <= pages {
		start := (params.Page - 1) * params.PageSize
		end := start + params.PageSize
		if end > len(filtered) {
			end = len(filtered)
		}
		res.Items = filtered[start:end]
	}
	return res, nil
}

func (s *messageService) Get(ctx context.Context, id int64) (*model.Message, error) {
	msgs, err := s.load(ctx, "get")
	if err != nil {
		return nil, err
	}
	idx := indexOf(msgs, id)
	if idx < 0 {
		return nil, ErrNotFound
	}
	m := msgs[idx]
	return &m, nil
}

func (s *messageService) Create(ctx context.Context, in CreateMessageInput) (*model.Message, error) {
	msg, err := validateCreate(in)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msgs, err := s.load(ctx, "create")
	if err != nil {
		return nil, err
	}
	now := s.now()
	msg.ID = nextID(msgs, now)
	msg.CreatedAt = now.UTC().Truncate(time.Second)
	msgs = append(msgs, *msg)
	if err := s.save(ctx, "create", msgs); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *messageService) Reply(ctx context.Context, id int64, token, text string) (*model.Message, error) {
	if !s.admin.Authorize(token) {
		return nil, ErrUnauthorized
	}
	in := replyInput{Reply: strings.TrimSpace(text)}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msgs, err := s.load(ctx, "reply")
	if err != nil {
		return nil, err
	}
	idx := indexOf(msgs, id)
	if idx < 0 {
		return nil, ErrNotFound
	}
	ts := s.now().UTC().Truncate(time.Second)
	msgs[idx].Reply = append(msgs[idx].Reply, in.Reply)
	msgs[idx].RepliedAt = &ts
	msgs[idx].UpdatedAt = &ts
	if err := s.save(ctx, "reply", msgs); err != nil {
		return nil, err
	}
	m := msgs[idx]
	return &m, nil
}

func (s *messageService) Like(ctx context.Context, id int64) (*model.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs, err := s.load(ctx, "like")
	if err != nil {
		return nil, err
	}
	idx := indexOf(msgs, id)
	if idx < 0 {
		return nil, ErrNotFound
	}
	msgs[idx].Likes++
	if err := s.save(ctx, "like", msgs); err != nil {
		return nil, err
	}
	m := msgs[idx]
	return &m, nil
}

func (s *messageService) Delete(ctx context.Context, id int64, token string) error {
	if !s.admin.Authorize(token) {
		return ErrUnauthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msgs, err := s.load(ctx, "delete")
	if err != nil {
		return err
	}
	idx := indexOf(msgs, id)
	if idx < 0 {
		return ErrNotFound
	}
	msgs = append(msgs[:idx], msgs[idx+1:]...)
	return s.save(ctx, "delete", msgs)
}

func (s *messageService) load(ctx context.Context, op string) ([]model.Message, error) {
	msgs, err := s.repo.LoadAll(ctx)
	if err != nil {
		log.Printf("[messages] rid=%s op=%s stage=load err=%v", reqctx.RID(ctx), op, err)
		return nil, fmt.Errorf("load messages: %w", err)
	}
	return msgs, nil
}

func (s *messageService) save(ctx context.Context, op string, msgs []model.Message) error {
	if err := s.repo.SaveAll(ctx, msgs); err != nil {
		log.Printf("[messages] rid=%s op=%s id=%d stage=save err=%v", reqctx.RID(ctx), op, reqctx.MessageID(ctx), err)
		return fmt.Errorf("save messages: %w", err)
	}
	return nil
}

func validateCreate(in CreateMessageInput) (*model.Message, error) {
	in.Nickname = strings.TrimSpace(in.Nickname)
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		in.Email = nil
		if email != "" {
			in.Email = &email
		}
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	return &model.Message{
		Nickname: in.Nickname,
		Title:    in.Title,
		Content:  in.Content,
		Email:    in.Email,
	}, nil
}

// nextID uses the creation time in milliseconds, bumped past the largest
// existing id so two creations in the same millisecond stay distinct.
func nextID(msgs []model.Message, now time.Time) int64 {
	id := now.UnixMilli()
	for _, m := range msgs {
		if m.ID >= id {
			id = m.ID + 1
		}
	}
	return id
}

func indexOf(msgs []model.Message, id int64) int {
	for i := range msgs {
		if msgs[i].ID == id {
			return i
		}
	}
	return -1
}

func matchesKeyword(m model.Message, keyword string) bool {
	return strings.Contains(strings.ToLower(m.Nickname), keyword) ||
		strings.Contains(strings.ToLower(m.Title), keyword) ||
		strings.Contains(strings.ToLower(m.Content), keyword)
}

func sortMessages(msgs []model.Message, order SortOrder) {
	newer := func(a, b model.Message) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	}
	sort.SliceStable(msgs, func(i, j int) bool {
		switch order {
		case SortOldest:
			return newer(msgs[j], msgs[i])
		case SortMostLiked:
			if msgs[i].Likes != msgs[j].Likes {
				return msgs[i].Likes > msgs[j].Likes
			}
			return newer(msgs[i], msgs[j])
		default:
			return newer(msgs[i], msgs[j])
		}
	})
}
