package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shinyyama/message-board/internal/model"
	"github.com/shinyyama/message-board/internal/reqctx"
	"google.golang.org/genai"
)

var (
	ErrDraftUnavailable = errors.New("reply drafting is not configured")
	ErrEmptyDraft       = errors.New("model returned an empty draft")
)

// ReplyDrafter suggests reply text for the admin; it never stores anything.
type ReplyDrafter interface {
	DraftReply(ctx context.Context, msg *model.Message) (string, error)
}

type GeminiReplyClient struct {
	apiKey string
	model  string
}

func NewGeminiReplyClient(apiKey, model string) *GeminiReplyClient {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiReplyClient{apiKey: apiKey, model: model}
}

func (c *GeminiReplyClient) DraftReply(ctx context.Context, msg *model.Message) (string, error) {
	if c == nil || c.apiKey == "" {
		return "", ErrDraftUnavailable
	}
	rid := reqctx.RID(ctx)
	start := time.Now()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Printf("[draft] rid=%s msg=%d stage=client_init err=%v", rid, msg.ID, err)
		return "", err
	}

	parts := []*genai.Part{
		genai.NewPartFromText(replyPrompt),
		genai.NewPartFromText(buildReplyPrompt(msg)),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}
	temp := float32(0.4)
	config := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: 256,
	}

	log.Printf("[draft] rid=%s msg=%d stage=gemini_start model=%s", rid, msg.ID, c.model)
	res, err := client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		log.Printf("[draft] rid=%s msg=%d stage=gemini_fail model=%s err=%v", rid, msg.ID, c.model, err)
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	draft := cleanDraft(res.Text())
	if draft == "" {
		log.Printf("[draft] rid=%s msg=%d stage=empty_output", rid, msg.ID)
		return "", ErrEmptyDraft
	}
	log.Printf("[draft] rid=%s msg=%d stage=gemini_done len=%d totalMs=%d", rid, msg.ID, len(draft), time.Since(start).Milliseconds())
	return draft, nil
}
