package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shinyyama/message-board/internal/config"
	"github.com/shinyyama/message-board/internal/server"
	"github.com/shinyyama/message-board/internal/service"
)

type seedMessage struct {
	Nickname string
	Title    string
	Content  string
	Likes    int
	Reply    string
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	repo, closeRepo, err := server.OpenRepository(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeRepo()

	existing, err := repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load messages: %w", err)
	}
	force := strings.EqualFold(os.Getenv("FORCE_SEED"), "true")
	if len(existing) > 0 && !force {
		log.Printf("messages already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	admin := service.NewAdminService(cfg.AdminUsername, cfg.AdminPassword, cfg.AdminToken)
	svc := service.NewMessageService(repo, admin)

	inserted := 0
	for _, s := range buildSeedMessages() {
		msg, err := svc.Create(ctx, service.CreateMessageInput{
			Nickname: s.Nickname,
			Title:    s.Title,
			Content:  s.Content,
		})
		if err != nil {
			return fmt.Errorf("insert %q: %w", s.Title, err)
		}
		for i := 0; i < s.Likes; i++ {
			if _, err := svc.Like(ctx, msg.ID); err != nil {
				return fmt.Errorf("like %d: %w", msg.ID, err)
			}
		}
		if s.Reply != "" {
			if _, err := svc.Reply(ctx, msg.ID, cfg.AdminToken, s.Reply); err != nil {
				return fmt.Errorf("reply %d: %w", msg.ID, err)
			}
		}
		inserted++
	}

	log.Printf("seed complete: backend=%s inserted=%d", cfg.StoreBackend, inserted)
	return nil
}

func buildSeedMessages() []seedMessage {
	return []seedMessage{
		{Nickname: "Alice", Title: "Hello!", Content: "This is the first message on the board.", Likes: 10, Reply: "Thanks for stopping by!"},
		{Nickname: "Bob", Title: "Test post", Content: "This is the second message.", Likes: 5},
		{Nickname: "Charlie", Title: "Feedback", Content: "When can I expect a reply?", Likes: 3},
		{Nickname: "Dana", Title: "Feature idea", Content: "Could we sort messages by likes?", Likes: 2, Reply: "Done, try sort=mostLiked."},
		{Nickname: "Eve", Title: "Bug report", Content: "The page did not load on my phone.", Likes: 1},
		{Nickname: "Frank", Title: "Question", Content: "Is there an RSS feed?"},
		{Nickname: "Grace", Title: "Thanks", Content: "Nice little board."},
		{Nickname: "Heidi", Title: "Greetings", Content: "Hello from the other side."},
	}
}
