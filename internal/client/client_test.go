package client_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/shinyyama/message-board/internal/client"
	"github.com/shinyyama/message-board/internal/config"
	"github.com/shinyyama/message-board/internal/repository"
	"github.com/shinyyama/message-board/internal/server"
)

func newTestClient(t *testing.T) *client.Client {
	t.Helper()
	cfg := &config.Config{
		StoreBackend:  config.BackendMemory,
		AdminUsername: "admin",
		AdminPassword: "123456",
		AdminToken:    "tok",
	}
	ts := httptest.NewServer(server.New(cfg, repository.NewMemoryRepository(), nil))
	t.Cleanup(ts.Close)
	return client.New(ts.URL, ts.Client())
}

func TestClientFlow(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	created, err := c.CreateMessage(ctx, client.CreateMessageParams{Nickname: "Bob", Title: "Hi", Content: "test"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := c.LikeMessage(ctx, created.ID); err != nil {
		t.Fatalf("like: %v", err)
	}

	if _, err := c.ReplyMessage(ctx, created.ID, "Thanks"); !client.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized before login, got %v", err)
	}
	if _, err := c.AdminLogin(ctx, "admin", "123456"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := c.ReplyMessage(ctx, created.ID, "Thanks"); err != nil {
		t.Fatalf("reply: %v", err)
	}

	msg, err := c.GetMessage(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if msg.Likes != 1 || len(msg.Reply) != 1 || msg.Reply[0] != "Thanks" || msg.RepliedAt == nil {
		t.Fatalf("unexpected message: %+v", msg)
	}

	replied := true
	list, err := c.ListMessages(ctx, client.ListParams{Replied: &replied, Sort: "oldest"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.Total != 1 || list.Items[0].ID != created.ID {
		t.Fatalf("unexpected list: %+v", list)
	}

	if err := c.DeleteMessage(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := c.GetMessage(ctx, created.ID); err == nil {
		t.Fatal("expected failure after delete")
	}
}

func TestClientSurfacesValidationErrors(t *testing.T) {
	c := newTestClient(t)
	_, err := c.CreateMessage(context.Background(), client.CreateMessageParams{Nickname: "n"})
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if _, ok := err.(*client.Error); !ok {
		t.Fatalf("expected *client.Error, got %T", err)
	}
}
