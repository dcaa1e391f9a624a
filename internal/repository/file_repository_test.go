package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shinyyama/message-board/internal/model"
)

func TestFileRepositoryCreatesEmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "messages.json")
	repo := NewFileRepository(path)

	msgs, err := repo.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("expected empty collection, got %d", len(msgs))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("document not created: %v", err)
	}
	var doc map[string][]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("document is not json: %v", err)
	}
	if _, ok := doc["messages"]; !ok {
		t.Fatalf("document missing messages key: %s", data)
	}
}

func TestFileRepositoryRoundTrip(t *testing.T) {
	repo := NewFileRepository(filepath.Join(t.TempDir(), "messages.json"))
	ctx := context.Background()

	email := "bob@example.com"
	created := time.Date(2025, 11, 14, 9, 0, 0, 0, time.UTC)
	in := []model.Message{
		{ID: 1, Nickname: "Bob", Title: "Hi", Content: "test", Email: &email, CreatedAt: created},
		{ID: 2, Nickname: "Alice", Title: "Hello", Content: "again", Likes: 3, Reply: model.Replies{"thanks", "more"}, CreatedAt: created.Add(time.Minute)},
	}
	if err := repo.SaveAll(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(out))
	}
	if out[0].Email == nil || *out[0].Email != email {
		t.Fatalf("email not preserved: %+v", out[0].Email)
	}
	if !out[0].CreatedAt.Equal(created) {
		t.Fatalf("createdAt=%v want %v", out[0].CreatedAt, created)
	}
	if out[0].HasReply() {
		t.Fatalf("unexpected reply on first message: %v", out[0].Reply)
	}
	if len(out[1].Reply) != 2 || out[1].Reply[1] != "more" {
		t.Fatalf("replies not preserved: %v", out[1].Reply)
	}
	if out[1].Likes != 3 {
		t.Fatalf("likes=%d", out[1].Likes)
	}
}

func TestFileRepositoryReadsLegacyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.json")
	legacy := `[
		{"id": 7, "nickname": "Alice", "title": "t", "content": "c", "likes": 1, "reply": "old reply", "createdAt": "2025-11-14T09:00:00Z"},
		{"id": 8, "nickname": "Bob", "title": "t", "content": "c", "likes": 0, "reply": "", "createdAt": "2025-11-14T09:30:00Z"}
	]`
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	msgs, err := NewFileRepository(path).LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if len(msgs[0].Reply) != 1 || msgs[0].Reply[0] != "old reply" {
		t.Fatalf("legacy reply not decoded: %v", msgs[0].Reply)
	}
	if msgs[1].HasReply() {
		t.Fatalf("empty legacy reply should decode as no reply: %v", msgs[1].Reply)
	}
}

func TestFileRepositoryRejectsCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileRepository(path).LoadAll(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestMemoryRepositoryIsolatesCallers(t *testing.T) {
	repo := NewMemoryRepository(model.Message{ID: 1, Reply: model.Replies{"a"}})
	ctx := context.Background()

	msgs, _ := repo.LoadAll(ctx)
	msgs[0].Reply[0] = "changed"
	msgs[0].Likes = 99

	again, _ := repo.LoadAll(ctx)
	if again[0].Reply[0] != "a" || again[0].Likes != 0 {
		t.Fatalf("stored collection was mutated through a loaded copy: %+v", again[0])
	}
}
