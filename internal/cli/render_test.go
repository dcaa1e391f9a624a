package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shinyyama/message-board/internal/client"
)

func TestRenderList(t *testing.T) {
	var buf bytes.Buffer
	renderList(&buf, &client.MessageList{
		Total: 11, Page: 2, PageSize: 5,
		Items: []client.Message{
			{ID: 7, Nickname: "alice", Title: "hello", Likes: 3, Reply: []string{"hi"}, CreatedAt: "2024-01-01T00:00:00Z"},
			{ID: 8, Nickname: "bob", Title: strings.Repeat("x", 60), CreatedAt: "2024-01-02T00:00:00Z"},
		},
	})
	out := buf.String()
	for _, want := range []string{"page 2/3, 11 messages", "ID", "alice", "yes", "no", "..."} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderListEmpty(t *testing.T) {
	var buf bytes.Buffer
	renderList(&buf, &client.MessageList{Page: 1, PageSize: 10})
	if !strings.Contains(buf.String(), "no messages") {
		t.Fatalf("got %q", buf.String())
	}
}

func TestRenderMessage(t *testing.T) {
	email := "a@example.com"
	at := "2024-01-03T00:00:00Z"
	var buf bytes.Buffer
	renderMessage(&buf, &client.Message{
		ID: 1, Nickname: "alice", Title: "t", Content: "body", Email: &email,
		Reply: []string{"first", "second"}, RepliedAt: &at,
	})
	out := buf.String()
	for _, want := range []string{"#1 t", "<a@example.com>", "body", "  > first", "  > second", "(last 2024-01-03T00:00:00Z)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestParseID(t *testing.T) {
	if id, err := parseID("42"); err != nil || id != 42 {
		t.Fatalf("id=%d err=%v", id, err)
	}
	for _, s := range []string{"", "abc", "0", "-3"} {
		if _, err := parseID(s); err == nil {
			t.Fatalf("parseID(%q) should fail", s)
		}
	}
}

func TestRootCommandsRegistered(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"list", "show", "post", "like", "login", "reply", "draft", "delete"} {
		if c, _, err := cmd.Find([]string{name}); err != nil || c.Name() != name {
			t.Fatalf("command %q not registered: %v", name, err)
		}
	}
}
