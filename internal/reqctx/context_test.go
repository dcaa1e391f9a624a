package reqctx

import (
	"context"
	"testing"
)

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	if RID(ctx) != "" || MessageID(ctx) != 0 {
		t.Fatal("expected zero values on empty context")
	}
	ctx = WithMessageID(WithRID(ctx, "abc"), 42)
	if got := RID(ctx); got != "abc" {
		t.Fatalf("rid=%q", got)
	}
	if got := MessageID(ctx); got != 42 {
		t.Fatalf("message id=%d", got)
	}
}
