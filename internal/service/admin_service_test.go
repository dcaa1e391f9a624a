package service

import (
	"errors"
	"testing"
)

func TestAuthorize(t *testing.T) {
	svc := NewAdminService("admin", "123456", "tok")
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"match", "tok", true},
		{"mismatch", "tok2", false},
		{"prefix", "to", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.Authorize(tt.token); got != tt.want {
				t.Fatalf("Authorize(%q)=%v want %v", tt.token, got, tt.want)
			}
		})
	}

	if NewAdminService("admin", "pw", "").Authorize("") {
		t.Fatal("unconfigured token must never authorize")
	}
}

func TestLogin(t *testing.T) {
	svc := NewAdminService("admin", "123456", "tok")

	token, err := svc.Login("admin", "123456")
	if err != nil || token != "tok" {
		t.Fatalf("token=%q err=%v", token, err)
	}
	if _, err := svc.Login("admin", "wrong"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if _, err := svc.Login("root", "123456"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if _, err := svc.Login(" ", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
