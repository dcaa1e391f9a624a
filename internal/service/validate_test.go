package service

import (
	"errors"
	"testing"
)

func TestValidateCreateMessages(t *testing.T) {
	bad := "a@b"
	spaced := "  a@b.co  "
	tests := []struct {
		name    string
		in      CreateMessageInput
		wantMsg string
	}{
		{"nickname first", CreateMessageInput{}, "validation failed: nickname is required"},
		{"title", CreateMessageInput{Nickname: "n", Title: " "}, "validation failed: title is required"},
		{"content", CreateMessageInput{Nickname: "n", Title: "t"}, "validation failed: content is required"},
		{"email", CreateMessageInput{Nickname: "n", Title: "t", Content: "c", Email: &bad}, "validation failed: email is invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateCreate(tt.in)
			if !errors.Is(err, ErrValidation) || err.Error() != tt.wantMsg {
				t.Fatalf("err=%v want %q", err, tt.wantMsg)
			}
		})
	}

	msg, err := validateCreate(CreateMessageInput{Nickname: " n ", Title: "t", Content: "c", Email: &spaced})
	if err != nil {
		t.Fatal(err)
	}
	if msg.Nickname != "n" || msg.Email == nil || *msg.Email != "a@b.co" {
		t.Fatalf("not normalized: %+v", msg)
	}
}

func TestEmailRule(t *testing.T) {
	tests := []struct {
		email string
		ok    bool
	}{
		{"user@example.com", true},
		{"a@b.c", true},
		{"no-at.example.com", false},
		{"user@nodot", false},
		{"us er@example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			e := tt.email
			err := validateStruct(CreateMessageInput{Nickname: "n", Title: "t", Content: "c", Email: &e})
			if (err == nil) != tt.ok {
				t.Fatalf("email=%q err=%v", tt.email, err)
			}
		})
	}
}
