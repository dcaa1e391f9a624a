package service

import (
	"crypto/subtle"
	"fmt"
	"strings"
)

// AdminService gates reply and delete. "Admin" is a capability held by
// whoever presents the configured token, not a user identity.
type AdminService interface {
	Authorize(token string) bool
	Login(username, password string) (string, error)
}

type loginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type adminService struct {
	username string
	password string
	token    string
}

func NewAdminService(username, password, token string) AdminService {
	return &adminService{username: username, password: password, token: token}
}

func (s *adminService) Authorize(token string) bool {
	if token == "" || s.token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.token)) == 1
}

func (s *adminService) Login(username, password string) (string, error) {
	in := loginInput{Username: strings.TrimSpace(username), Password: password}
	if err := validateStruct(in); err != nil {
		return "", err
	}
	userOK := subtle.ConstantTimeCompare([]byte(in.Username), []byte(s.username))
	passOK := subtle.ConstantTimeCompare([]byte(in.Password), []byte(s.password))
	if userOK&passOK != 1 || s.token == "" {
		return "", fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
	}
	return s.token, nil
}
