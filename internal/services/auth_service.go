package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"goldleaf/internal/auth"
	"goldleaf/internal/repos"
)

var ErrBadCreds = errors.New("invalid email or password")

type AuthService struct {
	Admins *repos.AdminRepo
	Tokens *auth.TokenManager
}

// Login checks the admin credentials and returns a signed bearer token.
func (s *AuthService) Login(email, password string) (string, error) {
	a, err := s.Admins.ByEmail(email)
	if err != nil {
		return "", ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(a.Hash), []byte(password)) != nil {
		return "", ErrBadCreds
	}
	return s.Tokens.Issue(a.ID, a.Email)
}

func (s *AuthService) Validate(token string) (*auth.Claims, error) {
	return s.Tokens.Validate(token)
}
