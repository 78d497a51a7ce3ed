package jwt

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

type Service struct {
	key []byte
}

// User is the identity a token carries: the subject id plus the expiry the
// signing layer adds. Anything else lives in the user table.
type User struct {
	ID      string
	Expires int64 // Unix second
}

func New(key string) (*Service, error) {
	if len(key) == 0 {
		return nil, errors.New("key is empty")
	}

	return &Service{key: []byte(key)}, nil
}

// ParseUser verifies the token signature and extracts the identity. A token
// that fails verification, or whose payload has no usable subject, yields an
// error and never a partial identity.
func (s *Service) ParseUser(tokenString string) (*User, error) {
	if len(tokenString) == 0 {
		return nil, errors.New("token string is empty")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return s.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse jwt failed: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	user := &User{}
	if id, ok := claims["id"].(string); ok && id != "" {
		user.ID = id
	} else {
		return nil, errors.New("token has no subject")
	}
	if exp, ok := claims["exp"].(float64); ok {
		user.Expires = int64(exp)
	}

	return user, nil
}

func (s *Service) SignToken(user *User) (string, error) {
	claims := jwt.MapClaims{
		"id":  user.ID,
		"exp": user.Expires,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(s.key)
}
