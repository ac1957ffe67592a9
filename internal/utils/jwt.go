package utils

import (
	"errors"
	"time"

	"ezzleads/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Claims struct {
	UserID string        `json:"uid"`
	Email  string        `json:"email"`
	Name   string        `json:"name"`
	Role   models.Role   `json:"role"`
	Status models.Status `json:"status"`
	jwt.RegisteredClaims
}

// Session converts verified claims to the session they describe.
func (c *Claims) Session() *models.Session {
	s := &models.Session{User: models.SessionUser{
		ID:     c.UserID,
		Email:  c.Email,
		Name:   c.Name,
		Role:   c.Role,
		Status: c.Status,
	}}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return s
}

func SignJWT(secret string, u models.SessionUser, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(ttl)
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role, Status: u.Status,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tok, exp, nil
}

func ParseJWT(secret, token string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid && c.UserID != "" {
		return c, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}
