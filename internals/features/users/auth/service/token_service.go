package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)

// AccessClaims: isi access token. MosqueIDs hanya snapshot saat login;
// middleware tetap membaca keanggotaan terbaru dari DB.
type AccessClaims struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	Role      string   `json:"role"`
	MosqueIDs []string `json:"mosque_ids,omitempty"`
	jwt.RegisteredClaims
}

type TokenSubject struct {
	UserID    uuid.UUID
	Email     string
	Role      string
	MosqueIDs []uuid.UUID
}

// IssueAccessToken → token HS256 + waktu kedaluwarsa.
func IssueAccessToken(secret string, sub TokenSubject, ttl time.Duration, now time.Time) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, errors.New("jwt secret kosong")
	}
	exp := now.Add(ttl).UTC()

	ids := make([]string, 0, len(sub.MosqueIDs))
	for _, id := range sub.MosqueIDs {
		ids = append(ids, id.String())
	}
	claims := AccessClaims{
		ID:        sub.UserID.String(),
		Email:     sub.Email,
		Role:      sub.Role,
		MosqueIDs: ids,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now.UTC()),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// ParseAccessToken memverifikasi signature + exp (toleransi skew kecil).
func ParseAccessToken(secret, token string, now time.Time) (*AccessClaims, error) {
	claims := &AccessClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true, ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	if _, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}); err != nil {
		return nil, ErrTokenInvalid
	}
	if claims.ExpiresAt == nil {
		return nil, ErrTokenInvalid
	}
	if now.After(claims.ExpiresAt.Time.Add(30 * time.Second)) {
		return nil, ErrTokenExpired
	}
	if _, err := uuid.Parse(claims.ID); err != nil {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func (c *AccessClaims) UserID() uuid.UUID {
	id, _ := uuid.Parse(c.ID)
	return id
}

// ExpiresAtOr: exp token, atau fallback kalau tidak ada.
func (c *AccessClaims) ExpiresAtOr(fallback time.Time) time.Time {
	if c == nil || c.ExpiresAt == nil {
		return fallback
	}
	return c.ExpiresAt.Time
}
