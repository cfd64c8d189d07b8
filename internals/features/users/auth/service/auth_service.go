package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authRepo "zakatconnect_backend/internals/features/users/auth/repository"
	userModel "zakatconnect_backend/internals/features/users/user/model"
	helpersAuth "zakatconnect_backend/internals/helpers/auth"
)

var (
	ErrInvalidCredentials = errors.New("email atau password salah")
	ErrUserInactive       = errors.New("akun dinonaktifkan")
)

type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        userModel.UserModel
	MosqueIDs   []uuid.UUID
}

type AuthService struct {
	DB        *gorm.DB
	Secret    string
	AccessTTL time.Duration
	Now       func() time.Time
}

func NewAuthService(db *gorm.DB, secret string, ttl time.Duration) *AuthService {
	return &AuthService{DB: db, Secret: secret, AccessTTL: ttl, Now: time.Now}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := authRepo.FindUserByEmail(ctx, s.DB, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := CheckPasswordHash(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	mosqueIDs, err := authRepo.ActiveMosqueIDs(ctx, s.DB, user.ID)
	if err != nil {
		return nil, err
	}

	token, exp, err := IssueAccessToken(s.Secret, TokenSubject{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		MosqueIDs: mosqueIDs,
	}, s.AccessTTL, s.Now())
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: token, ExpiresAt: exp, User: *user, MosqueIDs: mosqueIDs}, nil
}

// Logout memasukkan token ke blacklist sampai exp-nya lewat.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	exp := s.Now().Add(s.AccessTTL)
	if claims, err := ParseAccessToken(s.Secret, rawToken, s.Now()); err == nil {
		exp = claims.ExpiresAtOr(exp)
	}
	return authRepo.BlacklistToken(ctx, s.DB, helpersAuth.TokenFingerprint(rawToken, s.Secret), exp)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	user, err := authRepo.FindUserByID(ctx, s.DB, userID)
	if err != nil {
		return err
	}
	if err := CheckPasswordHash(user.PasswordHash, current); err != nil {
		return ErrInvalidCredentials
	}
	hash, err := HashPassword(next)
	if err != nil {
		return err
	}
	return authRepo.UpdateUserPassword(ctx, s.DB, userID, hash)
}
