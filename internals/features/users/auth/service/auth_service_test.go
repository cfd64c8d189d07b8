package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zakatconnect_backend/internals/constants"
	"zakatconnect_backend/internals/databases/dbtest"
	authRepo "zakatconnect_backend/internals/features/users/auth/repository"
	userModel "zakatconnect_backend/internals/features/users/user/model"
	helpersAuth "zakatconnect_backend/internals/helpers/auth"
)

const testSecret = "test-secret"

func TestLogin(t *testing.T) {
	db := dbtest.New(t)
	mosqueID := dbtest.SeedMosque(t, db, "al-falah")
	u := dbtest.SeedUser(t, db, "admin@masjid.id", "rahasia123", constants.RoleAdmin)
	dbtest.AssignMosque(t, db, u.ID, mosqueID)

	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	svc := NewAuthService(db, testSecret, time.Hour)
	svc.Now = func() time.Time { return now }

	t.Run("ok", func(t *testing.T) {
		res, err := svc.Login(context.Background(), " ADMIN@masjid.id ", "rahasia123")
		require.NoError(t, err)
		assert.Equal(t, u.ID, res.User.ID)
		assert.Equal(t, now.Add(time.Hour), res.ExpiresAt)
		require.Len(t, res.MosqueIDs, 1)
		assert.Equal(t, mosqueID, res.MosqueIDs[0])

		claims, err := ParseAccessToken(testSecret, res.AccessToken, now)
		require.NoError(t, err)
		assert.Equal(t, u.ID, claims.UserID())
		assert.Equal(t, constants.RoleAdmin, claims.Role)
		assert.Equal(t, []string{mosqueID.String()}, claims.MosqueIDs)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "admin@masjid.id", "salah")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nobody@masjid.id", "rahasia123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive", func(t *testing.T) {
		require.NoError(t, db.Model(&userModel.UserModel{}).Where("id = ?", u.ID).Update("is_active", false).Error)
		t.Cleanup(func() {
			db.Model(&userModel.UserModel{}).Where("id = ?", u.ID).Update("is_active", true)
		})
		_, err := svc.Login(context.Background(), "admin@masjid.id", "rahasia123")
		assert.ErrorIs(t, err, ErrUserInactive)
	})
}

func TestParseAccessToken(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	tok, _, err := IssueAccessToken(testSecret, TokenSubject{UserID: uuid.New(), Role: constants.RoleClerk}, time.Minute, now)
	require.NoError(t, err)

	_, err = ParseAccessToken("other-secret", tok, now)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = ParseAccessToken(testSecret, tok, now.Add(2*time.Minute))
	assert.ErrorIs(t, err, ErrTokenExpired)

	_, err = ParseAccessToken(testSecret, "not-a-jwt", now)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestLogoutBlacklistsToken(t *testing.T) {
	db := dbtest.New(t)
	u := dbtest.SeedUser(t, db, "clerk@masjid.id", "rahasia123", constants.RoleClerk)
	svc := NewAuthService(db, testSecret, time.Hour)

	res, err := svc.Login(context.Background(), u.Email, "rahasia123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), res.AccessToken))
	// logout dua kali tidak error
	require.NoError(t, svc.Logout(context.Background(), res.AccessToken))

	ok, err := authRepo.IsTokenBlacklisted(context.Background(), db, helpersAuth.TokenFingerprint(res.AccessToken, testSecret))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestChangePassword(t *testing.T) {
	db := dbtest.New(t)
	u := dbtest.SeedUser(t, db, "admin2@masjid.id", "rahasia123", constants.RoleAdmin)
	svc := NewAuthService(db, testSecret, time.Hour)

	assert.ErrorIs(t, svc.ChangePassword(context.Background(), u.ID, "salah", "passwordbaru"), ErrInvalidCredentials)
	assert.ErrorIs(t, svc.ChangePassword(context.Background(), u.ID, "rahasia123", "pendek"), ErrWeakPassword)
	require.NoError(t, svc.ChangePassword(context.Background(), u.ID, "rahasia123", "passwordbaru"))

	_, err := svc.Login(context.Background(), u.Email, "passwordbaru")
	assert.NoError(t, err)
}
