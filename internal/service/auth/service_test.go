package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/corvitlabs/attendance-tracker/internal/domain/auth"
	"github.com/corvitlabs/attendance-tracker/internal/domain/user"
	"github.com/corvitlabs/attendance-tracker/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessExp = "1h"
	testSecret    = "test-secret-key-for-jwt"
)

// stubUserRepo serves a fixed set of users; writes are not needed here.
type stubUserRepo struct {
	user.UserRepository
	users []user.User
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (s *stubUserRepo) GetByID(ctx context.Context, id int64) (user.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func newTestAuthService(t *testing.T, users ...user.User) (auth.AuthService, jwt.Service) {
	t.Helper()
	jwtSvc := jwt.NewJWTService(testSecret, testAccessExp)
	return NewAuthService(&stubUserRepo{users: users}, jwtSvc), jwtSvc
}

func testUser(t *testing.T, id int64, email, password string, active bool) user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return user.User{
		ID:           id,
		EmployeeID:   fmt.Sprintf("EMP%03d", id),
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hash),
		Role:         user.RoleEmployee,
		IsActive:     active,
	}
}

func TestLogin_Success(t *testing.T) {
	svc, jwtSvc := newTestAuthService(t, testUser(t, 1, "login@example.com", "password123", true))

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Email: "Login@Example.com", Password: "password123"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.InDelta(t, 3600, resp.AccessTokenExpiresIn, 5)
	assert.Equal(t, int64(1), resp.User.ID)

	token, err := jwtSvc.JWTAuth().Decode(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "1", token.PrivateClaims()["user_id"])
}

func TestLogin_Failures(t *testing.T) {
	svc, _ := newTestAuthService(t,
		testUser(t, 1, "active@example.com", "password123", true),
		testUser(t, 2, "inactive@example.com", "password123", false),
	)

	tests := []struct {
		name    string
		req     auth.LoginRequest
		wantErr error
	}{
		{"unknown email", auth.LoginRequest{Email: "nobody@example.com", Password: "password123"}, auth.ErrInvalidCredentials},
		{"wrong password", auth.LoginRequest{Email: "active@example.com", Password: "wrong"}, auth.ErrInvalidCredentials},
		{"inactive account", auth.LoginRequest{Email: "inactive@example.com", Password: "password123"}, auth.ErrAccountInactive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLogin_Validation(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "bad", Password: ""})
	assert.Error(t, err)
}

func TestLogout_RevokesToken(t *testing.T) {
	svc, jwtSvc := newTestAuthService(t)

	require.NoError(t, svc.Logout(context.Background(), auth.LogoutRequest{TokenID: "abc", ExpiresAt: 9999999999}))
	assert.True(t, jwtSvc.IsTokenRevoked("abc"))

	assert.ErrorIs(t, svc.Logout(context.Background(), auth.LogoutRequest{}), auth.ErrInvalidToken)
}

func TestMe(t *testing.T) {
	svc, _ := newTestAuthService(t,
		testUser(t, 1, "active@example.com", "password123", true),
		testUser(t, 2, "inactive@example.com", "password123", false),
	)

	me, err := svc.Me(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "active@example.com", me.Email)

	_, err = svc.Me(context.Background(), 2)
	assert.ErrorIs(t, err, auth.ErrAccountInactive)

	_, err = svc.Me(context.Background(), 3)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
