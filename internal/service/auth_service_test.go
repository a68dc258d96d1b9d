package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/catalog-service/internal/auth"
	"github.com/spec-kit/catalog-service/internal/config"
	"github.com/spec-kit/catalog-service/internal/domain"
	"github.com/spec-kit/catalog-service/internal/errs"
	"github.com/spec-kit/catalog-service/internal/events"
)

const (
	testCPF      = "123.456.789-09"
	testPassword = "hunter2!"
	testIP       = "203.0.113.7"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo, *fakeLimiter, *recordingDispatcher) {
	t.Helper()

	users := newFakeUserRepo()
	lim := newFakeLimiter(3)
	dispatcher := &recordingDispatcher{}

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 30,
			BcryptCost:            bcrypt.MinCost,
		},
	}
	svc := NewAuthService(cfg, AuthDependencies{
		UserRepo:   users,
		Limiter:    lim,
		Dispatcher: dispatcher,
	})
	return svc, users, lim, dispatcher
}

func seedUser(t *testing.T, users *fakeUserRepo, role domain.Role) *domain.User {
	t.Helper()

	hash, err := auth.HashPassword(testPassword, bcrypt.MinCost)
	require.NoError(t, err)

	user := &domain.User{
		Name:         "Maria Silva",
		CPF:          testCPF,
		PasswordHash: hash,
		Role:         role,
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestAuthenticateSuccess(t *testing.T) {
	svc, users, _, dispatcher := newAuthFixture(t)
	user := seedUser(t, users, domain.RoleUser)

	issued, err := svc.Authenticate(context.Background(), testCPF, testPassword, testIP)
	require.NoError(t, err)
	require.NotEmpty(t, issued.Token)
	require.Equal(t, domain.TokenType, issued.Type)
	require.Equal(t, user.ID, issued.SubjectID)
	require.Equal(t, user.Name, issued.Name)
	require.Equal(t, testCPF, issued.CPF)
	require.Equal(t, domain.RoleUser, issued.Role)
	require.False(t, issued.ExpiresAt.IsZero())

	claims, err := svc.TokenManager().Validate(issued.Token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, domain.RoleUser, claims.Role)

	recorded := dispatcher.recorded()
	require.Len(t, recorded, 1)
	require.Equal(t, events.EventLoginSucceeded, recorded[0].Type)
}

func TestAuthenticateUnknownCPF(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, err := svc.Authenticate(context.Background(), testCPF, testPassword, testIP)
	require.ErrorIs(t, err, errs.ErrInvalidCredentials)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc, users, _, _ := newAuthFixture(t)
	seedUser(t, users, domain.RoleUser)

	_, err := svc.Authenticate(context.Background(), testCPF, "wrong-password", testIP)
	require.ErrorIs(t, err, errs.ErrInvalidCredentials)
}

func TestAuthenticateRateLimited(t *testing.T) {
	svc, users, _, _ := newAuthFixture(t)
	seedUser(t, users, domain.RoleUser)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, err := svc.Authenticate(ctx, testCPF, "wrong-password", testIP)
		require.ErrorIs(t, err, errs.ErrInvalidCredentials)
	}

	// Third failure crosses the threshold.
	_, err := svc.Authenticate(ctx, testCPF, "wrong-password", testIP)
	require.ErrorIs(t, err, errs.ErrRateLimited)

	// Even correct credentials are refused while locked.
	_, err = svc.Authenticate(ctx, testCPF, testPassword, testIP)
	require.ErrorIs(t, err, errs.ErrRateLimited)
}

func TestAuthenticateSuccessClearsFailures(t *testing.T) {
	svc, users, lim, _ := newAuthFixture(t)
	seedUser(t, users, domain.RoleUser)

	ctx := context.Background()
	_, err := svc.Authenticate(ctx, testCPF, "wrong-password", testIP)
	require.ErrorIs(t, err, errs.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, testCPF, testPassword, testIP)
	require.NoError(t, err)
	require.Equal(t, 1, lim.successes)

	// Counter was reset; further misses start from zero.
	_, err = svc.Authenticate(ctx, testCPF, "wrong-password", testIP)
	require.ErrorIs(t, err, errs.ErrInvalidCredentials)
}

func TestIntrospect(t *testing.T) {
	svc, users, _, _ := newAuthFixture(t)
	seeded := seedUser(t, users, domain.RoleAdmin)

	ctx := context.Background()
	issued, err := svc.Authenticate(ctx, testCPF, testPassword, testIP)
	require.NoError(t, err)

	user, claims, err := svc.Introspect(ctx, issued.Token)
	require.NoError(t, err)
	require.Equal(t, seeded.ID, user.ID)
	require.Equal(t, domain.RoleAdmin, user.Role)
	require.Equal(t, seeded.ID, claims.UserID)
}

func TestIntrospectDeletedUser(t *testing.T) {
	svc, users, _, _ := newAuthFixture(t)
	seeded := seedUser(t, users, domain.RoleUser)

	ctx := context.Background()
	issued, err := svc.Authenticate(ctx, testCPF, testPassword, testIP)
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, seeded.ID))

	_, _, err = svc.Introspect(ctx, issued.Token)
	require.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestIntrospectGarbageToken(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, _, err := svc.Introspect(context.Background(), "not.a.token")
	require.ErrorIs(t, err, errs.ErrInvalidToken)
}
