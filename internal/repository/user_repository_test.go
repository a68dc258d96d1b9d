package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/catalog-service/internal/domain"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return mock
}

var userColumns = []string{"id", "name", "cpf", "password_hash", "role", "created_at", "updated_at"}

func TestUserRepositoryCreate(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	repo := NewUserRepository(mock)
	ctx := context.Background()

	now := time.Now()
	user := &domain.User{Name: "Ana", CPF: "111.111.111-11", PasswordHash: "hash", Role: domain.RoleUser}

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(user.Name, user.CPF, user.PasswordHash, user.Role).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))

	require.NoError(t, repo.Create(ctx, user))
	require.Equal(t, int64(7), user.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryGetByCPF(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	repo := NewUserRepository(mock)
	ctx := context.Background()

	now := time.Now()
	mock.ExpectQuery(`FROM users WHERE cpf=\$1`).
		WithArgs("111.111.111-11").
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow(int64(7), "Ana", "111.111.111-11", "hash", domain.RoleUser, now, now))

	user, err := repo.GetByCPF(ctx, "111.111.111-11")
	require.NoError(t, err)
	require.Equal(t, int64(7), user.ID)
	require.Equal(t, domain.RoleUser, user.Role)

	mock.ExpectQuery(`FROM users WHERE cpf=\$1`).
		WithArgs("999.999.999-99").
		WillReturnError(pgx.ErrNoRows)

	_, err = repo.GetByCPF(ctx, "999.999.999-99")
	require.ErrorIs(t, err, pgx.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryUpdateMissingRow(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	repo := NewUserRepository(mock)

	user := &domain.User{ID: 404, Name: "Ana", CPF: "111.111.111-11", PasswordHash: "hash", Role: domain.RoleUser}

	mock.ExpectExec(`UPDATE users SET`).
		WithArgs(user.Name, user.CPF, user.PasswordHash, user.Role, user.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), user)
	require.ErrorIs(t, err, pgx.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryDelete(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	repo := NewUserRepository(mock)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM users WHERE id=\$1`).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, repo.Delete(ctx, 7))

	mock.ExpectExec(`DELETE FROM users WHERE id=\$1`).
		WithArgs(int64(404)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.ErrorIs(t, repo.Delete(ctx, 404), pgx.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryExistsByCPF(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("111.111.111-11").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByCPF(context.Background(), "111.111.111-11")
	require.NoError(t, err)
	require.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryList(t *testing.T) {
	mock := newMockPool(t)
	defer mock.Close()
	repo := NewUserRepository(mock)

	now := time.Now()
	mock.ExpectQuery(`FROM users ORDER BY id`).
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow(int64(1), "Ana", "111.111.111-11", "h1", domain.RoleUser, now, now).
			AddRow(int64(2), "Bruno", "222.222.222-22", "h2", domain.RoleAdmin, now, now))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, domain.RoleAdmin, users[1].Role)
	require.NoError(t, mock.ExpectationsWereMet())
}
