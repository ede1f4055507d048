package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookiteasy/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "name", "email", "avatar", "role", "password_hash", "created_at"}

func TestUserStore_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewUserStore(mock)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("1", "John Doe", "john@example.com", "JD", model.RoleUser, "", created).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = store.Create(context.Background(), &model.User{
		ID: "1", Name: "John Doe", Email: "john@example.com", Avatar: "JD",
		Role: model.RoleUser, CreatedAt: created,
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_FindByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewUserStore(mock)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT .+ FROM users WHERE LOWER").
		WithArgs("JOHN@example.COM").
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow("1", "John Doe", "john@example.com", "JD", model.RoleUser, "", created))

	user, err := store.FindByEmail(context.Background(), "JOHN@example.COM")

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "1", user.ID)
	assert.Equal(t, "john@example.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_FindByEmail_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewUserStore(mock)

	mock.ExpectQuery("SELECT .+ FROM users WHERE LOWER").
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)

	user, err := store.FindByEmail(context.Background(), "nobody@example.com")

	assert.NoError(t, err, "absence is not an error")
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_FindByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewUserStore(mock)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT .+ FROM users WHERE id =").
		WithArgs("2").
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow("2", "Admin User", "admin@bookiteasy.com", "AU", model.RoleAdmin, "", created))

	user, err := store.FindByID(context.Background(), "2")

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserStore_FindByID_QueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewUserStore(mock)

	mock.ExpectQuery("SELECT .+ FROM users WHERE id =").
		WithArgs("2").
		WillReturnError(errors.New("connection refused"))

	user, err := store.FindByID(context.Background(), "2")

	assert.Error(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryUserStore_FindByEmailCaseInsensitive(t *testing.T) {
	store := NewMemoryUserStore(SeedUsers())

	user, err := store.FindByEmail(context.Background(), "ADMIN@BookItEasy.com")

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "2", user.ID)

	missing, err := store.FindByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryUserStore_CreateThenFind(t *testing.T) {
	store := NewMemoryUserStore(nil)

	require.NoError(t, store.Create(context.Background(), &model.User{ID: "9", Email: "new@example.com"}))

	user, err := store.FindByID(context.Background(), "9")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "new@example.com", user.Email)
}
