// file: repository/user_repository_test.go

package repository

import (
	"database/sql"
	"testing"
	"time"

	"echotrace-api/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestUserRepository_CreateUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("alice", "hashed", "Alice", "alice@example.com", "user", true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, now))

	user := &model.User{
		Username:         "alice",
		Password:         "hashed",
		Name:             "Alice",
		Email:            "alice@example.com",
		Role:             "user",
		RemindersEnabled: true,
	}
	assert.NoError(t, repo.CreateUser(user))
	assert.Equal(t, 1, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetUserByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)
	now := time.Now()

	columns := []string{"id", "username", "password", "name", "email", "role", "refresh_token", "reminders_enabled", "created_at"}

	t.Run("found with null refresh token", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM users WHERE username`).
			WithArgs("alice").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(1, "alice", "hashed", "Alice", "alice@example.com", "user", nil, true, now))

		user, err := repo.GetUserByUsername("alice")
		assert.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Empty(t, user.RefreshToken)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM users WHERE username`).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetUserByUsername("ghost")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ExistsByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByUsername("alice")
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateRefreshToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)

	t.Run("overwrites stored value", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET refresh_token`).
			WithArgs("new-token", "alice").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateRefreshToken("alice", "new-token"))
	})

	t.Run("unknown user", func(t *testing.T) {
		mock.ExpectExec(`UPDATE users SET refresh_token`).
			WithArgs("new-token", "ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateRefreshToken("ghost", "new-token"), sql.ErrNoRows)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
