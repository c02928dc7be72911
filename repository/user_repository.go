// file: repository/user_repository.go

package repository

import (
	"database/sql"

	"echotrace-api/logger"
	"echotrace-api/model"
)

// IUserRepository defines the contract for user persistence. The refresh
// token lives on the user row: an account holds at most one live refresh
// token, and writing a new one overwrites the previous value.
type IUserRepository interface {
	CreateUser(user *model.User) error
	GetUserByUsername(username string) (*model.User, error)
	ExistsByUsername(username string) (bool, error)
	UpdateRefreshToken(username, refreshToken string) error
	UpdateProfile(user *model.User) error
	UpdatePassword(username, hashedPassword string) error
	GetUsersWithRemindersEnabled() ([]*model.User, error)
}

// UserRepository implements IUserRepository on Postgres.
type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) CreateUser(user *model.User) error {
	query := `INSERT INTO users (username, password, name, email, role, reminders_enabled)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	return r.DB.QueryRow(query, user.Username, user.Password, user.Name, user.Email, user.Role, user.RemindersEnabled).
		Scan(&user.ID, &user.CreatedAt)
}

func (r *UserRepository) GetUserByUsername(username string) (*model.User, error) {
	user := &model.User{}
	var refreshToken sql.NullString

	query := `SELECT id, username, password, name, email, role, refresh_token, reminders_enabled, created_at
	          FROM users WHERE username = $1`
	err := r.DB.QueryRow(query, username).Scan(
		&user.ID, &user.Username, &user.Password, &user.Name, &user.Email,
		&user.Role, &refreshToken, &user.RemindersEnabled, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.RefreshToken = refreshToken.String
	return user, nil
}

func (r *UserRepository) ExistsByUsername(username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`
	if err := r.DB.QueryRow(query, username).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// UpdateRefreshToken overwrites the stored refresh token for the account.
// A single UPDATE keeps concurrent logins last-write-wins.
func (r *UserRepository) UpdateRefreshToken(username, refreshToken string) error {
	query := `UPDATE users SET refresh_token = $1 WHERE username = $2`
	res, err := r.DB.Exec(query, refreshToken, username)
	if err != nil {
		logger.Log.WithError(err).WithField("username", username).Error("Failed to update refresh token")
		return err
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *UserRepository) UpdateProfile(user *model.User) error {
	query := `UPDATE users SET name = $1, email = $2, role = $3, reminders_enabled = $4 WHERE username = $5`
	_, err := r.DB.Exec(query, user.Name, user.Email, user.Role, user.RemindersEnabled, user.Username)
	return err
}

func (r *UserRepository) UpdatePassword(username, hashedPassword string) error {
	query := `UPDATE users SET password = $1 WHERE username = $2`
	_, err := r.DB.Exec(query, hashedPassword, username)
	return err
}

func (r *UserRepository) GetUsersWithRemindersEnabled() ([]*model.User, error) {
	query := `SELECT id, username, name, email, role, reminders_enabled, created_at
	          FROM users WHERE reminders_enabled = TRUE`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user := &model.User{}
		if err := rows.Scan(&user.ID, &user.Username, &user.Name, &user.Email,
			&user.Role, &user.RemindersEnabled, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
