// file: model/request.go

package model

// RegisterRequest defines the payload for creating a new account.
// It includes validation tags to ensure data integrity at the entry point.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user"`
}

// LoginRequest defines the payload for user authentication.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the refresh token presented in exchange for a new
// access token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// PasswordUpdateRequest defines the payload for changing the password of the
// authenticated user.
type PasswordUpdateRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// ProfileUpdateRequest defines the payload for partial profile updates.
// Blank string fields are left unchanged.
type ProfileUpdateRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email" validate:"omitempty,email"`
	Role             string `json:"role" validate:"omitempty,oneof=admin user"`
	RemindersEnabled bool   `json:"reminders_enabled"`
}

// LogEntryRequest defines the payload for creating or updating a log entry.
// On updates, blank fields are left unchanged and FilesToDelete lists stored
// attachment names to remove.
type LogEntryRequest struct {
	Title          string   `json:"title" validate:"omitempty,max=200"`
	Problem        string   `json:"problem"`
	Solution       string   `json:"solution"`
	ReferenceLinks []string `json:"reference_links"`
	Tags           []string `json:"tags"`
	CodeSnippet    string   `json:"code_snippet"`
	FilesToDelete  []string `json:"files_to_delete"`
}
