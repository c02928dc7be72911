// file: model/response.go

package model

// AuthResponse is returned by login and refresh. Refresh echoes back the
// same refresh token it was given; only login mints a new one.
type AuthResponse struct {
	Token        string `json:"token"`
	Username     string `json:"username"`
	RefreshToken string `json:"refresh_token"`
}

// UserProfileResponse is the public view of an account.
type UserProfileResponse struct {
	Username         string `json:"username"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Role             string `json:"role"`
	RemindersEnabled bool   `json:"reminders_enabled"`
}

// ReminderMessage is published to the reminders topic and streamed to
// subscribed clients.
type ReminderMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
