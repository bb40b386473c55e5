package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole reports whether raw is one of the closed set of account roles.
func ValidRole(raw string) bool {
	return raw == RoleUser || raw == RoleAdmin
}

type User struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	Name               string     `gorm:"not null" json:"name"`
	Email              string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string     `gorm:"not null" json:"-"`
	Role               string     `gorm:"not null;default:user" json:"role"`
	ResetCode          *string    `json:"-"`
	ResetCodeExpiresAt *time.Time `json:"-"`
	CreatedAt          time.Time  `gorm:"not null" json:"createdAt"`
}

// RecoveryChallenge is the outstanding one-time passcode state for an account.
// At most one challenge exists per account; issuing a new one replaces it.
type RecoveryChallenge struct {
	Code      string
	ExpiresAt time.Time
}

// Matches reports whether the presented code is exactly the stored one and the
// challenge has not expired. A code presented exactly at the expiry instant is
// still accepted.
func (challenge RecoveryChallenge) Matches(code string, now time.Time) bool {
	return challenge.Code != "" && challenge.Code == code && !now.After(challenge.ExpiresAt)
}

// RecoveryChallenge returns the outstanding challenge, or nil when none is set.
// Expiry is not evaluated here; callers check it via Matches.
func (user *User) RecoveryChallenge() *RecoveryChallenge {
	if user.ResetCode == nil || user.ResetCodeExpiresAt == nil {
		return nil
	}
	return &RecoveryChallenge{Code: *user.ResetCode, ExpiresAt: *user.ResetCodeExpiresAt}
}

// SetRecoveryChallenge replaces any outstanding challenge with the given one.
func (user *User) SetRecoveryChallenge(challenge RecoveryChallenge) {
	code := challenge.Code
	expiresAt := challenge.ExpiresAt
	user.ResetCode = &code
	user.ResetCodeExpiresAt = &expiresAt
}

// ClearRecoveryChallenge removes the challenge so the code cannot be replayed.
func (user *User) ClearRecoveryChallenge() {
	user.ResetCode = nil
	user.ResetCodeExpiresAt = nil
}

// PublicUser is the only user shape that crosses the HTTP boundary. The
// password hash and recovery fields never appear in it.
type PublicUser struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (user *User) Public() PublicUser {
	return PublicUser{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
