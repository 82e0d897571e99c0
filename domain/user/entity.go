package user

import (
	"strings"
	"time"
)

// Role is the kind of account a user registered as.
type Role string

const (
	RoleNeedy  Role = "NEEDY"
	RoleHelper Role = "HELPER"
	RoleAdmin  Role = "ADMIN"
)

// ParseRole normalizes a role name. The second return value is false for
// unknown roles.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	switch r {
	case RoleNeedy, RoleHelper, RoleAdmin:
		return r, true
	default:
		return "", false
	}
}

// User represents a user entity in the system.
type User struct {
	ID           string `gorm:"primaryKey;type:text"`
	Email        string `gorm:"uniqueIndex;not null;type:text"`
	Number       string `gorm:"uniqueIndex;not null;type:text"`
	Role         Role   `gorm:"not null;type:text"`
	PasswordHash string `gorm:"not null;type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// TokenPair represents access and refresh tokens.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
	Role         Role   `json:"role"`
}

// Claims represents JWT claims.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}
