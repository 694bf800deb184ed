// Package domain contains core types for the auth service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Role is the privilege level of a user account.
type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// ParseRole normalizes a stored role value, defaulting to user.
func ParseRole(raw string) Role {
	switch Role(raw) {
	case RoleManager:
		return RoleManager
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleUser
	}
}

// User represents a system user account.
type User struct {
	ID                snowflake.ID `gorm:"primaryKey"`
	Username          string       `gorm:"type:text;not null;uniqueIndex"`
	Email             string       `gorm:"type:text"`
	PasswordHash      string       `gorm:"type:text;not null"`
	Role              Role         `gorm:"type:text;not null;default:'user'"`
	DiscountThreshold float64      `gorm:"not null;default:0"`
	CreatedAt         time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt         time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// Session represents a persisted login session.
type Session struct {
	ID               snowflake.ID `gorm:"primaryKey"`
	UserID           snowflake.ID `gorm:"column:user_id;not null;index"`
	SessionTokenHash string       `gorm:"column:session_token_hash;type:text;not null;uniqueIndex"`
	UserAgent        string       `gorm:"column:user_agent;type:text"`
	IPAddress        string       `gorm:"column:ip_address;type:text"`
	ExpiresAt        time.Time    `gorm:"column:expires_at;not null;index"`
	RevokedAt        *time.Time   `gorm:"column:revoked_at"`
	CreatedAt        time.Time    `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	LastSeenAt       time.Time    `gorm:"column:last_seen_at;not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Session) TableName() string { return "sessions" }

// Actor is the authenticated user context handed to domain operations.
type Actor struct {
	UserID    snowflake.ID `json:"userId"`
	Username  string       `json:"username"`
	Role      Role         `json:"role"`
	Threshold float64      `json:"threshold"`
}

// DiscountLimit is the maximum effective discount the actor may clear
// without escalation. Admins are unbounded, expressed as 100 percent.
func (a Actor) DiscountLimit() float64 {
	if a.Role == RoleAdmin {
		return 100
	}
	return a.Threshold
}

// CanModerate reports whether the actor may see and act on records beyond
// its own.
func (a Actor) CanModerate() bool {
	return a.Role == RoleManager || a.Role == RoleAdmin
}
