// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles, in ascending order of privilege.
const (
	RoleUser      = "USER"
	RoleModerator = "MODERATOR"
	RoleAdmin     = "ADMIN"
)

// User represents a forum member. Reputation is mutated only by vote and
// accepted-answer events; the ban fields only by moderation.
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Username    string         `gorm:"unique;not null" json:"username"`
	Email       string         `gorm:"unique;not null" json:"email"`
	Password    string         `gorm:"not null" json:"-"`
	Name        string         `json:"name"`
	Bio         string         `json:"bio"`
	Avatar      string         `json:"avatar"`
	Role        string         `gorm:"not null;default:USER" json:"role"`
	Reputation  int            `gorm:"not null;default:0" json:"reputation"`
	IsBanned    bool           `gorm:"not null;default:false" json:"is_banned"`
	BannedUntil *time.Time     `json:"banned_until,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Posts       []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// IsStaff reports whether the user may perform moderation actions.
func (u *User) IsStaff() bool {
	return u.Role == RoleModerator || u.Role == RoleAdmin
}

// EffectivelyBanned reports whether the ban is still in force at the given
// time. A set BannedUntil in the past means the ban has lapsed even though
// the IsBanned flag is only cleared by an explicit unban.
func (u *User) EffectivelyBanned(now time.Time) bool {
	if !u.IsBanned {
		return false
	}
	if u.BannedUntil == nil {
		return true
	}
	return u.BannedUntil.After(now)
}
