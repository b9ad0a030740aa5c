package models

import "time"

// Moderation actions.
const (
	ModActionLock    = "LOCK"
	ModActionUnlock  = "UNLOCK"
	ModActionPin     = "PIN"
	ModActionUnpin   = "UNPIN"
	ModActionRemove  = "REMOVE"
	ModActionRestore = "RESTORE"
	ModActionBan     = "BAN"
	ModActionUnban   = "UNBAN"
)

// Moderation target types.
const (
	ModTargetPost    = "POST"
	ModTargetComment = "COMMENT"
	ModTargetUser    = "USER"
)

// ModerationLog is an append-only audit record. Rows are never updated or
// deleted; no update path exists in the codebase.
type ModerationLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Action      string    `gorm:"not null" json:"action"`
	TargetType  string    `gorm:"not null;index" json:"target_type"`
	TargetID    uint      `gorm:"not null;index" json:"target_id"`
	ModeratorID uint      `gorm:"not null" json:"moderator_id"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"created_at"`

	Moderator User `gorm:"foreignKey:ModeratorID" json:"moderator"`
}

// Ban is an immutable historical record of a user ban. The live gate is the
// pair of flags on User; Ban rows are history and survive an unban.
type Ban struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	Reason      string     `gorm:"not null" json:"reason"`
	IsPermanent bool       `gorm:"not null;default:false" json:"is_permanent"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedBy   uint       `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
