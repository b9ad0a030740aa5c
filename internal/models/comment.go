package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment belongs to exactly one Post. ParentID forms an unbounded reply
// tree; only top-level comments (ParentID nil) can be accepted, and at most
// one comment per post has IsAccepted set.
type Comment struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	Content    string   `gorm:"not null" json:"content"`
	UserID     uint     `gorm:"not null;index" json:"user_id"`
	PostID     uint     `gorm:"not null;index" json:"post_id"`
	ParentID   *uint    `gorm:"index" json:"parent_id,omitempty"`
	IsAccepted bool     `gorm:"not null;default:false" json:"is_accepted"`
	IsRemoved  bool     `gorm:"not null;default:false" json:"is_removed"`
	VoteCount  int      `gorm:"not null;default:0" json:"vote_count"`
	User       User     `gorm:"foreignKey:UserID" json:"user"`
	Post       Post     `gorm:"foreignKey:PostID" json:"post,omitempty"`
	Parent     *Comment `gorm:"foreignKey:ParentID" json:"-"`
	// ReplyCount is not persisted; computed at query time
	ReplyCount int `gorm:"-" json:"reply_count"`
	// UserVote is the requesting user's vote on this comment (computed)
	UserVote int `gorm:"-" json:"user_vote"`
	// ContentHTML is the sanitized markdown rendering of Content (computed)
	ContentHTML string         `gorm:"-" json:"content_html,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
