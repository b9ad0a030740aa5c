package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is an authored discussion thread. VoteCount is a denormalized
// projection of the Vote ledger and is only written in the same transaction
// as the ledger row it reflects.
type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	Content    string    `gorm:"not null" json:"content"`
	Published  bool      `gorm:"not null;default:true" json:"published"`
	IsPinned   bool      `gorm:"not null;default:false" json:"is_pinned"`
	IsLocked   bool      `gorm:"not null;default:false" json:"is_locked"`
	IsRemoved  bool      `gorm:"not null;default:false" json:"is_removed"`
	ViewCount  int       `gorm:"not null;default:0" json:"view_count"`
	VoteCount  int       `gorm:"not null;default:0" json:"vote_count"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID" json:"user"`
	CategoryID *uint     `gorm:"index" json:"category_id,omitempty"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Tags       []Tag     `gorm:"many2many:post_tags" json:"tags,omitempty"`
	// CommentCount is not persisted; computed at query time
	CommentCount int `gorm:"-" json:"comment_count"`
	// UserVote is the requesting user's vote on this post (computed)
	UserVote int `gorm:"-" json:"user_vote"`
	// ContentHTML is the sanitized markdown rendering of Content (computed)
	ContentHTML string         `gorm:"-" json:"content_html,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
