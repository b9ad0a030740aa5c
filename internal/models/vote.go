package models

import "time"

// Vote target types.
const (
	VoteTargetPost    = "post"
	VoteTargetComment = "comment"
)

// Reputation weight per vote point, and the bonus for an accepted answer.
const (
	PostVoteWeight       = 5
	CommentVoteWeight    = 2
	AcceptedAnswerWeight = 15
)

// Vote records one signed vote per (user, target). Exactly one of PostID or
// CommentID is set. Value is -1 or 1; removing a vote deletes the row rather
// than storing a zero.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_vote_user_post;uniqueIndex:idx_vote_user_comment" json:"user_id"`
	PostID    *uint     `gorm:"uniqueIndex:idx_vote_user_post" json:"post_id,omitempty"`
	CommentID *uint     `gorm:"uniqueIndex:idx_vote_user_comment" json:"comment_id,omitempty"`
	Value     int       `gorm:"not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
