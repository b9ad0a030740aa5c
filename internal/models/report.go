package models

import "time"

// Report statuses. PENDING may move directly to a terminal status; terminal
// statuses never change again.
const (
	ReportStatusPending   = "PENDING"
	ReportStatusReviewing = "REVIEWING"
	ReportStatusResolved  = "RESOLVED"
	ReportStatusDismissed = "DISMISSED"
)

// Resolution actions accepted alongside a status change.
const (
	ReportActionRemoveContent = "REMOVE_CONTENT"
	ReportActionNone          = "NONE"
)

// Report flags a post or comment for moderator review. Exactly one of
// PostID or CommentID is set; a reporter may report a given target once.
type Report struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ReporterID  uint       `gorm:"not null;uniqueIndex:idx_report_user_post;uniqueIndex:idx_report_user_comment" json:"reporter_id"`
	PostID      *uint      `gorm:"uniqueIndex:idx_report_user_post" json:"post_id,omitempty"`
	CommentID   *uint      `gorm:"uniqueIndex:idx_report_user_comment" json:"comment_id,omitempty"`
	Reason      string     `gorm:"not null" json:"reason"`
	Description string     `json:"description"`
	Status      string     `gorm:"not null;default:PENDING;index" json:"status"`
	ResolvedBy  *uint      `json:"resolved_by,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Reporter User     `gorm:"foreignKey:ReporterID" json:"reporter"`
	Post     *Post    `gorm:"foreignKey:PostID" json:"post,omitempty"`
	Comment  *Comment `gorm:"foreignKey:CommentID" json:"comment,omitempty"`
}
