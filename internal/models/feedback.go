// Package models contains data structures for the application's domain models.
package models

import "time"

// Rating bounds for feedback.
const (
	RatingMin = 1
	RatingMax = 5
)

// Feedback is a review left by one party of a completed swap about the other.
// A party reviews a given swap at most once, enforced both in the service
// layer and by the composite unique index. Feedback is immutable once created.
type Feedback struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SwapID     uint      `gorm:"not null;uniqueIndex:idx_feedback_swap_reviewer" json:"swap_id"`
	ReviewerID uint      `gorm:"not null;uniqueIndex:idx_feedback_swap_reviewer" json:"reviewer_id"`
	ReviewedID uint      `gorm:"not null;index:idx_feedback_reviewed" json:"reviewed_id"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `json:"created_at"`

	// Relationships
	Reviewer *User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

// TableName specifies the table name for GORM
func (Feedback) TableName() string {
	return "feedback"
}

// RatingSummary aggregates a user's received feedback. Average is nil when the
// user has no feedback yet; it is never reported as zero.
type RatingSummary struct {
	Average *float64 `json:"average"`
	Count   int      `json:"count"`
}
