// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// ProfileStatus controls whether a user appears in discovery listings.
type ProfileStatus string

const (
	// ProfileStatusPublic makes the profile visible in discovery listings.
	ProfileStatusPublic ProfileStatus = "public"
	// ProfileStatusPrivate hides the profile from discovery. Private profiles
	// remain directly addressable by ID and can still be a counterparty in
	// existing swaps.
	ProfileStatusPrivate ProfileStatus = "private"
)

// Availability holds the canonical availability values. The column is an open
// string so new values can be introduced without a migration.
const (
	AvailabilityWeekdays = "weekdays"
	AvailabilityEvenings = "evenings"
	AvailabilityWeekends = "weekends"
)

// User represents a member of the skill-exchange marketplace.
//
// Feedback is intentionally NOT stored on the user record. It is always
// derived by filtering the feedback collection by reviewed_id, so there is a
// single source of truth for ratings.
type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Email         string         `gorm:"unique;not null" json:"email"`
	Password      string         `gorm:"not null" json:"-"`
	Location      string         `json:"location,omitempty"`
	SkillsOffered []string       `gorm:"serializer:json" json:"skills_offered"`
	SkillsWanted  []string       `gorm:"serializer:json" json:"skills_wanted"`
	Availability  string         `gorm:"type:varchar(20);default:'weekends'" json:"availability"`
	ProfileStatus ProfileStatus  `gorm:"type:varchar(20);default:'public';index" json:"profile_status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// OffersSkill reports whether the user currently lists skill in SkillsOffered.
func (u *User) OffersSkill(skill string) bool {
	for _, s := range u.SkillsOffered {
		if s == skill {
			return true
		}
	}
	return false
}

// UserSummary is the compact user representation embedded in swap and
// feedback responses.
type UserSummary struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

// Summary returns the compact representation of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Location: u.Location}
}
