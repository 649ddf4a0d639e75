// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// SwapStatus represents the lifecycle state of a swap request.
type SwapStatus string

const (
	// SwapStatusPending is the initial state of every swap request.
	SwapStatusPending SwapStatus = "pending"
	// SwapStatusAccepted means the responder agreed to the exchange.
	SwapStatusAccepted SwapStatus = "accepted"
	// SwapStatusRejected is terminal; the responder declined.
	SwapStatusRejected SwapStatus = "rejected"
	// SwapStatusCompleted is terminal; one of the parties marked the accepted
	// exchange as done.
	SwapStatusCompleted SwapStatus = "completed"
	// SwapStatusDeleted is terminal; the requester withdrew while pending.
	SwapStatusDeleted SwapStatus = "deleted"
)

// Terminal reports whether no further status transition is allowed.
func (s SwapStatus) Terminal() bool {
	switch s {
	case SwapStatusRejected, SwapStatusCompleted, SwapStatusDeleted:
		return true
	}
	return false
}

// Message length bounds for swap requests.
const (
	SwapMessageMinLen = 10
	SwapMessageMaxLen = 500
)

// SwapRequest represents a proposed exchange of one user's skill for
// another's.
//
// OfferedSkill and WantedSkill are snapshots taken at creation time. They are
// validated against the parties' skill lists once, when the request is
// created, and never revalidated after later profile edits.
//
// RequesterHidden and ResponderHidden are per-party inbox visibility flags.
// Removing a swap from one inbox never affects the other party's inbox, so a
// "delete" from the inbox is not a shared-state mutation.
type SwapRequest struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	RequesterID     uint       `gorm:"not null;index:idx_swaps_requester" json:"requester_id"`
	ResponderID     uint       `gorm:"not null;index:idx_swaps_responder" json:"responder_id"`
	OfferedSkill    string     `gorm:"not null" json:"offered_skill"`
	WantedSkill     string     `gorm:"not null" json:"wanted_skill"`
	Message         string     `gorm:"type:text;not null" json:"message"`
	Status          SwapStatus `gorm:"type:varchar(20);default:'pending';index:idx_swaps_status" json:"status"`
	RequesterHidden bool       `gorm:"default:false" json:"-"`
	ResponderHidden bool       `gorm:"default:false" json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Relationships
	Requester *User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Responder *User `gorm:"foreignKey:ResponderID" json:"responder,omitempty"`
}

// TableName specifies the table name for GORM
func (SwapRequest) TableName() string {
	return "swap_requests"
}

// IsParty reports whether userID is the requester or the responder.
func (s *SwapRequest) IsParty(userID uint) bool {
	return s.RequesterID == userID || s.ResponderID == userID
}

// OtherPartyID resolves the counterparty from the given viewer's perspective.
func (s *SwapRequest) OtherPartyID(viewerID uint) uint {
	if viewerID == s.RequesterID {
		return s.ResponderID
	}
	return s.RequesterID
}

// HiddenFor reports whether the swap has been removed from userID's inbox.
func (s *SwapRequest) HiddenFor(userID uint) bool {
	if userID == s.RequesterID {
		return s.RequesterHidden
	}
	return s.ResponderHidden
}

// SwapView is a swap rendered from one viewer's perspective. Invalid marks an
// orphaned swap whose counterparty no longer resolves to a user record; such
// entries support only removal.
type SwapView struct {
	Swap      SwapRequest  `json:"swap"`
	Direction string       `json:"direction"` // "outgoing" if the viewer is the requester
	OtherUser *UserSummary `json:"other_user"`
	Invalid   bool         `json:"invalid"`
}
