package models

import "time"

// Invitation invites an email address into a group. The token is a
// write-once secret; it and the expiry are never serialized on reads.
// At most one invitation may exist per (email, group) pair.
type Invitation struct {
	UUID        string    `json:"uuid"`
	GroupUUID   string    `json:"groupUuid"`
	CreatorUUID string    `json:"creatorUuid"`
	Email       string    `json:"email"`
	TimesSent   int       `json:"timesSent"`
	SentAt      time.Time `json:"sentAt"`
	Token       string    `json:"-"`
	ExpiresAt   time.Time `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Group   *Group `json:"group,omitempty"`
	Creator *User  `json:"creator,omitempty"`
}
