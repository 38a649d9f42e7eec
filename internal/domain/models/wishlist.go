package models

import "time"

// WishList is a ranked wish on a group's list. Only the creator may mutate
// it; any group member may read it.
type WishList struct {
	UUID        string    `json:"uuid"`
	GroupUUID   string    `json:"groupUuid"`
	CreatorUUID string    `json:"creatorUuid"`
	Rank        int       `json:"rank"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Group   *Group `json:"group,omitempty"`
	Creator *User  `json:"creator,omitempty"`
}
