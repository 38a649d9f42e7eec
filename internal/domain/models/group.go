package models

import "time"

// Group is the tenancy unit. CreatorUUID is immutable after creation;
// AdminUUID is reassignable. The creator is auto-enrolled as a member on
// creation; an admin is not required to be a member by construction.
type Group struct {
	UUID        string    `json:"uuid"`
	Name        string    `json:"name"`
	Icon        string    `json:"icon"`
	CreatorUUID string    `json:"creatorUuid"`
	AdminUUID   string    `json:"adminUuid"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Eager-loaded associations, present only when requested via include.
	Admin       *User        `json:"admin,omitempty"`
	Creator     *User        `json:"creator,omitempty"`
	Users       []User       `json:"users,omitempty"`
	WishLists   []WishList   `json:"wishLists,omitempty"`
	Invitations []Invitation `json:"invitations,omitempty"`
}

// GroupUser records a single membership. Created when a user creates or
// joins a group, destroyed when membership is revoked.
type GroupUser struct {
	GroupUUID string    `json:"groupUuid"`
	UserUUID  string    `json:"userUuid"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
