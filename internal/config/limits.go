package config

const (
	// MaxGroupNameLength is the maximum length for group names. Kept short
	// because names render in tight list UIs.
	MaxGroupNameLength = 48

	// MaxIconLength bounds the group icon reference (emoji or asset URL).
	MaxIconLength = 255

	// MaxEmailLength fits the PostgreSQL VARCHAR(255) email columns.
	MaxEmailLength = 255

	// MaxInvitationSends caps how often one invitation can be re-sent.
	MaxInvitationSends = 99

	// MinWishListRank and MaxWishListRank bound item ordering. Rank 0 is
	// reserved so absent-vs-zero stays distinguishable in partial updates.
	MinWishListRank = 1
	MaxWishListRank = 255

	// MaxWishListDescriptionLength bounds the free-text item description.
	MaxWishListDescriptionLength = 512
)
