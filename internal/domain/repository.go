package domain

import "context"

// ChannelRepository lists the channels of a workspace.
type ChannelRepository interface {
	FindAll(ctx context.Context) ([]*Channel, error)
}

// MessageRepository reads channel history.
type MessageRepository interface {
	FindByChannel(ctx context.Context, channelID string, dateRange *DateRange) ([]*Message, error)
}

// UserRepository lists the members of a workspace keyed by ID.
type UserRepository interface {
	FindAll(ctx context.Context) (map[string]*User, error)
}

// UserGroupRepository lists the user groups of a workspace with their members.
type UserGroupRepository interface {
	FindAll(ctx context.Context) ([]*UserGroup, error)
}
