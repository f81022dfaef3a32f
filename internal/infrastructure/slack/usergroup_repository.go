package slack

import (
	"context"

	"cdr.dev/slog/v3"
	"github.com/pkg/errors"
	"github.com/slack-go/slack"

	"github.com/rit-swen-261-courseassistance/team-tracker/internal/domain"
)

// UserGroupRepository lists user groups through the Slack Web API.
type UserGroupRepository struct {
	client *slack.Client
	logger slog.Logger
}

// NewUserGroupRepository creates a UserGroupRepository.
func NewUserGroupRepository(client *slack.Client, logger slog.Logger) *UserGroupRepository {
	return &UserGroupRepository{
		client: client,
		logger: logger.Named("usergroups"),
	}
}

// FindAll returns every user group with its member IDs, in listing order.
func (r *UserGroupRepository) FindAll(ctx context.Context) ([]*domain.UserGroup, error) {
	groups, err := r.client.GetUserGroupsContext(ctx, slack.GetUserGroupsOptionIncludeUsers(true))
	if err != nil {
		if d, ok := retryAfter(err); ok {
			r.logger.Warn(ctx, "rate limited by slack", slog.F("retry_after", d))
		}
		return nil, errors.Wrap(err, "list user groups")
	}

	result := make([]*domain.UserGroup, 0, len(groups))
	for _, group := range groups {
		result = append(result, &domain.UserGroup{
			ID:      group.ID,
			Name:    group.Name,
			Handle:  group.Handle,
			Members: group.Users,
		})
	}

	r.logger.Debug(ctx, "listed user groups", slog.F("count", len(result)))
	return result, nil
}
