package slack

import (
	"context"

	"cdr.dev/slog/v3"
	"github.com/pkg/errors"
	"github.com/slack-go/slack"

	"github.com/rit-swen-261-courseassistance/team-tracker/internal/domain"
)

// UserListLimit is the page size requested from users.list. slack-go
// defaults to 200, which would cut the directory short.
const UserListLimit = 1000

// UserRepository lists workspace members through the Slack Web API.
type UserRepository struct {
	client *slack.Client
	logger slog.Logger
}

// NewUserRepository creates a UserRepository.
func NewUserRepository(client *slack.Client, logger slog.Logger) *UserRepository {
	return &UserRepository{
		client: client,
		logger: logger.Named("users"),
	}
}

// FindAll returns the members of the first users.list page keyed by ID.
// Later pages are not requested.
func (r *UserRepository) FindAll(ctx context.Context) (map[string]*domain.User, error) {
	page, err := r.client.GetUsersPaginated(slack.GetUsersOptionLimit(UserListLimit)).Next(ctx)
	if err != nil {
		if d, ok := retryAfter(err); ok {
			r.logger.Warn(ctx, "rate limited by slack", slog.F("retry_after", d))
		}
		return nil, errors.Wrap(err, "list users")
	}

	userMap := make(map[string]*domain.User, len(page.Users))
	for i := range page.Users {
		userMap[page.Users[i].ID] = toDomainUser(&page.Users[i])
	}

	r.logger.Debug(ctx, "listed users", slog.F("count", len(userMap)))
	return userMap, nil
}

func toDomainUser(u *slack.User) *domain.User {
	realName := u.RealName
	if realName == "" {
		realName = u.Profile.RealName
	}
	return &domain.User{
		ID:          u.ID,
		Name:        u.Name,
		DisplayName: u.Profile.DisplayName,
		RealName:    realName,
	}
}
