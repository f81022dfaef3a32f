package slack

import (
	"context"

	"cdr.dev/slog/v3"
	"github.com/pkg/errors"
	"github.com/slack-go/slack"

	"github.com/rit-swen-261-courseassistance/team-tracker/internal/domain"
)

// ChannelListLimit is the page size requested from conversations.list.
const ChannelListLimit = 1000

// ChannelRepository lists channels through the Slack Web API.
type ChannelRepository struct {
	client *slack.Client
	logger slog.Logger
	types  []string
}

// NewChannelRepository creates a ChannelRepository. types selects the
// conversation types (public_channel, private_channel, ...); empty means
// Slack's default of public channels.
func NewChannelRepository(client *slack.Client, logger slog.Logger, types []string) *ChannelRepository {
	return &ChannelRepository{
		client: client,
		logger: logger.Named("channels"),
		types:  types,
	}
}

// FindAll returns the first page of channels in listing order. Later pages
// are not requested, so workspaces with more channels than one page holds
// are reported partially.
func (r *ChannelRepository) FindAll(ctx context.Context) ([]*domain.Channel, error) {
	conversations, cursor, err := r.client.GetConversationsContext(ctx, &slack.GetConversationsParameters{
		Types: r.types,
		Limit: ChannelListLimit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "list channels")
	}
	if cursor != "" {
		r.logger.Warn(ctx, "channel listing has more pages, only the first is used",
			slog.F("fetched", len(conversations)))
	}

	channels := make([]*domain.Channel, 0, len(conversations))
	for _, conversation := range conversations {
		channels = append(channels, &domain.Channel{
			ID:             conversation.ID,
			Name:           conversation.Name,
			IsGlobalShared: conversation.IsGlobalShared,
		})
	}

	r.logger.Debug(ctx, "listed channels", slog.F("count", len(channels)))
	return channels, nil
}
