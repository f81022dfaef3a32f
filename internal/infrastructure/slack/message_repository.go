package slack

import (
	"context"
	"strconv"
	"strings"
	"time"

	"cdr.dev/slog/v3"
	"github.com/pkg/errors"
	"github.com/slack-go/slack"

	"github.com/rit-swen-261-courseassistance/team-tracker/internal/domain"
)

// HistoryLimit is the largest page conversations.history returns. Slack's
// default is smaller, so it is always sent explicitly.
const HistoryLimit = 1000

// MessageRepository reads channel history through the Slack Web API.
type MessageRepository struct {
	client *slack.Client
	logger slog.Logger
}

// NewMessageRepository creates a MessageRepository.
func NewMessageRepository(client *slack.Client, logger slog.Logger) *MessageRepository {
	return &MessageRepository{
		client: client,
		logger: logger.Named("history"),
	}
}

// FindByChannel returns at most HistoryLimit messages of a channel within
// dateRange. Only one page is fetched; older messages beyond the limit are
// not counted.
func (r *MessageRepository) FindByChannel(ctx context.Context, channelID string, dateRange *domain.DateRange) ([]*domain.Message, error) {
	oldest, latest := dateRange.SlackBounds()

	history, err := r.client.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
		ChannelID: channelID,
		Oldest:    oldest,
		Latest:    latest,
		Limit:     HistoryLimit,
	})
	if err != nil {
		if d, ok := retryAfter(err); ok {
			r.logger.Warn(ctx, "rate limited by slack",
				slog.F("channel_id", channelID),
				slog.F("retry_after", d))
		}
		return nil, errors.Wrapf(err, "history of channel %s", channelID)
	}
	if history.HasMore {
		r.logger.Debug(ctx, "channel history truncated",
			slog.F("channel_id", channelID),
			slog.F("limit", HistoryLimit))
	}

	messages := make([]*domain.Message, 0, len(history.Messages))
	for i := range history.Messages {
		messages = append(messages, r.convertToDomainMessage(&history.Messages[i], channelID))
	}
	return messages, nil
}

// convertToDomainMessage maps a Slack message. Bot and system messages are
// kept; they simply have no author when the user field is absent.
func (r *MessageRepository) convertToDomainMessage(msg *slack.Message, channelID string) *domain.Message {
	timestamp, err := parseSlackTimestamp(msg.Timestamp)
	if err != nil {
		r.logger.Debug(context.Background(), "unparseable message timestamp",
			slog.F("channel_id", channelID),
			slog.F("ts", msg.Timestamp))
	}

	return &domain.Message{
		ID:        msg.Timestamp,
		UserID:    msg.User,
		ChannelID: channelID,
		Timestamp: timestamp,
		SubType:   msg.SubType,
		Username:  msg.Username,
	}
}

// parseSlackTimestamp converts a "seconds.micros" Slack timestamp to time.Time.
func parseSlackTimestamp(ts string) (time.Time, error) {
	secPart, fracPart, _ := strings.Cut(ts, ".")

	sec, err := strconv.ParseInt(secPart, 10, 64)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parse timestamp %q", ts)
	}

	var nsec int64
	if fracPart != "" {
		if len(fracPart) > 9 {
			fracPart = fracPart[:9]
		}
		frac, err := strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return time.Time{}, errors.Wrapf(err, "parse timestamp %q", ts)
		}
		for i := len(fracPart); i < 9; i++ {
			frac *= 10
		}
		nsec = frac
	}

	return time.Unix(sec, nsec), nil
}

// retryAfter extracts the wait hint from a rate-limit error.
func retryAfter(err error) (time.Duration, bool) {
	var rle *slack.RateLimitedError
	if errors.As(err, &rle) {
		return rle.RetryAfter, true
	}
	return 0, false
}
