package service

import (
	"context"

	"cdr.dev/slog/v3"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/rit-swen-261-courseassistance/team-tracker/internal/domain"
)

// History is the outcome of one channel's history fetch.
type History struct {
	Channel  *domain.Channel
	Messages []*domain.Message
	Err      error
}

// Snapshot is everything fetched from the workspace for a single run. It is
// only handed out after every fetch has finished.
type Snapshot struct {
	Users     map[string]*domain.User
	Histories []History // in channel listing order
	// Groups is nil unless the Collector has a UserGroupRepository.
	Groups []*domain.UserGroup
}

// CollectOptions narrows which channels are fetched and how.
type CollectOptions struct {
	// Concurrency caps in-flight history requests. Zero means one request
	// per channel at once.
	Concurrency int
	// Channels restricts the run to these channel names when non-empty.
	Channels []string
	// SkipShared drops enterprise-wide shared channels.
	SkipShared bool
}

// Collector fetches users, channels and channel history concurrently.
type Collector struct {
	channelRepo domain.ChannelRepository
	messageRepo domain.MessageRepository
	userRepo    domain.UserRepository
	groupRepo   domain.UserGroupRepository
	logger      slog.Logger
	opts        CollectOptions
}

// NewCollector creates a Collector.
func NewCollector(channelRepo domain.ChannelRepository, messageRepo domain.MessageRepository, userRepo domain.UserRepository, logger slog.Logger, opts CollectOptions) *Collector {
	return &Collector{
		channelRepo: channelRepo,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		logger:      logger.Named("collector"),
		opts:        opts,
	}
}

// WithUserGroups makes Collect also list user groups, alongside the users.
func (c *Collector) WithUserGroups(groupRepo domain.UserGroupRepository) *Collector {
	c.groupRepo = groupRepo
	return c
}

// Collect runs the user listing and the channel listing side by side. Every
// listed channel starts its own history fetch as soon as the listing returns.
// Collect returns once all of them have finished.
//
// A failed user or channel listing fails the whole collection, as does ctx
// ending before the join. A failed history fetch is recorded in its History
// and does not affect the others.
func (c *Collector) Collect(ctx context.Context, dateRange *domain.DateRange) (*Snapshot, error) {
	var (
		users     map[string]*domain.User
		histories []History
		groups    []*domain.UserGroup
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		users, err = c.userRepo.FindAll(egCtx)
		if err != nil {
			return errors.Wrap(err, "fetch user directory")
		}
		return nil
	})
	if c.groupRepo != nil {
		eg.Go(func() error {
			var err error
			groups, err = c.groupRepo.FindAll(egCtx)
			if err != nil {
				return errors.Wrap(err, "fetch user groups")
			}
			return nil
		})
	}
	eg.Go(func() error {
		channels, err := c.channelRepo.FindAll(egCtx)
		if err != nil {
			return errors.Wrap(err, "fetch channel directory")
		}
		histories = c.fetchHistories(egCtx, c.selectChannels(channels), dateRange)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	// Every history fetch failed with ctx; none of them is a channel failure.
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "collect workspace")
	}

	return &Snapshot{
		Users:     users,
		Histories: histories,
		Groups:    groups,
	}, nil
}

// fetchHistories fans out one request per channel. Each goroutine owns the
// slot at its channel's index, so no locking is needed.
func (c *Collector) fetchHistories(ctx context.Context, channels []*domain.Channel, dateRange *domain.DateRange) []History {
	histories := make([]History, len(channels))

	var eg errgroup.Group
	if c.opts.Concurrency > 0 {
		eg.SetLimit(c.opts.Concurrency)
	}
	for i, channel := range channels {
		i, channel := i, channel
		eg.Go(func() error {
			histories[i] = c.fetchHistory(ctx, channel, dateRange)
			return nil
		})
	}
	_ = eg.Wait()

	return histories
}

func (c *Collector) fetchHistory(ctx context.Context, channel *domain.Channel, dateRange *domain.DateRange) History {
	messages, err := c.messageRepo.FindByChannel(ctx, channel.ID, dateRange)
	if err != nil {
		c.logger.Warn(ctx, "skipping channel, history fetch failed",
			slog.F("channel", channel.Name),
			slog.F("channel_id", channel.ID),
			slog.Error(err))
		return History{Channel: channel, Err: err}
	}

	c.logger.Debug(ctx, "fetched channel history",
		slog.F("channel", channel.Name),
		slog.F("messages", len(messages)))
	return History{Channel: channel, Messages: messages}
}

func (c *Collector) selectChannels(channels []*domain.Channel) []*domain.Channel {
	if len(c.opts.Channels) == 0 && !c.opts.SkipShared {
		return channels
	}

	wanted := make(map[string]bool, len(c.opts.Channels))
	for _, name := range c.opts.Channels {
		wanted[name] = true
	}

	selected := make([]*domain.Channel, 0, len(channels))
	for _, channel := range channels {
		if c.opts.SkipShared && channel.IsGlobalShared {
			continue
		}
		if len(wanted) > 0 && !wanted[channel.Name] {
			continue
		}
		selected = append(selected, channel)
	}
	return selected
}
