package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rit-swen-261-courseassistance/team-tracker/internal/domain"
)

// mockChannelRepository is a ChannelRepository backed by a fixed list.
type mockChannelRepository struct {
	channels []*domain.Channel
	err      error
}

func (m *mockChannelRepository) FindAll(ctx context.Context) ([]*domain.Channel, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.channels, nil
}

// mockMessageRepository serves per-channel histories and tracks how many
// requests are in flight at once.
type mockMessageRepository struct {
	messages map[string][]*domain.Message
	errs     map[string]error
	delay    time.Duration

	mu          sync.Mutex
	requested   []string
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (m *mockMessageRepository) FindByChannel(ctx context.Context, channelID string, dateRange *domain.DateRange) ([]*domain.Message, error) {
	m.mu.Lock()
	m.requested = append(m.requested, channelID)
	m.mu.Unlock()

	n := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		peak := m.maxInFlight.Load()
		if n <= peak || m.maxInFlight.CompareAndSwap(peak, n) {
			break
		}
	}
	if m.delay > 0 {
		time.Sleep(m.delay)
	}

	if err := m.errs[channelID]; err != nil {
		return nil, err
	}
	return m.messages[channelID], nil
}

func (m *mockMessageRepository) requestedChannels() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.requested...)
}

// mockUserRepository is a UserRepository backed by a fixed map.
type mockUserRepository struct {
	users map[string]*domain.User
	err   error
}

func (m *mockUserRepository) FindAll(ctx context.Context) (map[string]*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.users, nil
}

// mockUserGroupRepository is a UserGroupRepository backed by a fixed list.
type mockUserGroupRepository struct {
	groups []*domain.UserGroup
	err    error
}

func (m *mockUserGroupRepository) FindAll(ctx context.Context) ([]*domain.UserGroup, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.groups, nil
}

// botMsg is an authorless post made by a bot under the given display name.
func botMsg(channelID, username string) *domain.Message {
	return &domain.Message{ChannelID: channelID, SubType: "bot_message", Username: username}
}

func msgs(channelID string, authors ...string) []*domain.Message {
	messages := make([]*domain.Message, 0, len(authors))
	for _, author := range authors {
		messages = append(messages, &domain.Message{UserID: author, ChannelID: channelID})
	}
	return messages
}
