package domain

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// AuthorCount is the number of messages one author posted in a channel.
// An empty UserID is the bucket for messages without an author.
type AuthorCount struct {
	UserID string
	Count  int
}

// ChannelTally holds the per-author counts of one channel in order of first appearance.
type ChannelTally struct {
	Channel *Channel
	Authors []AuthorCount
}

// Total returns the number of messages counted for the channel.
func (ct *ChannelTally) Total() int {
	total := 0
	for _, a := range ct.Authors {
		total += a.Count
	}
	return total
}

// CountFor returns the count of userID, or zero if the author never posted.
func (ct *ChannelTally) CountFor(userID string) int {
	for _, a := range ct.Authors {
		if a.UserID == userID {
			return a.Count
		}
	}
	return 0
}

// Sorted returns a copy of the author counts in the requested order.
// label maps an author ID to the name used for SortByName and for count ties.
func (ct *ChannelTally) Sorted(order SortOrder, label func(userID string) string) []AuthorCount {
	authors := make([]AuthorCount, len(ct.Authors))
	copy(authors, ct.Authors)

	switch order {
	case SortByName:
		sort.SliceStable(authors, func(i, j int) bool {
			return label(authors[i].UserID) < label(authors[j].UserID)
		})
	case SortByCount:
		sort.SliceStable(authors, func(i, j int) bool {
			if authors[i].Count != authors[j].Count {
				return authors[i].Count > authors[j].Count
			}
			return label(authors[i].UserID) < label(authors[j].UserID)
		})
	}
	return authors
}

// Tally is the per-channel, per-author message count of a workspace.
type Tally struct {
	Channels []*ChannelTally
}

// Channel returns the tally of channelID, or nil when the channel was not counted.
func (t *Tally) Channel(channelID string) *ChannelTally {
	for _, ct := range t.Channels {
		if ct.Channel.ID == channelID {
			return ct
		}
	}
	return nil
}

// SortOrder controls how authors are listed within a channel.
type SortOrder string

const (
	SortNone    SortOrder = "none"
	SortByName  SortOrder = "name"
	SortByCount SortOrder = "count"
)

// ParseSortOrder converts a flag value into a SortOrder.
func ParseSortOrder(s string) (SortOrder, error) {
	switch order := SortOrder(strings.ToLower(strings.TrimSpace(s))); order {
	case "", SortNone:
		return SortNone, nil
	case SortByName, SortByCount:
		return order, nil
	default:
		return "", errors.Errorf("unknown sort order %q (want none, name or count)", s)
	}
}
