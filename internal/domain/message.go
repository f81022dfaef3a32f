package domain

import "time"

// Message is a single history entry of a channel.
type Message struct {
	ID        string
	UserID    string // empty for system messages such as channel joins
	ChannelID string
	Timestamp time.Time
	SubType   string
	// Username is the name a bot or integration posted under, if any.
	Username string
}

// HasAuthor reports whether the message carries an author identifier.
func (m *Message) HasAuthor() bool {
	return m.UserID != ""
}
