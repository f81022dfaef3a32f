package service

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/rit-swen-261-courseassistance/team-tracker/internal/domain"
)

// UnknownAuthorLabel is printed for messages that carry no author.
const UnknownAuthorLabel = "(unknown)"

// Report is the plain-text rendering of a tally:
//
//	general:
//		Alice: 2
//		(unknown): 1
type Report struct {
	Tally *domain.Tally
	Users map[string]*domain.User
	Order domain.SortOrder
}

// AuthorLabel resolves a user ID to the name shown in the report. IDs missing
// from the directory are shown as-is.
func AuthorLabel(users map[string]*domain.User, userID string) string {
	if userID == "" {
		return UnknownAuthorLabel
	}
	if user, ok := users[userID]; ok && user != nil {
		return user.GetDisplayName()
	}
	return userID
}

// WriteTo writes the report to w.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	label := func(userID string) string {
		return AuthorLabel(r.Users, userID)
	}

	var total int64
	for _, ct := range r.Tally.Channels {
		n, err := fmt.Fprintf(w, "%s:\n", ct.Channel.Name)
		total += int64(n)
		if err != nil {
			return total, errors.Wrap(err, "write report")
		}

		for _, author := range ct.Sorted(r.Order, label) {
			n, err := fmt.Fprintf(w, "\t%s: %d\n", label(author.UserID), author.Count)
			total += int64(n)
			if err != nil {
				return total, errors.Wrap(err, "write report")
			}
		}
	}
	return total, nil
}

// GroupReport is the plain-text rendering of user group rollups:
//
//	Team Alpha - Non-Standups:
//		Alice: 12
//	Team Alpha - Virtual-Standups:
//		Alice: 4
type GroupReport struct {
	Groups []*domain.GroupTally
	Users  map[string]*domain.User
}

// WriteTo writes the report to w.
func (r *GroupReport) WriteTo(w io.Writer) (int64, error) {
	var total int64
	section := func(title string, counts []domain.AuthorCount) error {
		n, err := fmt.Fprintf(w, "%s:\n", title)
		total += int64(n)
		if err != nil {
			return errors.Wrap(err, "write group report")
		}
		for _, c := range counts {
			n, err := fmt.Fprintf(w, "\t%s: %d\n", AuthorLabel(r.Users, c.UserID), c.Count)
			total += int64(n)
			if err != nil {
				return errors.Wrap(err, "write group report")
			}
		}
		return nil
	}

	for _, gt := range r.Groups {
		if err := section(gt.Group.Name+" - Non-Standups", gt.Regular); err != nil {
			return total, err
		}
		if err := section(gt.Group.Name+" - Virtual-Standups", gt.Standups); err != nil {
			return total, err
		}
	}
	return total, nil
}
