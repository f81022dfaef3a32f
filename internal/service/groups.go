package service

import (
	"strings"

	"github.com/rit-swen-261-courseassistance/team-tracker/internal/domain"
)

// rollupGroups sums each group member's messages across the workspace.
// Channels whose name contains marker count as standups. Authorless posts
// made by a standup bot under "Real Name (...)" are credited to the member
// with that real name as standups.
func rollupGroups(snapshot *Snapshot, marker string) []*domain.GroupTally {
	byRealName := indexByRealName(snapshot.Users)
	regular := make(map[string]int)
	standups := make(map[string]int)

	for _, history := range snapshot.Histories {
		if history.Err != nil {
			continue
		}
		isStandup := strings.Contains(history.Channel.Name, marker)
		for _, msg := range history.Messages {
			switch {
			case msg.HasAuthor() && isStandup:
				standups[msg.UserID]++
			case msg.HasAuthor():
				regular[msg.UserID]++
			default:
				if userID, ok := byRealName[botPosterName(msg.Username)]; ok {
					standups[userID]++
				}
			}
		}
	}

	tallies := make([]*domain.GroupTally, 0, len(snapshot.Groups))
	for _, group := range snapshot.Groups {
		tallies = append(tallies, &domain.GroupTally{
			Group:    group,
			Regular:  memberCounts(group.Members, regular),
			Standups: memberCounts(group.Members, standups),
		})
	}
	return tallies
}

func memberCounts(members []string, counts map[string]int) []domain.AuthorCount {
	var result []domain.AuthorCount
	for _, userID := range members {
		if n := counts[userID]; n > 0 {
			result = append(result, domain.AuthorCount{UserID: userID, Count: n})
		}
	}
	return result
}

// botPosterName strips the " (...)" suffix a standup bot appends to the
// poster's name.
func botPosterName(username string) string {
	if i := strings.Index(username, " ("); i >= 0 {
		username = username[:i]
	}
	return strings.TrimSpace(username)
}

// indexByRealName maps real names to user IDs. On duplicates the smallest ID wins.
func indexByRealName(users map[string]*domain.User) map[string]string {
	index := make(map[string]string, len(users))
	for id, user := range users {
		if user == nil || user.RealName == "" {
			continue
		}
		if prev, ok := index[user.RealName]; !ok || id < prev {
			index[user.RealName] = id
		}
	}
	return index
}
