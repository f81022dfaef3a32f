package domain

// UserGroup is a Slack user group (a @handle that mentions several members).
type UserGroup struct {
	ID      string
	Name    string
	Handle  string
	Members []string // user IDs
}

// GroupTally is a user group's message counts split by channel kind. Both
// lists follow the group's member order and leave out members with no messages.
type GroupTally struct {
	Group    *UserGroup
	Regular  []AuthorCount
	Standups []AuthorCount
}
