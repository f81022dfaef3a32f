package domain

// User is a workspace member.
type User struct {
	ID          string
	Name        string
	DisplayName string
	RealName    string
}

// GetDisplayName returns the name shown in reports.
// Priority: RealName > DisplayName > Name > ID
func (u *User) GetDisplayName() string {
	if u.RealName != "" {
		return u.RealName
	}
	if u.DisplayName != "" {
		return u.DisplayName
	}
	if u.Name != "" {
		return u.Name
	}
	return u.ID
}
