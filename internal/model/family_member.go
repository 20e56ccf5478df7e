package model

import "time"

// Role classifies a family member for filtering and assignment pickers.
type Role string

const (
	RoleParent Role = "parent"
	RoleChild  Role = "child"
	RoleAll    Role = "all"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleParent, RoleChild, RoleAll:
		return true
	}
	return false
}

// ChildAll is the wildcard child value: an item assigned to "All" matches
// every member filter. The comparison lives in ChildMatches so the sentinel
// is never string-compared anywhere else.
const ChildAll = "All"

// ChildMatches reports whether an item assigned to itemChild is visible
// under the given filter. An empty filter matches everything.
func ChildMatches(itemChild, filter string) bool {
	if filter == "" {
		return true
	}
	return itemChild == filter || itemChild == ChildAll
}

type FamilyMember struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	AvatarEmoji string    `json:"avatar_emoji"`
	Role        Role      `json:"role"`
	Age         int       `json:"age"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
