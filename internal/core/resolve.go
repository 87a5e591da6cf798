package core

import (
	"sort"
	"strconv"
	"strings"

	"github.com/example/amabot/internal/types"
)

// Resolution is the result of resolving a target selector against the
// current user list.
type Resolution struct {
	Index int
	User  types.User
	// ByName is true when the selector matched a display name rather than
	// a numeric index. Name matches need an extra confirmation step before
	// a question is posted.
	ByName bool
}

// ResolveTarget resolves a selector that is either a numeric index into
// users or a case-insensitive substring of a display name. The first
// substring match in list order wins.
func ResolveTarget(users []types.User, selector string) (Resolution, error) {
	if idx, err := strconv.Atoi(selector); err == nil {
		if idx < 0 || idx >= len(users) {
			return Resolution{}, &RangeError{Value: selector, Max: len(users)}
		}
		return Resolution{Index: idx, User: users[idx]}, nil
	}

	needle := strings.ToLower(selector)
	for i, u := range users {
		if strings.Contains(strings.ToLower(u.Name), needle) {
			return Resolution{Index: i, User: u, ByName: true}, nil
		}
	}
	return Resolution{}, ErrNoMatch
}

// IndexOf returns the position of the user with the given ID, or -1.
func IndexOf(users []types.User, id int64) int {
	for i, u := range users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

// SortUsers orders users case-insensitively by display name. Ties keep
// their relative order so repeated re-sorts are stable.
func SortUsers(users []types.User) {
	sort.SliceStable(users, func(i, j int) bool {
		return strings.ToLower(users[i].Name) < strings.ToLower(users[j].Name)
	})
}
