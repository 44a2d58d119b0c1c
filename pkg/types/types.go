package types

import "time"

type BaseEntity struct {
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// Actor is the authenticated identity every operation receives explicitly.
// IsManager corresponds to the staff/manager role; TeamIDs are the
// maintenance teams the user belongs to.
type Actor struct {
	ID        uint64   `json:"id"`
	FullName  string   `json:"full_name"`
	IsManager bool     `json:"is_manager"`
	TeamIDs   []uint64 `json:"team_ids"`
}

// IsTechnician reports whether the actor belongs to at least one team.
func (a Actor) IsTechnician() bool {
	return len(a.TeamIDs) > 0
}

// MemberOf reports whether the actor belongs to the given team.
func (a Actor) MemberOf(teamID uint64) bool {
	for _, id := range a.TeamIDs {
		if id == teamID {
			return true
		}
	}
	return false
}
