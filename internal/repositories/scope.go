package repositories

import (
	sq "github.com/Masterminds/squirrel"

	"gearguard/pkg/types"
)

// RequestScope is the role-based visibility rule for maintenance requests,
// computed once from the actor and applied uniformly to every request query:
// lists, kanban, calendar and the dashboard all see exactly the same rows.
//
// The branches are exclusive: managers see everything, team members see
// exactly their teams' requests, and everyone else sees only requests they
// created.
type RequestScope struct {
	All       bool
	TeamIDs   []uint64
	CreatorID uint64
}

// ScopeForActor builds the visibility scope from the authenticated actor.
func ScopeForActor(actor types.Actor) RequestScope {
	if actor.IsManager {
		return RequestScope{All: true}
	}
	if len(actor.TeamIDs) > 0 {
		return RequestScope{TeamIDs: actor.TeamIDs}
	}
	return RequestScope{CreatorID: actor.ID}
}

// Condition renders the scope as a squirrel condition against the request
// table alias. Returns nil for the unrestricted scope.
func (s RequestScope) Condition(alias string) sq.Sqlizer {
	if s.All {
		return nil
	}
	if len(s.TeamIDs) > 0 {
		return sq.Eq{alias + ".maintenance_team_id": s.TeamIDs}
	}
	return sq.Eq{alias + ".created_by_id": s.CreatorID}
}

func applyScope(b sq.SelectBuilder, cond sq.Sqlizer) sq.SelectBuilder {
	if cond != nil {
		return b.Where(cond)
	}
	return b
}
