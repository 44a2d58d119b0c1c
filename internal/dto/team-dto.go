package dto

type CreateTeamDTO struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Company string `json:"company" validate:"omitempty,max=200"`
}

type UpdateTeamDTO struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Company *string `json:"company,omitempty" validate:"omitempty,max=200"`
}

type TeamMemberDTO struct {
	UserID uint64 `json:"user_id" validate:"required,gt=0"`
}

type TeamDTO struct {
	ID                 uint64         `json:"id"`
	Name               string         `json:"name"`
	Company            string         `json:"company"`
	Members            []ShortUserDTO `json:"members,omitempty"`
	MemberCount        int64          `json:"member_count"`
	ActiveRequestCount int64          `json:"active_request_count"`
	CreatedAt          string         `json:"created_at"`
}
