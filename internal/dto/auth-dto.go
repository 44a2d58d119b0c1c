package dto

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type ProfileDTO struct {
	ID        uint64         `json:"id"`
	FullName  string         `json:"full_name"`
	Email     string         `json:"email"`
	IsManager bool           `json:"is_manager"`
	Teams     []ShortTeamDTO `json:"teams"`
}
