package dto

type CreateUserDTO struct {
	FullName  string `json:"full_name" validate:"required,min=2,max=150"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	IsManager bool   `json:"is_manager"`
}

type UpdateUserDTO struct {
	FullName  *string `json:"full_name,omitempty" validate:"omitempty,min=2,max=150"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Password  *string `json:"password,omitempty" validate:"omitempty,min=6"`
	IsManager *bool   `json:"is_manager,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

type UserDTO struct {
	ID        uint64         `json:"id"`
	FullName  string         `json:"full_name"`
	Email     string         `json:"email"`
	IsManager bool           `json:"is_manager"`
	IsActive  bool           `json:"is_active"`
	Teams     []ShortTeamDTO `json:"teams,omitempty"`
	CreatedAt string         `json:"created_at"`
}
