package entities

import "gearguard/pkg/types"

type User struct {
	ID           uint64 `json:"id" db:"id"`
	FullName     string `json:"full_name" db:"full_name"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	IsManager    bool   `json:"is_manager" db:"is_manager"`
	IsActive     bool   `json:"is_active" db:"is_active"`

	types.BaseEntity
}
