package models

import (
	"time"
)

type User struct {
	BaseUUIDModel
	Name         string     `gorm:"type:text;not null"        json:"name"`
	Email        string     `gorm:"type:text;uniqueIndex"     json:"email"`
	PasswordHash string     `gorm:"type:text;not null"        json:"-"`
	IsAdmin      bool       `gorm:"type:bool;default:false"   json:"isAdmin"`
	IsActive     bool       `gorm:"type:bool;default:true"    json:"isActive"`
	LastLoginAt  *time.Time `gorm:"type:timestamp"            json:"lastLoginAt,omitempty"`
}

// UserProfile is the public shape of a user.
type UserProfile struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	IsAdmin     bool       `json:"isAdmin"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func (u *User) ToProfile() UserProfile {
	return UserProfile{
		ID:          u.ID.String(),
		Name:        u.Name,
		Email:       u.Email,
		IsAdmin:     u.IsAdmin,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
