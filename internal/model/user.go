package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleStudent = "STUDENT"
	RoleAdmin   = "ADMIN"
)

type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Email     string    `json:"email" gorm:"not null;uniqueIndex"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Role      string    `json:"role" gorm:"not null;default:'STUDENT'"`
	Whatsapp  *string   `json:"whatsapp,omitempty"`
	Major     *string   `json:"major,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleStudent
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
