package models

import (
	"time"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name         string    `gorm:"type:varchar(50);not null;column:name" json:"name"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:users_email_ux;column:email" json:"email"`
	PasswordHash string    `gorm:"type:varchar(72);not null;column:password_hash" json:"-"`
	Role         string    `gorm:"type:varchar(8);not null;default:'user';column:role" json:"role"`
	CreatedAt    time.Time `gorm:"not null;column:created_at" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"not null;column:updated_at" json:"updatedAt"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
