package models

import "time"

// Account holds the minimal user data the scheduler needs: a role tag
// and an active flag. Full profile management lives in another service.
type Account struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Username     string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	FullName     string `gorm:"size:150" json:"full_name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`

	Role   string `gorm:"size:20;not null" json:"role"`
	Active bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
