package model

import "time"

// User is an account in the contact book. The password hash and the session
// token are never serialized.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;size:100;not null"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Password  string    `json:"-" gorm:"size:100;not null"`
	Token     *string   `json:"-" gorm:"size:100;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Contacts []Contact `json:"-" gorm:"foreignKey:UserID"`
}
