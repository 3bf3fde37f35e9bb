package model

import "time"

// Contact belongs to exactly one user. Reads and writes are always filtered
// by UserID so contacts of other users are indistinguishable from missing.
type Contact struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	FirstName string    `json:"firstname" gorm:"column:firstname;size:100;not null"`
	LastName  string    `json:"lastname" gorm:"column:lastname;size:100;not null"`
	Email     string    `json:"email" gorm:"size:200;not null"`
	Phone     string    `json:"phone" gorm:"size:20;not null"`
	UserID    uint      `json:"-" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Addresses []Address `json:"-" gorm:"foreignKey:ContactID"`
}
