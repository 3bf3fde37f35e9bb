package model

import "time"

// Address belongs to exactly one contact, and through it to that contact's
// user. There is no direct user reference; ownership is the two-step chain.
type Address struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Street     string    `json:"street" gorm:"size:200"`
	City       string    `json:"city" gorm:"size:100"`
	Province   string    `json:"province" gorm:"size:100"`
	Country    string    `json:"country" gorm:"size:100;not null"`
	PostalCode string    `json:"postal_code" gorm:"size:10;not null"`
	ContactID  uint      `json:"-" gorm:"not null;index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
