// Package resource shapes persisted records into the external response
// schema. Internal fields (password hashes, owner ids) never appear here.
package resource

import "contactbook/internal/model"

// Response is the uniform success envelope.
type Response struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

// Meta describes a page of search results.
type Meta struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
}

// NewMeta computes pagination metadata. An empty result set still reports
// last_page 1 so clients can treat it as the final page.
func NewMeta(total int64, page, size int) *Meta {
	lastPage := int((total + int64(size) - 1) / int64(size))
	if lastPage < 1 {
		lastPage = 1
	}
	return &Meta{
		Total:       total,
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     size,
	}
}

// User is the external user projection. Token is present only while a
// session is active; the password never is.
type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Token    string `json:"token,omitempty"`
}

// NewUser projects a user record.
func NewUser(u *model.User) User {
	out := User{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
	}
	if u.Token != nil {
		out.Token = *u.Token
	}
	return out
}

// Contact is the external contact projection.
type Contact struct {
	ID        uint      `json:"id"`
	FirstName string    `json:"firstname"`
	LastName  string    `json:"lastname"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Addresses []Address `json:"addresses,omitempty"`
}

// NewContact projects a contact record.
func NewContact(c *model.Contact) Contact {
	return Contact{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
	}
}

// NewContactWithAddresses projects a contact with its address collection.
func NewContactWithAddresses(c *model.Contact, addresses []model.Address) Contact {
	out := NewContact(c)
	out.Addresses = NewAddresses(addresses)
	return out
}

// NewContacts projects a page of contacts. The slice is never nil so an
// empty page serializes as [] rather than null.
func NewContacts(contacts []model.Contact) []Contact {
	out := make([]Contact, 0, len(contacts))
	for i := range contacts {
		out = append(out, NewContact(&contacts[i]))
	}
	return out
}

// Address is the external address projection.
type Address struct {
	ID         uint   `json:"id"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

// NewAddress projects an address record.
func NewAddress(a *model.Address) Address {
	return Address{
		ID:         a.ID,
		Street:     a.Street,
		City:       a.City,
		Province:   a.Province,
		Country:    a.Country,
		PostalCode: a.PostalCode,
	}
}

// NewAddresses projects an address collection.
func NewAddresses(addresses []model.Address) []Address {
	out := make([]Address, 0, len(addresses))
	for i := range addresses {
		out = append(out, NewAddress(&addresses[i]))
	}
	return out
}
