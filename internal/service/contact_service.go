package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "contactbook/internal/errors"
	"contactbook/internal/model"
	"contactbook/internal/repository"
	"contactbook/internal/resource"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ContactInput carries the validated contact fields.
type ContactInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// ContactService implements contact CRUD and search, always scoped to the
// acting user.
type ContactService interface {
	Create(ctx context.Context, user *model.User, in ContactInput) (*model.Contact, error)
	Get(ctx context.Context, user *model.User, id uint) (*model.Contact, error)
	Update(ctx context.Context, user *model.User, id uint, in ContactInput) (*model.Contact, error)
	Delete(ctx context.Context, user *model.User, id uint) error
	Search(ctx context.Context, user *model.User, filter repository.ContactFilter) ([]model.Contact, *resource.Meta, error)
}

type contactService struct {
	contacts repository.ContactRepository
}

// NewContactService creates a new contact service.
func NewContactService(contacts repository.ContactRepository) ContactService {
	return &contactService{contacts: contacts}
}

// Create stores a new contact owned by user. The owner id always comes from
// the authenticated identity, never from the request.
func (s *contactService) Create(ctx context.Context, user *model.User, in ContactInput) (*model.Contact, error) {
	contact := &model.Contact{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		UserID:    user.ID,
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return contact, nil
}

// Get returns the contact if it belongs to user.
func (s *contactService) Get(ctx context.Context, user *model.User, id uint) (*model.Contact, error) {
	return s.resolve(ctx, user, id)
}

// Update overwrites the contact fields after resolving ownership.
func (s *contactService) Update(ctx context.Context, user *model.User, id uint, in ContactInput) (*model.Contact, error) {
	contact, err := s.resolve(ctx, user, id)
	if err != nil {
		return nil, err
	}

	columns := map[string]interface{}{
		"firstname": in.FirstName,
		"lastname":  in.LastName,
		"email":     in.Email,
		"phone":     in.Phone,
	}
	if err := s.contacts.Update(ctx, contact.ID, columns); err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}

	contact.FirstName = in.FirstName
	contact.LastName = in.LastName
	contact.Email = in.Email
	contact.Phone = in.Phone
	return contact, nil
}

// Delete removes the contact and its addresses. A second delete resolves to
// not found because the row is gone.
func (s *contactService) Delete(ctx context.Context, user *model.User, id uint) error {
	contact, err := s.resolve(ctx, user, id)
	if err != nil {
		return err
	}
	if err := s.contacts.Delete(ctx, contact.ID); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}

// Search normalizes the pagination window and runs the filtered query. The
// returned meta reflects the window actually used, not the raw input.
func (s *contactService) Search(ctx context.Context, user *model.User, filter repository.ContactFilter) ([]model.Contact, *resource.Meta, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Size <= 0 {
		filter.Size = defaultPageSize
	}
	if filter.Size > maxPageSize {
		filter.Size = maxPageSize
	}

	contacts, total, err := s.contacts.Search(ctx, user.ID, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("search contacts: %w", err)
	}
	return contacts, resource.NewMeta(total, filter.Page, filter.Size), nil
}

// resolve fetches the contact scoped to user. A missing row and a row owned
// by someone else are both reported as the same not-found error.
func (s *contactService) resolve(ctx context.Context, user *model.User, id uint) (*model.Contact, error) {
	contact, err := s.contacts.FindByIDAndUser(ctx, id, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find contact: %w", err)
	}
	return contact, nil
}
