package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "contactbook/internal/errors"
	"contactbook/internal/model"
	"contactbook/internal/repository"
)

// AddressInput carries the validated address fields.
type AddressInput struct {
	Street     string
	City       string
	Province   string
	Country    string
	PostalCode string
}

// AddressService implements address CRUD under the two-step ownership chain:
// the contact must belong to the user, the address must belong to the contact.
type AddressService interface {
	Create(ctx context.Context, user *model.User, contactID uint, in AddressInput) (*model.Address, error)
	Get(ctx context.Context, user *model.User, contactID, addressID uint) (*model.Address, error)
	Update(ctx context.Context, user *model.User, contactID, addressID uint, in AddressInput) (*model.Address, error)
	Delete(ctx context.Context, user *model.User, contactID, addressID uint) error
	List(ctx context.Context, user *model.User, contactID uint) ([]model.Address, error)
}

type addressService struct {
	contacts  repository.ContactRepository
	addresses repository.AddressRepository
}

// NewAddressService creates a new address service.
func NewAddressService(contacts repository.ContactRepository, addresses repository.AddressRepository) AddressService {
	return &addressService{contacts: contacts, addresses: addresses}
}

// Create stores a new address under the resolved contact. The contact id in
// the path is authoritative; nothing from the body can reparent the row.
func (s *addressService) Create(ctx context.Context, user *model.User, contactID uint, in AddressInput) (*model.Address, error) {
	contact, err := s.resolveContact(ctx, user, contactID)
	if err != nil {
		return nil, err
	}

	address := &model.Address{
		Street:     in.Street,
		City:       in.City,
		Province:   in.Province,
		Country:    in.Country,
		PostalCode: in.PostalCode,
		ContactID:  contact.ID,
	}
	if err := s.addresses.Create(ctx, address); err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}
	return address, nil
}

// Get returns the address if the whole ownership chain resolves.
func (s *addressService) Get(ctx context.Context, user *model.User, contactID, addressID uint) (*model.Address, error) {
	contact, err := s.resolveContact(ctx, user, contactID)
	if err != nil {
		return nil, err
	}
	return s.resolveAddress(ctx, contact, addressID)
}

// Update overwrites the address fields after resolving the chain.
func (s *addressService) Update(ctx context.Context, user *model.User, contactID, addressID uint, in AddressInput) (*model.Address, error) {
	contact, err := s.resolveContact(ctx, user, contactID)
	if err != nil {
		return nil, err
	}
	address, err := s.resolveAddress(ctx, contact, addressID)
	if err != nil {
		return nil, err
	}

	columns := map[string]interface{}{
		"street":      in.Street,
		"city":        in.City,
		"province":    in.Province,
		"country":     in.Country,
		"postal_code": in.PostalCode,
	}
	if err := s.addresses.Update(ctx, address.ID, columns); err != nil {
		return nil, fmt.Errorf("update address: %w", err)
	}

	address.Street = in.Street
	address.City = in.City
	address.Province = in.Province
	address.Country = in.Country
	address.PostalCode = in.PostalCode
	return address, nil
}

// Delete removes the address after resolving the chain.
func (s *addressService) Delete(ctx context.Context, user *model.User, contactID, addressID uint) error {
	contact, err := s.resolveContact(ctx, user, contactID)
	if err != nil {
		return err
	}
	address, err := s.resolveAddress(ctx, contact, addressID)
	if err != nil {
		return err
	}
	if err := s.addresses.Delete(ctx, address.ID); err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	return nil
}

// List returns all addresses of a contact owned by user.
func (s *addressService) List(ctx context.Context, user *model.User, contactID uint) ([]model.Address, error) {
	contact, err := s.resolveContact(ctx, user, contactID)
	if err != nil {
		return nil, err
	}
	addresses, err := s.addresses.ListByContact(ctx, contact.ID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	return addresses, nil
}

func (s *addressService) resolveContact(ctx context.Context, user *model.User, id uint) (*model.Contact, error) {
	contact, err := s.contacts.FindByIDAndUser(ctx, id, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find contact: %w", err)
	}
	return contact, nil
}

func (s *addressService) resolveAddress(ctx context.Context, contact *model.Contact, id uint) (*model.Address, error) {
	address, err := s.addresses.FindByIDAndContact(ctx, id, contact.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find address: %w", err)
	}
	return address, nil
}
