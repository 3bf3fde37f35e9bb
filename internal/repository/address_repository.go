package repository

import (
	"context"

	"gorm.io/gorm"

	"contactbook/internal/model"
)

// AddressRepository defines address persistence operations, scoped by the
// owning contact id. User-level ownership is resolved one step earlier via
// ContactRepository.
type AddressRepository interface {
	Create(ctx context.Context, address *model.Address) error
	FindByIDAndContact(ctx context.Context, id, contactID uint) (*model.Address, error)
	Update(ctx context.Context, id uint, columns map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	ListByContact(ctx context.Context, contactID uint) ([]model.Address, error)
}

type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository creates a new address repository.
func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

// Create creates a new address.
func (r *addressRepository) Create(ctx context.Context, address *model.Address) error {
	return r.db.WithContext(ctx).Create(address).Error
}

// FindByIDAndContact fetches the address only if it belongs to contactID.
func (r *addressRepository) FindByIDAndContact(ctx context.Context, id, contactID uint) (*model.Address, error) {
	var address model.Address
	err := r.db.WithContext(ctx).
		Where("id = ? AND contact_id = ?", id, contactID).
		First(&address).Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}

// Update writes the given columns of an already-resolved address.
func (r *addressRepository) Update(ctx context.Context, id uint, columns map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Address{}).
		Where("id = ?", id).
		Updates(columns).Error
}

// Delete removes the address.
func (r *addressRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Address{}).Error
}

// ListByContact returns all addresses of a contact ordered by id.
func (r *addressRepository) ListByContact(ctx context.Context, contactID uint) ([]model.Address, error) {
	var addresses []model.Address
	err := r.db.WithContext(ctx).
		Where("contact_id = ?", contactID).
		Order("id ASC").
		Find(&addresses).Error
	if err != nil {
		return nil, err
	}
	return addresses, nil
}
