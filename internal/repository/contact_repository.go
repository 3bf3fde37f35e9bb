package repository

import (
	"context"

	"gorm.io/gorm"

	"contactbook/internal/model"
)

// ContactFilter carries the optional search criteria and pagination window.
// Page and Size are assumed normalized by the caller.
type ContactFilter struct {
	Name  string
	Email string
	Phone string
	Page  int
	Size  int
}

// ContactRepository defines contact persistence operations. Every read and
// write is scoped by the owning user id.
type ContactRepository interface {
	Create(ctx context.Context, contact *model.Contact) error
	FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Contact, error)
	Update(ctx context.Context, id uint, columns map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, userID uint, filter ContactFilter) ([]model.Contact, int64, error)
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

// Create creates a new contact.
func (r *contactRepository) Create(ctx context.Context, contact *model.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

// FindByIDAndUser fetches the contact only if it belongs to userID. A
// contact owned by another user yields gorm.ErrRecordNotFound, same as a
// missing row.
func (r *contactRepository) FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Contact, error) {
	var contact model.Contact
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// Update writes the given columns of an already-resolved contact.
func (r *contactRepository) Update(ctx context.Context, id uint, columns map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Contact{}).
		Where("id = ?", id).
		Updates(columns).Error
}

// Delete removes the contact and its addresses in one transaction. The
// contact must already be resolved through FindByIDAndUser.
func (r *contactRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contact_id = ?", id).Delete(&model.Address{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Contact{}).Error
	})
}

// Search runs the filtered, paginated query over the user's contacts and
// returns the page plus the total match count across all pages.
func (r *contactRepository) Search(ctx context.Context, userID uint, filter ContactFilter) ([]model.Contact, int64, error) {
	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&model.Contact{}).Where("user_id = ?", userID)
		if filter.Name != "" {
			pattern := "%" + filter.Name + "%"
			q = q.Where("(firstname LIKE ? OR lastname LIKE ?)", pattern, pattern)
		}
		if filter.Email != "" {
			q = q.Where("email LIKE ?", "%"+filter.Email+"%")
		}
		if filter.Phone != "" {
			q = q.Where("phone LIKE ?", "%"+filter.Phone+"%")
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var contacts []model.Contact
	err := base().
		Order("id ASC").
		Offset((filter.Page - 1) * filter.Size).
		Limit(filter.Size).
		Find(&contacts).Error
	if err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}
