package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "contactbook/internal/errors"
	"contactbook/internal/model"
	"contactbook/internal/repository"
)

// MockContactRepository is a mock implementation of ContactRepository.
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, contact *model.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Contact, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contact), args.Error(1)
}

func (m *MockContactRepository) Update(ctx context.Context, id uint, columns map[string]interface{}) error {
	args := m.Called(ctx, id, columns)
	return args.Error(0)
}

func (m *MockContactRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContactRepository) Search(ctx context.Context, userID uint, filter repository.ContactFilter) ([]model.Contact, int64, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Contact), args.Get(1).(int64), args.Error(2)
}

func TestContactService_Create(t *testing.T) {
	ctx := context.Background()
	contacts := new(MockContactRepository)
	svc := NewContactService(contacts)
	user := &model.User{ID: 42}

	// the owner id must come from the authenticated user, whatever the
	// request carried
	contacts.On("Create", ctx, mock.MatchedBy(func(c *model.Contact) bool {
		return c.UserID == 42 && c.FirstName == "Eko"
	})).Return(nil)

	contact, err := svc.Create(ctx, user, ContactInput{
		FirstName: "Eko",
		LastName:  "Khannedy",
		Email:     "eko@mail.com",
		Phone:     "08123",
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(42), contact.UserID)
	contacts.AssertExpectations(t)
}

func TestContactService_Get(t *testing.T) {
	ctx := context.Background()
	user := &model.User{ID: 42}

	t.Run("returns owned contact", func(t *testing.T) {
		contacts := new(MockContactRepository)
		svc := NewContactService(contacts)

		stored := &model.Contact{ID: 9, FirstName: "Eko", UserID: 42}
		contacts.On("FindByIDAndUser", ctx, uint(9), uint(42)).Return(stored, nil)

		contact, err := svc.Get(ctx, user, 9)

		assert.NoError(t, err)
		assert.Equal(t, stored, contact)
	})

	t.Run("missing and not-owned are the same not found", func(t *testing.T) {
		contacts := new(MockContactRepository)
		svc := NewContactService(contacts)

		// the repository filter makes another user's contact look exactly
		// like a missing row
		contacts.On("FindByIDAndUser", ctx, uint(9), uint(42)).Return(nil, gorm.ErrRecordNotFound)

		contact, err := svc.Get(ctx, user, 9)

		assert.Nil(t, contact)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestContactService_Update(t *testing.T) {
	ctx := context.Background()
	contacts := new(MockContactRepository)
	svc := NewContactService(contacts)
	user := &model.User{ID: 42}

	stored := &model.Contact{ID: 9, FirstName: "Old", LastName: "Name", UserID: 42}
	contacts.On("FindByIDAndUser", ctx, uint(9), uint(42)).Return(stored, nil)
	contacts.On("Update", ctx, uint(9), map[string]interface{}{
		"firstname": "New",
		"lastname":  "Name",
		"email":     "new@mail.com",
		"phone":     "08123",
	}).Return(nil)

	contact, err := svc.Update(ctx, user, 9, ContactInput{
		FirstName: "New",
		LastName:  "Name",
		Email:     "new@mail.com",
		Phone:     "08123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "New", contact.FirstName)
	contacts.AssertExpectations(t)
}

func TestContactService_Delete(t *testing.T) {
	ctx := context.Background()
	user := &model.User{ID: 42}

	t.Run("deletes an owned contact", func(t *testing.T) {
		contacts := new(MockContactRepository)
		svc := NewContactService(contacts)

		contacts.On("FindByIDAndUser", ctx, uint(9), uint(42)).Return(&model.Contact{ID: 9, UserID: 42}, nil)
		contacts.On("Delete", ctx, uint(9)).Return(nil)

		assert.NoError(t, svc.Delete(ctx, user, 9))
		contacts.AssertExpectations(t)
	})

	t.Run("second delete resolves to not found", func(t *testing.T) {
		contacts := new(MockContactRepository)
		svc := NewContactService(contacts)

		contacts.On("FindByIDAndUser", ctx, uint(9), uint(42)).Return(nil, gorm.ErrRecordNotFound)

		err := svc.Delete(ctx, user, 9)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		contacts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestContactService_Search(t *testing.T) {
	ctx := context.Background()
	user := &model.User{ID: 42}

	tests := []struct {
		name       string
		in         repository.ContactFilter
		wantFilter repository.ContactFilter
		total      int64
		wantMeta   struct{ currentPage, lastPage, perPage int }
	}{
		{
			name:       "defaults applied",
			in:         repository.ContactFilter{Name: "first"},
			wantFilter: repository.ContactFilter{Name: "first", Page: 1, Size: 10},
			total:      20,
			wantMeta:   struct{ currentPage, lastPage, perPage int }{1, 2, 10},
		},
		{
			name:       "explicit window",
			in:         repository.ContactFilter{Page: 2, Size: 5},
			wantFilter: repository.ContactFilter{Page: 2, Size: 5},
			total:      20,
			wantMeta:   struct{ currentPage, lastPage, perPage int }{2, 4, 5},
		},
		{
			name:       "negative page and zero size normalized",
			in:         repository.ContactFilter{Page: -3, Size: 0},
			wantFilter: repository.ContactFilter{Page: 1, Size: 10},
			total:      0,
			wantMeta:   struct{ currentPage, lastPage, perPage int }{1, 1, 10},
		},
		{
			name:       "oversized page capped",
			in:         repository.ContactFilter{Page: 1, Size: 5000},
			wantFilter: repository.ContactFilter{Page: 1, Size: 100},
			total:      20,
			wantMeta:   struct{ currentPage, lastPage, perPage int }{1, 1, 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contacts := new(MockContactRepository)
			svc := NewContactService(contacts)

			contacts.On("Search", ctx, uint(42), tt.wantFilter).Return([]model.Contact{}, tt.total, nil)

			_, meta, err := svc.Search(ctx, user, tt.in)

			assert.NoError(t, err)
			assert.Equal(t, tt.total, meta.Total)
			assert.Equal(t, tt.wantMeta.currentPage, meta.CurrentPage)
			assert.Equal(t, tt.wantMeta.lastPage, meta.LastPage)
			assert.Equal(t, tt.wantMeta.perPage, meta.PerPage)
			contacts.AssertExpectations(t)
		})
	}
}
