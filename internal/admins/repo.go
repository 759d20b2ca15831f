package admins

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/halleyx/commerce-backend/pkg/db/models"
	"github.com/halleyx/commerce-backend/pkg/enums"
)

// Repository exposes admin persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an admins repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateAdminDTO holds the data required to persist a new admin.
type CreateAdminDTO struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
}

// Create inserts a new admin and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateAdminDTO) (*models.Admin, error) {
	admin := &models.Admin{
		Email:        dto.Email,
		PasswordHash: dto.PasswordHash,
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		Role:         enums.RoleAdmin,
	}
	if err := r.db.WithContext(ctx).Create(admin).Error; err != nil {
		return nil, err
	}
	return admin, nil
}

// FindByEmail retrieves the admin matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// FindByID loads an admin by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.WithContext(ctx).First(&admin, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}
