package repository

import (
	"gorm.io/gorm"

	"github.com/sintechbr/sst/app/models"
)

// tenantRepository implements the TenantRepository interface
type tenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a new tenant repository instance
func NewTenantRepository(db *gorm.DB) TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) GetByID(id string) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := r.db.Where("id = ?", id).First(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// GetMembershipByUserID resolves the single membership row for a user
// with its tenant preloaded. The unique index on user_id guarantees at
// most one row; gorm.ErrRecordNotFound means the user has no company.
func (r *tenantRepository) GetMembershipByUserID(userID uint) (*models.TenantUser, error) {
	var membership models.TenantUser
	err := r.db.Preload("Tenant").
		Where("user_id = ?", userID).
		First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

func (r *tenantRepository) Create(tenant *models.Tenant) error {
	return r.db.Create(tenant).Error
}
