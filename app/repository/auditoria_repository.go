package repository

import (
	"gorm.io/gorm"

	"github.com/sintechbr/sst/app/models"
)

// auditoriaRepository implements the AuditoriaRepository interface
type auditoriaRepository struct {
	db *gorm.DB
}

// NewAuditoriaRepository creates a new auditoria repository instance
func NewAuditoriaRepository(db *gorm.DB) AuditoriaRepository {
	return &auditoriaRepository{db: db}
}

func (r *auditoriaRepository) Create(a *models.Auditoria) error {
	return r.db.Create(a).Error
}

// GetBySlug resolves a public validation slug to its auditoria with the
// documento and empresa relations preloaded for the portal page.
func (r *auditoriaRepository) GetBySlug(slug string) (*models.Auditoria, error) {
	var a models.Auditoria
	err := r.db.Preload("Documento").Preload("Empresa").
		Where("slug_validacao = ?", slug).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *auditoriaRepository) LogValidation(entry *models.AuditValidationLog) error {
	return r.db.Create(entry).Error
}
