package repository

import (
	"gorm.io/gorm"

	"github.com/sintechbr/sst/app/models"
)

// documentoRepository implements the DocumentoRepository interface
type documentoRepository struct {
	db *gorm.DB
}

// NewDocumentoRepository creates a new document repository instance
func NewDocumentoRepository(db *gorm.DB) DocumentoRepository {
	return &documentoRepository{db: db}
}

func (r *documentoRepository) Create(doc *models.Documento) error {
	return r.db.Create(doc).Error
}

func (r *documentoRepository) GetByID(id string) (*models.Documento, error) {
	var doc models.Documento
	if err := r.db.Where("id = ?", id).First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentoRepository) ListByTenant(tenantID string, offset, limit int) ([]models.Documento, error) {
	var docs []models.Documento
	err := r.db.Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&docs).Error
	return docs, err
}

func (r *documentoRepository) CountByTenant(tenantID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Documento{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}
