package repository

import (
	"gorm.io/gorm"

	"github.com/sintechbr/sst/app/models"
)

// featureRepository implements the FeatureRepository interface
type featureRepository struct {
	db *gorm.DB
}

// NewFeatureRepository creates a new feature flag repository instance
func NewFeatureRepository(db *gorm.DB) FeatureRepository {
	return &featureRepository{db: db}
}

func (r *featureRepository) GetPlanoFeature(plano, feature string) (*models.PlanoFeature, error) {
	var pf models.PlanoFeature
	err := r.db.Where("plano = ? AND feature = ?", plano, feature).First(&pf).Error
	if err != nil {
		return nil, err
	}
	return &pf, nil
}
