package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sintechbr/sst/app/models"
)

// osOrdemRepository implements the OSOrdemRepository interface
type osOrdemRepository struct {
	db *gorm.DB
}

// NewOSOrdemRepository creates a new service-order repository instance
func NewOSOrdemRepository(db *gorm.DB) OSOrdemRepository {
	return &osOrdemRepository{db: db}
}

// Create inserts the order record. The unique index on agendamento_id
// makes re-runs of the pipeline safe: a second insert for the same
// appointment is silently dropped instead of duplicating the order.
func (r *osOrdemRepository) Create(ordem *models.OSOrdem) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(ordem).Error
}

func (r *osOrdemRepository) GetByAgendamentoID(agendamentoID string) (*models.OSOrdem, error) {
	var ordem models.OSOrdem
	err := r.db.Where("agendamento_id = ?", agendamentoID).First(&ordem).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ordem, nil
}

func (r *osOrdemRepository) CountByTenant(tenantID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.OSOrdem{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error
	return count, err
}
