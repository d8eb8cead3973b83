package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/sintechbr/sst/app/models"
)

// agendamentoRepository implements the AgendamentoRepository interface
type agendamentoRepository struct {
	db *gorm.DB
}

// NewAgendamentoRepository creates a new appointment repository instance
func NewAgendamentoRepository(db *gorm.DB) AgendamentoRepository {
	return &agendamentoRepository{db: db}
}

func (r *agendamentoRepository) Create(ag *models.Agendamento) error {
	return r.db.Create(ag).Error
}

func (r *agendamentoRepository) GetByID(id string) (*models.Agendamento, error) {
	var ag models.Agendamento
	err := r.db.Preload("Empresa").Preload("Profissional").
		Where("id = ?", id).
		First(&ag).Error
	if err != nil {
		return nil, err
	}
	return &ag, nil
}

func (r *agendamentoRepository) ListByTenant(tenantID string, offset, limit int) ([]models.Agendamento, error) {
	var ags []models.Agendamento
	err := r.db.Preload("Empresa").Preload("Profissional").
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&ags).Error
	return ags, err
}

func (r *agendamentoRepository) ListByStatus(status string) ([]models.Agendamento, error) {
	var ags []models.Agendamento
	err := r.db.Preload("Empresa").Preload("Profissional").
		Where("status = ?", status).
		Find(&ags).Error
	return ags, err
}

// Claim performs the conditional status transition that serializes
// overlapping pipeline ticks: only the caller that flips the row wins it.
func (r *agendamentoRepository) Claim(id, fromStatus, toStatus string) (bool, error) {
	res := r.db.Model(&models.Agendamento{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Update("status", toStatus)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *agendamentoRepository) SetStatus(id, status string) error {
	return r.db.Model(&models.Agendamento{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *agendamentoRepository) SetPrioridade(id, prioridade string) error {
	return r.db.Model(&models.Agendamento{}).
		Where("id = ?", id).
		Update("prioridade", prioridade).Error
}

func (r *agendamentoRepository) MarkNotificado(id string, at time.Time) error {
	return r.db.Model(&models.Agendamento{}).
		Where("id = ?", id).
		Update("notificado_em", at).Error
}

func (r *agendamentoRepository) ListPendentesNaoNotificados() ([]models.Agendamento, error) {
	var ags []models.Agendamento
	err := r.db.Preload("Empresa").
		Where("status = ? AND notificado_em IS NULL", models.AGENDAMENTO_PENDENTE).
		Find(&ags).Error
	return ags, err
}

func (r *agendamentoRepository) ListPendentesOlderThan(cutoff time.Time) ([]models.Agendamento, error) {
	var ags []models.Agendamento
	err := r.db.
		Where("status = ? AND created_at < ?", models.AGENDAMENTO_PENDENTE, cutoff).
		Find(&ags).Error
	return ags, err
}

func (r *agendamentoRepository) CountByStatus(tenantID string) (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}
	var rows []row
	err := r.db.Model(&models.Agendamento{}).
		Select("status, COUNT(*) AS total").
		Where("tenant_id = ?", tenantID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Total
	}
	return counts, nil
}
