package repository

import (
	"time"

	"github.com/sintechbr/sst/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	TouchLastLogin(id uint) error
}

// TenantRepository defines the interface for tenant and membership lookups
type TenantRepository interface {
	GetByID(id string) (*models.Tenant, error)
	GetMembershipByUserID(userID uint) (*models.TenantUser, error)
	Create(tenant *models.Tenant) error
}

// AgendamentoRepository defines the interface for appointment operations
type AgendamentoRepository interface {
	Create(ag *models.Agendamento) error
	GetByID(id string) (*models.Agendamento, error)
	ListByTenant(tenantID string, offset, limit int) ([]models.Agendamento, error)
	ListByStatus(status string) ([]models.Agendamento, error)
	// Claim transitions id from one status to another in a single
	// conditional update and reports whether this caller won the row.
	Claim(id, fromStatus, toStatus string) (bool, error)
	SetStatus(id, status string) error
	SetPrioridade(id, prioridade string) error
	MarkNotificado(id string, at time.Time) error
	ListPendentesNaoNotificados() ([]models.Agendamento, error)
	ListPendentesOlderThan(cutoff time.Time) ([]models.Agendamento, error)
	CountByStatus(tenantID string) (map[string]int64, error)
}

// OSOrdemRepository defines the interface for service-order records
type OSOrdemRepository interface {
	Create(ordem *models.OSOrdem) error
	GetByAgendamentoID(agendamentoID string) (*models.OSOrdem, error)
	CountByTenant(tenantID string) (int64, error)
}

// DocumentoRepository defines the interface for uploaded compliance documents
type DocumentoRepository interface {
	Create(doc *models.Documento) error
	GetByID(id string) (*models.Documento, error)
	ListByTenant(tenantID string, offset, limit int) ([]models.Documento, error)
	CountByTenant(tenantID string) (int64, error)
}

// AuditoriaRepository defines the interface for validation records and
// the public validation access log
type AuditoriaRepository interface {
	Create(a *models.Auditoria) error
	GetBySlug(slug string) (*models.Auditoria, error)
	LogValidation(entry *models.AuditValidationLog) error
}

// FeatureRepository defines the interface for plan/feature flags
type FeatureRepository interface {
	GetPlanoFeature(plano, feature string) (*models.PlanoFeature, error)
}
