package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AGENDAMENTO_PENDENTE    = "Pendente"
	AGENDAMENTO_CONFIRMADO  = "Confirmado"
	AGENDAMENTO_PROCESSANDO = "Processando"
	AGENDAMENTO_OS_GERADA   = "OS_GERADA"

	PRIORIDADE_NORMAL = "Normal"
	PRIORIDADE_ALTA   = "Alta"
)

// Agendamento is a scheduled medical exam. The OS pipeline picks up
// Pendente rows, claims them as Processando and leaves them as
// OS_GERADA once the service order exists.
type Agendamento struct {
	ID             string        `gorm:"type:char(36);primaryKey" json:"id"`
	TenantID       string        `gorm:"type:char(36);index" json:"tenant_id"`
	EmpresaID      string        `gorm:"type:char(36);index" json:"empresa_id"`
	ProfissionalID string        `gorm:"type:char(36);index" json:"profissional_id"`
	DataSugerida   time.Time     `json:"data_sugerida"`
	Status         string        `gorm:"type:varchar(30);default:'Pendente';index" json:"status"`
	Prioridade     string        `gorm:"type:varchar(20);default:'Normal'" json:"prioridade"`
	NotificadoEm   *time.Time    `gorm:"type:timestamp;default:null" json:"notificado_em"`
	Empresa        *Empresa      `gorm:"foreignKey:EmpresaID" json:"empresa,omitempty"`
	Profissional   *Profissional `gorm:"foreignKey:ProfissionalID" json:"profissional,omitempty"`
	CreatedAt      time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Agendamento) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// HasVinculos reports whether both the empresa and profissional
// relations resolved. The pipeline skips rows with broken links.
func (a *Agendamento) HasVinculos() bool {
	return a.Empresa != nil && a.Empresa.ID != "" &&
		a.Profissional != nil && a.Profissional.ID != ""
}
