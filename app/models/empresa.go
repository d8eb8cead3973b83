package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Empresa is a client company an SST tenant serves: exams are scheduled
// and service orders are issued against it.
type Empresa struct {
	ID           string    `gorm:"type:char(36);primaryKey" json:"id"`
	TenantID     string    `gorm:"type:char(36);index" json:"tenant_id"`
	NomeFantasia string    `gorm:"type:varchar(200)" json:"nome_fantasia"`
	Telefone     string    `gorm:"type:varchar(30)" json:"telefone"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (e *Empresa) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}
