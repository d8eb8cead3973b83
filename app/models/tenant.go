package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tenant is a subscribing company. Plano is one of basic/pro/premium
// (ranked in internal/pkg/plan); an inactive tenant must never
// authorize a request.
type Tenant struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	Nome      string    `gorm:"type:varchar(200)" json:"nome"`
	Plano     string    `gorm:"type:varchar(50);default:'basic'" json:"plano"`
	Ativo     bool      `gorm:"default:true" json:"ativo"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}
