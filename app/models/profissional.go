package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profissional is an occupational-health professional assigned to
// appointments.
type Profissional struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	TenantID  string    `gorm:"type:char(36);index" json:"tenant_id"`
	Nome      string    `gorm:"type:varchar(200)" json:"nome"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Profissional) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
