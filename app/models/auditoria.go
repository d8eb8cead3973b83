package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Auditoria is the immutable validation record created when a documento
// is uploaded. SlugValidacao is the public lookup key served by the
// /v/:slug portal; HashOriginal is the SHA-256 fingerprint shown there.
type Auditoria struct {
	ID            string     `gorm:"type:char(36);primaryKey" json:"id"`
	TenantID      string     `gorm:"type:char(36);index" json:"tenant_id"`
	DocumentoID   string     `gorm:"type:char(36);index" json:"documento_id"`
	EmpresaID     string     `gorm:"type:char(36);index;default:null" json:"empresa_id"`
	HashOriginal  string     `gorm:"type:char(64)" json:"hash_original"`
	SlugValidacao string     `gorm:"type:char(36);uniqueIndex" json:"slug_validacao"`
	Documento     *Documento `gorm:"foreignKey:DocumentoID" json:"documento,omitempty"`
	Empresa       *Empresa   `gorm:"foreignKey:EmpresaID" json:"empresa,omitempty"`
	CriadoEm      time.Time  `gorm:"autoCreateTime" json:"criado_em"`
}

func (a *Auditoria) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.SlugValidacao == "" {
		a.SlugValidacao = uuid.New().String()
	}
	return nil
}

// AuditValidationLog records a public validation-page hit. Writes are
// best-effort; a failed insert never breaks the lookup.
type AuditValidationLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Slug       string    `gorm:"type:char(36);index" json:"slug"`
	EntidadeID string    `gorm:"type:char(36)" json:"entidade_id"`
	EmpresaID  string    `gorm:"type:char(36);default:null" json:"empresa_id"`
	IPAddress  string    `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent  string    `gorm:"type:varchar(500)" json:"user_agent"`
	Country    string    `gorm:"type:varchar(100);default:null" json:"country"`
	City       string    `gorm:"type:varchar(100);default:null" json:"city"`
	Source     string    `gorm:"type:varchar(50);default:'public_page'" json:"source"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
