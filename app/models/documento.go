package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DOCUMENTO_PENDING  = "pending"
	DOCUMENTO_APPROVED = "approved"
	DOCUMENTO_REJECTED = "rejected"
)

// Documento is an uploaded compliance document (laudo). The SHA-256
// hash of the uploaded bytes anchors the public validation trail.
type Documento struct {
	ID          string         `gorm:"type:char(36);primaryKey" json:"id"`
	TenantID    string         `gorm:"type:char(36);index" json:"tenant_id"`
	EmpresaID   string         `gorm:"type:char(36);index;default:null" json:"empresa_id"`
	Tipo        string         `gorm:"type:varchar(100)" json:"tipo"`
	NomeArquivo string         `gorm:"type:varchar(255)" json:"nome_arquivo"`
	URLPath     string         `gorm:"type:varchar(500)" json:"url_path"`
	Status      string         `gorm:"type:varchar(30);default:'pending'" json:"status"`
	UploadedBy  uint           `json:"uploaded_by"`
	HashSHA256  string         `gorm:"type:char(64);index" json:"hash_sha256"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (d *Documento) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}
