package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const OS_STATUS_GERADA = "Gerada"

// OSOrdem is the generated "ordem de serviço" artifact record. It is
// written exactly once per appointment (unique index on AgendamentoID)
// and never mutated by the pipeline afterwards.
type OSOrdem struct {
	ID            string    `gorm:"type:char(36);primaryKey" json:"id"`
	TenantID      string    `gorm:"type:char(36);index" json:"tenant_id"`
	AgendamentoID string    `gorm:"type:char(36);uniqueIndex" json:"agendamento_id"`
	NumeroOS      string    `gorm:"type:varchar(30)" json:"numero_os"`
	PDFURL        string    `gorm:"type:varchar(500)" json:"pdf_url"`
	Status        string    `gorm:"type:varchar(30);default:'Gerada'" json:"status"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (o *OSOrdem) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

// NumeroOSFor derives the order number from the appointment id so a
// re-run of the pipeline produces the same number instead of a fresh
// timestamp-based one.
func NumeroOSFor(agendamentoID string) string {
	id := strings.ReplaceAll(agendamentoID, "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("OS-%s", strings.ToUpper(id))
}
