package models

import "time"

const (
	ROLE_USER  = "user"
	ROLE_ADMIN = "admin"
)

// TenantUser associates a user with exactly one tenant. The unique
// index on UserID enforces the at-most-one-membership invariant the
// resolver relies on.
type TenantUser struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex" json:"user_id"`
	TenantID  string    `gorm:"type:char(36);index" json:"tenant_id"`
	Role      string    `gorm:"type:varchar(50);default:'user'" json:"role"`
	Tenant    Tenant    `gorm:"foreignKey:TenantID" json:"tenant"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
