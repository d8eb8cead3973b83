package models

import "time"

// PlanoFeature maps a (plano, feature) pair to an enabled flag. The
// feature gate treats an absent row the same as enabled=false.
type PlanoFeature struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Plano     string    `gorm:"type:varchar(50);uniqueIndex:idx_plano_feature" json:"plano"`
	Feature   string    `gorm:"type:varchar(100);uniqueIndex:idx_plano_feature" json:"feature"`
	Enabled   bool      `gorm:"default:false" json:"enabled"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
