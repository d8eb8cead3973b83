package features

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sintechbr/sst/app/models"
	"github.com/sintechbr/sst/internal/pkg/plan"
)

// Feature names gated by planos_features rows.
const (
	FeatureGerarOS     = "GERAR_OS"
	FeatureAuditLedger = "AUDIT_LEDGER"
	FeatureWhatsApp    = "WHATSAPP"
	FeatureExportBI    = "EXPORT_BI"
)

var (
	// ErrTenantUnresolved means the tenant could not be identified or
	// is inactive; controllers translate it to HTTP 403.
	ErrTenantUnresolved = errors.New("tenant não identificado")
	// ErrFeatureDisabled means the tenant's plan does not include the
	// requested feature; controllers translate it to HTTP 403.
	ErrFeatureDisabled = errors.New("recurso não disponível no seu plano")
)

// TenantStore is the tenant lookup the gate needs.
type TenantStore interface {
	GetByID(id string) (*models.Tenant, error)
}

// FeatureStore is the (plan, feature) flag lookup the gate needs.
type FeatureStore interface {
	GetPlanoFeature(plano, feature string) (*models.PlanoFeature, error)
}

// Gate answers "may this tenant use this feature". It is deliberately
// separate from the route policy: it guards specific mutating
// operations and is plan-driven, not role-driven.
type Gate struct {
	tenants  TenantStore
	features FeatureStore
}

// NewGate creates a feature gate over the given stores.
func NewGate(tenants TenantStore, features FeatureStore) *Gate {
	return &Gate{tenants: tenants, features: features}
}

// Require returns nil when the tenant exists, is active and its plan
// has the feature enabled. Any unresolvable link or absent/false flag
// fails closed.
func (g *Gate) Require(tenantID, feature string) error {
	if tenantID == "" {
		return ErrTenantUnresolved
	}

	tenant, err := g.tenants.GetByID(tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTenantUnresolved
		}
		return fmt.Errorf("tenant lookup %s: %w", tenantID, err)
	}
	if !tenant.Ativo {
		return ErrTenantUnresolved
	}

	plano := string(plan.ParsePlan(tenant.Plano))
	row, err := g.features.GetPlanoFeature(plano, feature)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFeatureDisabled
		}
		return fmt.Errorf("feature lookup %s/%s: %w", plano, feature, err)
	}
	if !row.Enabled {
		return ErrFeatureDisabled
	}

	return nil
}
