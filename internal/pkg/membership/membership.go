package membership

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/sintechbr/sst/app/models"
	"github.com/sintechbr/sst/internal/pkg/plan"
)

// Membership is the resolved tenant association of a principal: which
// company they belong to, what they may do there and what the company
// pays for.
type Membership struct {
	TenantID     string    `json:"tenant_id"`
	Role         plan.Role `json:"role"`
	Plan         plan.Plan `json:"plan"`
	TenantActive bool      `json:"tenant_active"`
	Master       bool      `json:"master"`
}

// Store is the membership lookup the resolver needs from the database.
type Store interface {
	GetMembershipByUserID(userID uint) (*models.TenantUser, error)
}

// Cache is a small time-bounded key/value cache owned by the resolver's
// caller. Lookups that miss or fail fall through to the store.
type Cache interface {
	Get(key string) (string, error)
	Set(key string, value string, ttl time.Duration) error
}

const defaultCacheTTL = time.Minute

// Resolver maps an authenticated principal to at most one membership.
// The configured master email bypasses the store entirely so the
// operator account works even before tenant provisioning has run.
type Resolver struct {
	store       Store
	cache       Cache
	masterEmail string
	cacheTTL    time.Duration
}

// NewResolver creates a membership resolver. cache may be nil to
// disable caching (tests, one-shot tools).
func NewResolver(store Store, cache Cache, masterEmail string) *Resolver {
	return &Resolver{
		store:       store,
		cache:       cache,
		masterEmail: masterEmail,
		cacheTTL:    defaultCacheTTL,
	}
}

// WithCacheTTL overrides the membership cache lifetime.
func (r *Resolver) WithCacheTTL(ttl time.Duration) *Resolver {
	r.cacheTTL = ttl
	return r
}

// Resolve returns the membership for a principal, or nil when the user
// has no company attached. The master identity short-circuits to a
// synthetic admin/premium membership without touching the store.
func (r *Resolver) Resolve(userID uint, email string) (*Membership, error) {
	if r.masterEmail != "" && email == r.masterEmail {
		return &Membership{
			Role:         plan.RoleAdmin,
			Plan:         plan.PlanPremium,
			TenantActive: true,
			Master:       true,
		}, nil
	}

	cacheKey := fmt.Sprintf("membership:%d", userID)
	if r.cache != nil {
		if raw, err := r.cache.Get(cacheKey); err == nil && raw != "" {
			var m Membership
			if err := json.Unmarshal([]byte(raw), &m); err == nil {
				return &m, nil
			}
		}
	}

	tu, err := r.store.GetMembershipByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("membership lookup for user %d: %w", userID, err)
	}

	m := &Membership{
		TenantID:     tu.TenantID,
		Role:         plan.ParseRole(tu.Role),
		Plan:         plan.ParsePlan(tu.Tenant.Plano),
		TenantActive: tu.Tenant.ID != "" && tu.Tenant.Ativo,
	}

	if r.cache != nil {
		if raw, err := json.Marshal(m); err == nil {
			if err := r.cache.Set(cacheKey, string(raw), r.cacheTTL); err != nil {
				log.Warnf("[Membership] cache write for user %d failed: %v", userID, err)
			}
		}
	}

	return m, nil
}
