package membership

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sintechbr/sst/app/models"
	"github.com/sintechbr/sst/internal/pkg/plan"
)

type fakeStore struct {
	row   *models.TenantUser
	err   error
	calls int
}

func (s *fakeStore) GetMembershipByUserID(userID uint) (*models.TenantUser, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.row, nil
}

type memCache struct {
	data map[string]string
	sets int
	gets int
	err  error
}

func newMemCache() *memCache {
	return &memCache{data: map[string]string{}}
}

func (c *memCache) Get(key string) (string, error) {
	c.gets++
	if c.err != nil {
		return "", c.err
	}
	v, ok := c.data[key]
	if !ok {
		return "", errors.New("cache miss")
	}
	return v, nil
}

func (c *memCache) Set(key, value string, ttl time.Duration) error {
	c.sets++
	if c.err != nil {
		return c.err
	}
	c.data[key] = value
	return nil
}

func memberRow(role, plano string, ativo bool) *models.TenantUser {
	return &models.TenantUser{
		UserID:   7,
		TenantID: "t-1",
		Role:     role,
		Tenant:   models.Tenant{ID: "t-1", Nome: "Clinica X", Plano: plano, Ativo: ativo},
	}
}

func TestResolveMasterEmailBypassesStore(t *testing.T) {
	// The store fails hard; the master identity must not care.
	store := &fakeStore{err: errors.New("db down")}
	r := NewResolver(store, nil, "ops@sintech.com.br")

	m, err := r.Resolve(1, "ops@sintech.com.br")
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.True(t, m.Master)
	assert.Equal(t, plan.RoleAdmin, m.Role)
	assert.Equal(t, plan.PlanPremium, m.Plan)
	assert.True(t, m.TenantActive)
	assert.Zero(t, store.calls)
}

func TestResolveNoMembershipRow(t *testing.T) {
	store := &fakeStore{err: gorm.ErrRecordNotFound}
	r := NewResolver(store, nil, "ops@sintech.com.br")

	m, err := r.Resolve(7, "someone@empresa.com.br")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestResolveStoreErrorPropagates(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	r := NewResolver(store, nil, "")

	m, err := r.Resolve(7, "someone@empresa.com.br")
	require.Error(t, err)
	assert.Nil(t, m)
}

func TestResolveProjectsRow(t *testing.T) {
	store := &fakeStore{row: memberRow("owner", "PRO", true)}
	r := NewResolver(store, nil, "")

	m, err := r.Resolve(7, "dona@empresa.com.br")
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.Equal(t, "t-1", m.TenantID)
	assert.Equal(t, plan.RoleAdmin, m.Role, "owner normalizes to admin")
	assert.Equal(t, plan.PlanPro, m.Plan)
	assert.True(t, m.TenantActive)
	assert.False(t, m.Master)
}

func TestResolveInactiveTenant(t *testing.T) {
	store := &fakeStore{row: memberRow("empresa", "premium", false)}
	r := NewResolver(store, nil, "")

	m, err := r.Resolve(7, "alguem@empresa.com.br")
	require.NoError(t, err)
	require.NotNil(t, m)

	assert.Equal(t, plan.RoleUser, m.Role)
	assert.False(t, m.TenantActive)
}

func TestResolveCacheHitSkipsStore(t *testing.T) {
	store := &fakeStore{row: memberRow("admin", "premium", true)}
	cache := newMemCache()
	r := NewResolver(store, cache, "")

	first, err := r.Resolve(7, "adm@empresa.com.br")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 1, store.calls)
	assert.Equal(t, 1, cache.sets)

	second, err := r.Resolve(7, "adm@empresa.com.br")
	require.NoError(t, err)
	require.NotNil(t, second)

	assert.Equal(t, 1, store.calls, "second resolve must come from cache")
	assert.Equal(t, first, second)
}

func TestResolveCacheFailureFallsThrough(t *testing.T) {
	store := &fakeStore{row: memberRow("admin", "pro", true)}
	cache := newMemCache()
	cache.err = errors.New("redis gone")
	r := NewResolver(store, cache, "")

	m, err := r.Resolve(7, "adm@empresa.com.br")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 1, store.calls)
}
