package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"admin", RoleAdmin},
		{"owner", RoleAdmin},
		{"Admin", RoleAdmin},
		{"  ADMIN  ", RoleAdmin},
		{"user", RoleUser},
		{"empresa", RoleUser},
		{"Empresa", RoleUser},
		{"", RoleNone},
		{"superuser", RoleNone},
		{"guest", RoleNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseRole(tt.in), "input %q", tt.in)
	}
}

func TestRoleIsAdmin(t *testing.T) {
	assert.True(t, RoleAdmin.IsAdmin())
	assert.False(t, RoleUser.IsAdmin())
	assert.False(t, RoleNone.IsAdmin())
}

func TestParsePlan(t *testing.T) {
	tests := []struct {
		in   string
		want Plan
	}{
		{"basic", PlanBasic},
		{"pro", PlanPro},
		{"premium", PlanPremium},
		{"Premium", PlanPremium},
		{" PRO ", PlanPro},
		{"", PlanBasic},
		{"enterprise", PlanBasic},
		{"free", PlanBasic},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParsePlan(tt.in), "input %q", tt.in)
	}
}

func TestPlanOrdering(t *testing.T) {
	assert.True(t, PlanPremium.AtLeast(PlanPro))
	assert.True(t, PlanPremium.AtLeast(PlanPremium))
	assert.True(t, PlanPro.AtLeast(PlanBasic))
	assert.False(t, PlanBasic.AtLeast(PlanPro))
	assert.False(t, PlanPro.AtLeast(PlanPremium))

	assert.Greater(t, PlanPremium.Rank(), PlanPro.Rank())
	assert.Greater(t, PlanPro.Rank(), PlanBasic.Rank())
}
