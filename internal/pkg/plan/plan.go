package plan

import "strings"

// Role identifies what a member may do inside their tenant.
type Role string

const (
	RoleNone  Role = ""
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole normalizes the loosely-typed role strings stored in
// tenant_users. Legacy rows use "empresa" for regular company users.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin", "owner":
		return RoleAdmin
	case "user", "empresa":
		return RoleUser
	default:
		return RoleNone
	}
}

// IsAdmin reports whether the role grants access to the admin console.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Plan is the subscription tier of a tenant. Plans are ordered:
// basic < pro < premium.
type Plan string

const (
	PlanBasic   Plan = "basic"
	PlanPro     Plan = "pro"
	PlanPremium Plan = "premium"
)

var planRanks = map[Plan]int{
	PlanBasic:   1,
	PlanPro:     2,
	PlanPremium: 3,
}

// ParsePlan normalizes a stored plan string. Unknown values fall back to
// basic so a malformed row never grants more than the lowest tier.
func ParsePlan(s string) Plan {
	p := Plan(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := planRanks[p]; !ok {
		return PlanBasic
	}
	return p
}

// Rank returns the numeric ordering of the plan.
func (p Plan) Rank() int {
	return planRanks[p]
}

// AtLeast reports whether p ranks equal or above other.
func (p Plan) AtLeast(other Plan) bool {
	return p.Rank() >= other.Rank()
}
