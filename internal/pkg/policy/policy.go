package policy

import (
	"strings"

	"github.com/sintechbr/sst/internal/pkg/membership"
	"github.com/sintechbr/sst/internal/pkg/plan"
)

// Route targets used by gate decisions.
const (
	LoginPath      = "/login"
	DashboardPath  = "/dashboard"
	AdminPath      = "/admin"
	AuditLedger    = "/admin/audit-ledger"
	SemEmpresaPath = "/sem-empresa"
)

// publicPrefixes bypass the gate entirely: static assets, the JSON API
// (which carries its own guards), the public validation portal and the
// institutional pages.
var publicPrefixes = []string{
	"/api/",
	"/assets/",
	"/favicon.ico",
	"/health",
	"/v/",
	"/verificar",
}

// Decision is the single outcome of evaluating a request path against a
// membership. Allowed=false always carries a redirect target.
type Decision struct {
	Allowed  bool
	Redirect string
}

var allow = Decision{Allowed: true}

func redirect(target string) Decision {
	return Decision{Redirect: target}
}

// IsPublic reports whether the path bypasses gate evaluation.
func IsPublic(path string) bool {
	for _, p := range publicPrefixes {
		if strings.HasPrefix(path, p) || path == strings.TrimSuffix(p, "/") {
			return true
		}
	}
	return false
}

// Decide evaluates the route-gating rules for a path and a resolved
// membership (nil when the principal is anonymous or has no company).
// It is a pure, total function: every input yields exactly one outcome.
func Decide(path string, m *membership.Membership) Decision {
	if IsPublic(path) {
		return allow
	}

	// Anonymous users are only pushed to login for protected subtrees.
	if m == nil {
		if strings.HasPrefix(path, DashboardPath) || strings.HasPrefix(path, AdminPath) {
			return redirect(LoginPath)
		}
		return allow
	}

	// An authenticated user never sees the login form again.
	if path == LoginPath {
		if m.Role.IsAdmin() {
			return redirect(AdminPath)
		}
		return redirect(DashboardPath)
	}

	// Broken or missing tenant link: steer to the remediation page
	// instead of erroring. An inactive tenant is treated the same way;
	// it must not authorize anything.
	if !m.Master {
		if m.Role == plan.RoleNone && path != SemEmpresaPath {
			return redirect(SemEmpresaPath)
		}
		if !m.TenantActive && path != SemEmpresaPath {
			return redirect(SemEmpresaPath)
		}
	}

	// Non-admins never reach admin URLs, not even by direct navigation.
	if strings.HasPrefix(path, AdminPath) && !m.Role.IsAdmin() {
		return redirect(DashboardPath)
	}

	// The audit ledger is premium-only; insufficient plans land on the
	// admin console root where the upsell lives.
	if strings.HasPrefix(path, AuditLedger) && m.Plan != plan.PlanPremium {
		return redirect(AdminPath)
	}

	return allow
}
